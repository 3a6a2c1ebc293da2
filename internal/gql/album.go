package gql

import (
	"context"

	"github.com/botobag/artemis/graphql"

	"github.com/arikankainen/consequat-server/internal/models"
)

func albumResult(album *models.Album, err error) (interface{}, error) {
	if err != nil {
		return nil, resolverError(err)
	}
	if album == nil {
		return nil, nil
	}
	return album, nil
}

func (b *schemaBuilder) albumFields() graphql.Fields {
	return graphql.Fields{
		"id":          {Type: graphql.NonNullOfType(graphql.ID())},
		"name":        {Type: graphql.NonNullOfType(graphql.String())},
		"description": {Type: graphql.T(graphql.String())},
		"photos": {
			Type: graphql.ListOf(graphql.NonNullOf(b.photo)),
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				album := source.(*models.Album)
				return reqctx(info).Svc.Photos.ByIDs(ctx, album.Photos)
			}),
		},
		"user": {
			Type: graphql.NonNullOf(b.user),
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return userResult(reqctx(info).Svc.Users.ByID(ctx, source.(*models.Album).User))
			}),
		},
	}
}

func (b *schemaBuilder) albumQueries() graphql.Fields {
	return graphql.Fields{
		"listAlbums": {
			Type: graphql.ListOf(graphql.NonNullOf(b.album)),
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				albums, err := reqctx(info).Svc.Albums.List(ctx)
				if err != nil {
					return nil, resolverError(err)
				}
				return albums, nil
			}),
		},
	}
}

func (b *schemaBuilder) albumMutations() graphql.Fields {
	return graphql.Fields{
		"createAlbum": {
			Type: b.album,
			Args: graphql.ArgumentConfigMap{
				"name":        {Type: graphql.NonNullOfType(graphql.String())},
				"description": {Type: graphql.T(graphql.String())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				return albumResult(rc.Svc.Albums.Create(ctx, rc.User, stringArg(info, "name"), stringArg(info, "description")))
			}),
		},
		"editAlbum": {
			Type: b.album,
			Args: graphql.ArgumentConfigMap{
				"name":        {Type: graphql.NonNullOfType(graphql.String())},
				"description": {Type: graphql.T(graphql.String())},
				"id":          {Type: graphql.NonNullOfType(graphql.ID())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				return albumResult(rc.Svc.Albums.Edit(ctx, rc.User, stringArg(info, "id"), stringArg(info, "name"), stringArg(info, "description")))
			}),
		},
		"deleteAlbum": {
			Type: b.album,
			Args: graphql.ArgumentConfigMap{
				"id": {Type: graphql.NonNullOfType(graphql.ID())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				return albumResult(rc.Svc.Albums.Delete(ctx, rc.User, stringArg(info, "id")))
			}),
		},
	}
}
