package gql

import (
	"context"
	"time"

	"github.com/botobag/artemis/graphql"

	"github.com/arikankainen/consequat-server/internal/models"
)

func commentResult(comment *models.Comment, err error) (interface{}, error) {
	if err != nil {
		return nil, resolverError(err)
	}
	if comment == nil {
		return nil, nil
	}
	return comment, nil
}

func (b *schemaBuilder) commentFields() graphql.Fields {
	return graphql.Fields{
		"id":   {Type: graphql.NonNullOfType(graphql.ID())},
		"text": {Type: graphql.NonNullOfType(graphql.String())},
		"dateAdded": {
			Type: graphql.T(graphql.String()),
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return source.(*models.Comment).DateAdded.UTC().Format(time.RFC3339), nil
			}),
		},
		"author": {
			Type: graphql.NonNullOf(b.user),
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return userResult(reqctx(info).Svc.Users.ByID(ctx, source.(*models.Comment).Author))
			}),
		},
		"photo": {
			Type: graphql.NonNullOf(b.photo),
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				comment := source.(*models.Comment)
				photos, err := reqctx(info).Svc.Photos.ByIDs(ctx, []string{comment.Photo})
				if err != nil {
					return nil, err
				}
				if len(photos) == 0 {
					return nil, nil
				}
				return photos[0], nil
			}),
		},
	}
}

func (b *schemaBuilder) commentQueries() graphql.Fields {
	return graphql.Fields{
		"listComments": {
			Type: graphql.ListOf(graphql.NonNullOf(b.comment)),
			Args: graphql.ArgumentConfigMap{
				"photo":  {Type: graphql.T(graphql.ID())},
				"author": {Type: graphql.T(graphql.ID())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				comments, err := reqctx(info).Svc.Comments.List(ctx, stringArg(info, "photo"), stringArg(info, "author"))
				if err != nil {
					return nil, resolverError(err)
				}
				return comments, nil
			}),
		},
	}
}

func (b *schemaBuilder) commentMutations() graphql.Fields {
	return graphql.Fields{
		"createComment": {
			Type: b.comment,
			Args: graphql.ArgumentConfigMap{
				"text":  {Type: graphql.NonNullOfType(graphql.String())},
				"photo": {Type: graphql.NonNullOfType(graphql.ID())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				return commentResult(rc.Svc.Comments.Create(ctx, rc.User, stringArg(info, "text"), stringArg(info, "photo")))
			}),
		},
		"deleteComment": {
			Type: b.comment,
			Args: graphql.ArgumentConfigMap{
				"id": {Type: graphql.NonNullOfType(graphql.ID())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				return commentResult(rc.Svc.Comments.Delete(ctx, rc.User, stringArg(info, "id")))
			}),
		},
	}
}
