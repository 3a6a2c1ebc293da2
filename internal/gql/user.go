package gql

import (
	"context"

	"github.com/botobag/artemis/graphql"

	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/service"
)

// Token is the login payload.
type Token struct {
	Value string `graphql:"value"`
}

func userResult(user *models.User, err error) (interface{}, error) {
	if err != nil {
		return nil, resolverError(err)
	}
	if user == nil {
		return nil, nil
	}
	return user, nil
}

func (b *schemaBuilder) userFields() graphql.Fields {
	return graphql.Fields{
		"id":       {Type: graphql.NonNullOfType(graphql.ID())},
		"username": {Type: graphql.NonNullOfType(graphql.String())},
		"password": {Type: graphql.NonNullOfType(graphql.String())},
		"email":    {Type: graphql.NonNullOfType(graphql.String())},
		"fullname": {Type: graphql.NonNullOfType(graphql.String())},
		"isAdmin":  {Type: graphql.NonNullOfType(graphql.Boolean())},
		"photos": {
			Type: graphql.ListOf(graphql.NonNullOf(b.photo)),
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				user := source.(*models.User)
				return reqctx(info).Svc.Photos.ByIDs(ctx, user.Photos)
			}),
		},
		"albums": {
			Type: graphql.ListOf(graphql.NonNullOf(b.album)),
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				user := source.(*models.User)
				return reqctx(info).Svc.Albums.ByIDs(ctx, user.Albums)
			}),
		},
	}
}

func (b *schemaBuilder) userQueries() graphql.Fields {
	return graphql.Fields{
		"me": {
			Type: b.user,
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				return userResult(rc.Svc.Users.Me(ctx, rc.User))
			}),
		},
		"listUsers": {
			Type: graphql.ListOf(graphql.NonNullOf(b.user)),
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				users, err := reqctx(info).Svc.Users.List(ctx)
				if err != nil {
					return nil, resolverError(err)
				}
				return users, nil
			}),
		},
		"getUser": {
			Type: b.user,
			Args: graphql.ArgumentConfigMap{
				"username": {Type: graphql.NonNullOfType(graphql.String())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return userResult(reqctx(info).Svc.Users.Get(ctx, stringArg(info, "username")))
			}),
		},
	}
}

func (b *schemaBuilder) userMutations() graphql.Fields {
	return graphql.Fields{
		"createUser": {
			Type: b.user,
			Args: graphql.ArgumentConfigMap{
				"username": {Type: graphql.NonNullOfType(graphql.String())},
				"password": {Type: graphql.NonNullOfType(graphql.String())},
				"email":    {Type: graphql.NonNullOfType(graphql.String())},
				"fullname": {Type: graphql.NonNullOfType(graphql.String())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				in := service.CreateUserInput{
					Username: stringArg(info, "username"),
					Password: stringArg(info, "password"),
					Email:    stringArg(info, "email"),
					Fullname: stringArg(info, "fullname"),
				}
				return userResult(reqctx(info).Svc.Users.Create(ctx, in))
			}),
		},
		"editUser": {
			Type: b.user,
			Args: graphql.ArgumentConfigMap{
				"email":       {Type: graphql.T(graphql.String())},
				"oldPassword": {Type: graphql.T(graphql.String())},
				"newPassword": {Type: graphql.T(graphql.String())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				in := service.EditUserInput{
					Email:       optStringArg(info, "email"),
					OldPassword: optStringArg(info, "oldPassword"),
					NewPassword: optStringArg(info, "newPassword"),
				}
				return userResult(rc.Svc.Users.Edit(ctx, rc.User, in))
			}),
		},
		"deleteUser": {
			Type: b.user,
			Args: graphql.ArgumentConfigMap{
				"username": {Type: graphql.NonNullOfType(graphql.String())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				return userResult(rc.Svc.Users.Delete(ctx, rc.User, stringArg(info, "username")))
			}),
		},
		"login": {
			Type: b.token,
			Args: graphql.ArgumentConfigMap{
				"username": {Type: graphql.NonNullOfType(graphql.String())},
				"password": {Type: graphql.NonNullOfType(graphql.String())},
			},
			Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				rc := reqctx(info)
				value, err := rc.Svc.Users.Login(ctx, stringArg(info, "username"), stringArg(info, "password"))
				if err != nil {
					return nil, resolverError(err)
				}
				return &Token{Value: value}, nil
			}),
		},
	}
}
