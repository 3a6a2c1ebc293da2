package gql

import (
	"errors"

	"github.com/botobag/artemis/graphql"

	"github.com/arikankainen/consequat-server/internal/apperr"
)

// resolverError maps service errors onto GraphQL errors with the extension
// codes clients switch on. Anything unrecognized passes through untouched and
// surfaces as a plain execution error.
func resolverError(err error) error {
	if err == nil {
		return nil
	}
	if in, ok := apperr.IsInput(err); ok {
		ext := graphql.ErrorExtensions{"code": "BAD_USER_INPUT"}
		if len(in.InvalidArgs) > 0 {
			ext["invalidArgs"] = in.InvalidArgs
		}
		return graphql.NewError(in.Message, ext)
	}
	if errors.Is(err, apperr.ErrNotAuthenticated) {
		return graphql.NewError(err.Error(), graphql.ErrorExtensions{"code": "UNAUTHENTICATED"})
	}
	return err
}
