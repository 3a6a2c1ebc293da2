// Package gql declares the GraphQL schema code-first and maps it onto the
// service layer. One file per entity, mirroring the schema modules of the
// API surface.
package gql

import (
	"github.com/botobag/artemis/graphql"

	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/service"
)

// RequestContext travels with each executed operation as the artemis app
// context. User is nil for anonymous requests; it is resolved from the
// bearer token once per request, never cached across requests.
type RequestContext struct {
	User *models.User
	Svc  *service.Services
}

func reqctx(info graphql.ResolveInfo) *RequestContext {
	if rc, ok := info.AppContext().(*RequestContext); ok && rc != nil {
		return rc
	}
	return &RequestContext{}
}
