// Package service holds the application logic behind the GraphQL resolvers:
// authorization, input validation and the multi-document updates that keep
// the denormalized ownership lists consistent.
package service

import (
	"go.uber.org/zap"

	"github.com/arikankainen/consequat-server/internal/auth"
	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/store"
)

// Services bundles the per-entity services behind one constructor so the
// schema layer takes a single dependency.
type Services struct {
	Users    *UserService
	Photos   *PhotoService
	Albums   *AlbumService
	Comments *CommentService
}

func New(st store.Store, codec *auth.TokenCodec, log *zap.SugaredLogger) *Services {
	return &Services{
		Users:    &UserService{store: st, codec: codec, log: log},
		Photos:   &PhotoService{store: st, log: log},
		Albums:   &AlbumService{store: st, log: log},
		Comments: &CommentService{store: st, log: log},
	}
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// ownsAll reports whether actor may mutate every one of the given ids, going
// by the actor's own denormalized ownership list. Admins bypass the check.
func ownsAll(actor *models.User, owned []string, ids []string) bool {
	if actor.IsAdmin {
		return true
	}
	for _, id := range ids {
		if !contains(owned, id) {
			return false
		}
	}
	return true
}
