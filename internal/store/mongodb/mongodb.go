// Package mongodb implements the store interfaces on top of the official
// mongo driver. Document ids are ObjectID hex strings generated at insert
// time so the rest of the code never touches driver types.
package mongodb

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arikankainen/consequat-server/internal/apperr"
	"github.com/arikankainen/consequat-server/internal/store"
)

// Store implements store.Store backed by a mongo database.
type Store struct {
	client   *mongo.Client
	users    *userStore
	photos   *photoStore
	albums   *albumStore
	comments *commentStore
}

var _ store.Store = (*Store)(nil)

// New wires the collection-level stores against db.
func New(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		client:   client,
		users:    &userStore{col: db.Collection("users")},
		photos:   &photoStore{col: db.Collection("photos")},
		albums:   &albumStore{col: db.Collection("albums")},
		comments: &commentStore{col: db.Collection("comments")},
	}
}

func (s *Store) Users() store.UserStore       { return s.users }
func (s *Store) Photos() store.PhotoStore     { return s.photos }
func (s *Store) Albums() store.AlbumStore     { return s.albums }
func (s *Store) Comments() store.CommentStore { return s.comments }

// WithTransaction runs fn inside a mongo multi-document transaction. Every
// store call made with the callback's context joins the session; an error
// from fn aborts the whole transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// EnsureIndexes creates the unique indexes the data model relies on:
// username and email on users, mainUrl and thumbUrl on photos.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := func(key string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	if _, err := s.users.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		unique("username"), unique("email"),
	}); err != nil {
		return err
	}
	_, err := s.photos.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		unique("mainUrl"), unique("thumbUrl"),
	})
	return err
}

// uniqueFields are the indexed fields a duplicate-key error can name.
var uniqueFields = []string{"username", "email", "mainUrl", "thumbUrl"}

// mapWriteError converts a duplicate-key error into the field-tagged
// apperr.Duplicate the services surface to clients.
func mapWriteError(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	for _, f := range uniqueFields {
		if strings.Contains(msg, "index: "+f) {
			return &apperr.Duplicate{Field: f}
		}
	}
	return &apperr.Duplicate{Field: "unknown"}
}
