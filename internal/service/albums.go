package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/arikankainen/consequat-server/internal/apperr"
	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/store"
)

type AlbumService struct {
	store store.Store
	log   *zap.SugaredLogger
}

func (s *AlbumService) List(ctx context.Context) ([]*models.Album, error) {
	return s.store.Albums().All(ctx)
}

func (s *AlbumService) Get(ctx context.Context, id string) (*models.Album, error) {
	return s.store.Albums().ByID(ctx, id)
}

func (s *AlbumService) ByIDs(ctx context.Context, ids []string) ([]*models.Album, error) {
	return s.store.Albums().ByIDs(ctx, ids)
}

// Create inserts the album and pushes its id onto the owner's list in one
// transaction.
func (s *AlbumService) Create(ctx context.Context, actor *models.User, name, description string) (*models.Album, error) {
	if actor == nil {
		return nil, apperr.ErrNotAuthenticated
	}

	album := &models.Album{
		Name:        name,
		Description: description,
		Photos:      []string{},
		User:        actor.ID,
	}
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.Albums().Insert(ctx, album); err != nil {
			return err
		}
		return s.store.Users().PushAlbum(ctx, actor.ID, album.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("album created", "id", album.ID, "user", actor.Username)
	return album, nil
}

func (s *AlbumService) Edit(ctx context.Context, actor *models.User, id, name, description string) (*models.Album, error) {
	if actor == nil || !ownsAll(actor, actor.Albums, []string{id}) {
		return nil, apperr.ErrNotAuthenticated
	}

	album, err := s.store.Albums().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, apperr.ErrAlbumNotFound
	}

	if err := s.store.Albums().Update(ctx, id, name, description); err != nil {
		return nil, err
	}
	return s.store.Albums().ByID(ctx, id)
}

// Delete removes the album, its id from the owner's list, and clears the
// album reference on every contained photo, atomically.
func (s *AlbumService) Delete(ctx context.Context, actor *models.User, id string) (*models.Album, error) {
	if actor == nil || !ownsAll(actor, actor.Albums, []string{id}) {
		return nil, apperr.ErrNotAuthenticated
	}

	album, err := s.store.Albums().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, apperr.ErrAlbumNotFound
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.Albums().Delete(ctx, id); err != nil {
			return err
		}
		if err := s.store.Users().PullAlbums(ctx, album.User, []string{id}); err != nil {
			return err
		}
		return s.store.Photos().ClearAlbum(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("album deleted", "id", id, "user", actor.Username)
	return album, nil
}
