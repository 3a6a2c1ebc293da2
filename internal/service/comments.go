package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/arikankainen/consequat-server/internal/apperr"
	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/store"
)

type CommentService struct {
	store store.Store
	log   *zap.SugaredLogger
}

// List filters by photo and/or author; empty ids match everything.
func (s *CommentService) List(ctx context.Context, photoID, authorID string) ([]*models.Comment, error) {
	return s.store.Comments().List(ctx, photoID, authorID)
}

func (s *CommentService) Create(ctx context.Context, actor *models.User, text, photoID string) (*models.Comment, error) {
	if actor == nil {
		return nil, apperr.ErrNotAuthenticated
	}

	photo, err := s.store.Photos().ByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, apperr.ErrPhotoNotFound
	}

	comment := &models.Comment{
		Text:   text,
		Author: actor.ID,
		Photo:  photoID,
	}
	if err := s.store.Comments().Insert(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment. Only its author or an admin may do it.
func (s *CommentService) Delete(ctx context.Context, actor *models.User, id string) (*models.Comment, error) {
	if actor == nil {
		return nil, apperr.ErrNotAuthenticated
	}

	comment, err := s.store.Comments().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperr.ErrCommentNotFound
	}
	if !actor.IsAdmin && actor.ID != comment.Author {
		return nil, apperr.ErrNotAuthenticated
	}

	if err := s.store.Comments().Delete(ctx, id); err != nil {
		return nil, err
	}
	return comment, nil
}
