package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/arikankainen/consequat-server/internal/apperr"
	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/store"
)

type PhotoService struct {
	store store.Store
	log   *zap.SugaredLogger
}

type AddPhotoInput struct {
	MainURL          string
	ThumbURL         string
	Filename         string
	ThumbFilename    string
	OriginalFilename string
	Width            int
	Height           int
	Name             string
	Location         string
	Description      string
	Hidden           bool
	Tags             []string
	Album            *string
	Exif             models.Exif
}

// EditPhotoInput updates a single photo. Album is applied only when AlbumSet
// is true; a nil Album with AlbumSet removes the photo from its album.
type EditPhotoInput struct {
	ID          string
	Name        string
	Location    *string
	Description *string
	Hidden      *bool
	Tags        *[]string
	Album       *string
	AlbumSet    bool
}

// EditPhotosInput applies one field set across many photos.
type EditPhotosInput struct {
	IDs         []string
	Name        *string
	Location    *string
	Description *string
	Hidden      *bool
	Tags        *[]string
	Album       *string
	AlbumSet    bool
}

// PhotoList is the listPhotos result: the page plus the total number of
// matches before pagination.
type PhotoList struct {
	TotalCount int             `graphql:"totalCount"`
	Photos     []*models.Photo `graphql:"photos"`
}

// TagPhotos is one topTags row.
type TagPhotos struct {
	Tag    string          `graphql:"tag"`
	Photos []*models.Photo `graphql:"photos"`
}

// List returns non-hidden photos, optionally keyword-filtered and paginated.
func (s *PhotoService) List(ctx context.Context, opts store.PhotoListOptions) (*PhotoList, error) {
	photos, total, err := s.store.Photos().List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &PhotoList{TotalCount: total, Photos: photos}, nil
}

// Get returns the photo, or nil when it does not exist or is hidden. There
// is no owner bypass on this path.
func (s *PhotoService) Get(ctx context.Context, id string) (*models.Photo, error) {
	photo, err := s.store.Photos().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if photo == nil || photo.Hidden {
		return nil, nil
	}
	return photo, nil
}

func (s *PhotoService) ByIDs(ctx context.Context, ids []string) ([]*models.Photo, error) {
	return s.store.Photos().ByIDs(ctx, ids)
}

// TopTags returns the most used tags across non-hidden photos, each with up
// to photosPerTag example photos.
func (s *PhotoService) TopTags(ctx context.Context, tags, photosPerTag int) ([]*TagPhotos, error) {
	counts, err := s.store.Photos().TagCounts(ctx)
	if err != nil {
		return nil, err
	}
	if tags > 0 && tags < len(counts) {
		counts = counts[:tags]
	}

	out := make([]*TagPhotos, 0, len(counts))
	for _, tc := range counts {
		photos, err := s.store.Photos().ByTag(ctx, tc.Tag, photosPerTag)
		if err != nil {
			return nil, err
		}
		out = append(out, &TagPhotos{Tag: tc.Tag, Photos: photos})
	}
	return out, nil
}

// checkAlbum verifies the target album exists and may be written to by actor.
func (s *PhotoService) checkAlbum(ctx context.Context, actor *models.User, albumID string) error {
	album, err := s.store.Albums().ByID(ctx, albumID)
	if err != nil {
		return err
	}
	if album == nil {
		return apperr.ErrAlbumNotFound
	}
	if !ownsAll(actor, actor.Albums, []string{albumID}) {
		return apperr.ErrNotAuthenticated
	}
	return nil
}

// Add inserts the photo and pushes its id onto the owner's list and, when an
// album is given, onto the album's list. All three writes commit or abort
// together.
func (s *PhotoService) Add(ctx context.Context, actor *models.User, in AddPhotoInput) (*models.Photo, error) {
	if actor == nil {
		return nil, apperr.ErrNotAuthenticated
	}
	if in.Album != nil {
		if err := s.checkAlbum(ctx, actor, *in.Album); err != nil {
			return nil, err
		}
	}

	photo := &models.Photo{
		MainURL:          in.MainURL,
		ThumbURL:         in.ThumbURL,
		Filename:         in.Filename,
		ThumbFilename:    in.ThumbFilename,
		OriginalFilename: in.OriginalFilename,
		Width:            in.Width,
		Height:           in.Height,
		Name:             in.Name,
		Location:         in.Location,
		Description:      in.Description,
		Hidden:           in.Hidden,
		Tags:             in.Tags,
		User:             actor.ID,
		Album:            in.Album,
		Exif:             in.Exif,
	}

	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.Photos().Insert(ctx, photo); err != nil {
			return err
		}
		if err := s.store.Users().PushPhoto(ctx, actor.ID, photo.ID); err != nil {
			return err
		}
		if in.Album != nil {
			return s.store.Albums().PushPhotos(ctx, *in.Album, []string{photo.ID})
		}
		return nil
	})
	if err != nil {
		if dup, ok := apperr.AsDuplicate(err); ok {
			return nil, apperr.NewInputError(dup.Error(), map[string]interface{}{dup.Field: ""})
		}
		return nil, err
	}

	s.log.Infow("photo added", "id", photo.ID, "user", actor.Username)
	return photo, nil
}

// sameAlbum compares album references by value.
func sameAlbum(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Edit updates the photo's fields. When the album reference changes, the old
// and new album lists are rewritten in the same transaction; equal old and
// new ids leave the lists untouched.
func (s *PhotoService) Edit(ctx context.Context, actor *models.User, in EditPhotoInput) (*models.Photo, error) {
	if actor == nil || !ownsAll(actor, actor.Photos, []string{in.ID}) {
		return nil, apperr.ErrNotAuthenticated
	}

	photo, err := s.store.Photos().ByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, apperr.ErrPhotoNotFound
	}

	moving := in.AlbumSet && !sameAlbum(photo.Album, in.Album)
	if moving && in.Album != nil {
		if err := s.checkAlbum(ctx, actor, *in.Album); err != nil {
			return nil, err
		}
	}

	upd := store.PhotoUpdate{
		Name:        &in.Name,
		Location:    in.Location,
		Description: in.Description,
		Hidden:      in.Hidden,
		Tags:        in.Tags,
	}
	if moving {
		upd.Album = in.Album
		upd.SetAlbum = true
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if moving {
			if photo.Album != nil {
				if err := s.store.Albums().PullPhotos(ctx, *photo.Album, []string{in.ID}); err != nil {
					return err
				}
			}
			if in.Album != nil {
				if err := s.store.Albums().PushPhotos(ctx, *in.Album, []string{in.ID}); err != nil {
					return err
				}
			}
		}
		return s.store.Photos().Update(ctx, in.ID, upd)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Photos().ByID(ctx, in.ID)
}

// EditMany applies one update across many photos. For album reassignment the
// ids are first pulled out of every album containing any of them, so a
// heterogeneous batch can be moved out of its various source albums in one
// operation.
func (s *PhotoService) EditMany(ctx context.Context, actor *models.User, in EditPhotosInput) ([]*models.Photo, error) {
	if actor == nil || !ownsAll(actor, actor.Photos, in.IDs) {
		return nil, apperr.ErrNotAuthenticated
	}
	if in.AlbumSet && in.Album != nil {
		if err := s.checkAlbum(ctx, actor, *in.Album); err != nil {
			return nil, err
		}
	}

	upd := store.PhotoUpdate{
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		Hidden:      in.Hidden,
		Tags:        in.Tags,
		Album:       in.Album,
		SetAlbum:    in.AlbumSet,
	}

	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if in.AlbumSet {
			if err := s.store.Albums().PullPhotosFromAll(ctx, in.IDs); err != nil {
				return err
			}
			if in.Album != nil {
				if err := s.store.Albums().PushPhotos(ctx, *in.Album, in.IDs); err != nil {
					return err
				}
			}
		}
		return s.store.Photos().UpdateMany(ctx, in.IDs, upd)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Photos().ByIDs(ctx, in.IDs)
}

// EditTags adds and removes tags across many photos. Added tags use
// set-union semantics, so re-adding an existing tag never duplicates it.
func (s *PhotoService) EditTags(ctx context.Context, actor *models.User, ids, addedTags, deletedTags []string) ([]*models.Photo, error) {
	if actor == nil || !ownsAll(actor, actor.Photos, ids) {
		return nil, apperr.ErrNotAuthenticated
	}

	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.Photos().AddTags(ctx, ids, addedTags); err != nil {
			return err
		}
		return s.store.Photos().RemoveTags(ctx, ids, deletedTags)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Photos().ByIDs(ctx, ids)
}

// Delete removes the photo, its id from the owner's and its album's lists,
// and every comment referencing it, atomically.
func (s *PhotoService) Delete(ctx context.Context, actor *models.User, id string) (*models.Photo, error) {
	if actor == nil || !ownsAll(actor, actor.Photos, []string{id}) {
		return nil, apperr.ErrNotAuthenticated
	}

	photo, err := s.store.Photos().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, apperr.ErrPhotoNotFound
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.Photos().Delete(ctx, id); err != nil {
			return err
		}
		if err := s.store.Users().PullPhotos(ctx, photo.User, []string{id}); err != nil {
			return err
		}
		if photo.Album != nil {
			if err := s.store.Albums().PullPhotos(ctx, *photo.Album, []string{id}); err != nil {
				return err
			}
		}
		return s.store.Comments().DeleteByPhoto(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("photo deleted", "id", id, "user", actor.Username)
	return photo, nil
}
