package store

import (
	"context"

	"github.com/arikankainen/consequat-server/internal/models"
)

// PhotoListOptions narrows and pages the photo listing. SearchFields selects
// which fields the keyword is matched against (name, location, description,
// tags); empty means all of them. Matching is case-insensitive substring.
type PhotoListOptions struct {
	SearchFields []string
	Keyword      string
	Offset       int
	Limit        int
}

// PhotoUpdate is a partial field-set update. Nil pointers leave the field
// untouched. Album is only applied when SetAlbum is true, so that "no album
// argument" and "album: null" stay distinguishable.
type PhotoUpdate struct {
	Name        *string
	Location    *string
	Description *string
	Hidden      *bool
	Tags        *[]string
	Album       *string
	SetAlbum    bool
}

// TagCount is one row of the tag frequency aggregation.
type TagCount struct {
	Tag   string
	Count int
}

// UserStore persists users. Lookups return (nil, nil) when no document
// matches. Insert reports unique-index clashes as *apperr.Duplicate.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	ByID(ctx context.Context, id string) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	All(ctx context.Context) ([]*models.User, error)
	UpdateProfile(ctx context.Context, id string, email, passwordHash *string) error
	PushPhoto(ctx context.Context, userID, photoID string) error
	PullPhotos(ctx context.Context, userID string, photoIDs []string) error
	PushAlbum(ctx context.Context, userID, albumID string) error
	PullAlbums(ctx context.Context, userID string, albumIDs []string) error
	Delete(ctx context.Context, id string) error
}

// PhotoStore persists photos. List, TagCounts and ByTag only ever see
// non-hidden photos; ByID and ByIDs are raw lookups for internal use.
type PhotoStore interface {
	Insert(ctx context.Context, p *models.Photo) error
	ByID(ctx context.Context, id string) (*models.Photo, error)
	ByIDs(ctx context.Context, ids []string) ([]*models.Photo, error)
	List(ctx context.Context, opts PhotoListOptions) ([]*models.Photo, int, error)
	Update(ctx context.Context, id string, upd PhotoUpdate) error
	UpdateMany(ctx context.Context, ids []string, upd PhotoUpdate) error
	AddTags(ctx context.Context, ids []string, tags []string) error
	RemoveTags(ctx context.Context, ids []string, tags []string) error
	ClearAlbum(ctx context.Context, albumID string) error
	TagCounts(ctx context.Context) ([]TagCount, error)
	ByTag(ctx context.Context, tag string, limit int) ([]*models.Photo, error)
	Delete(ctx context.Context, id string) error
}

// AlbumStore persists albums and their denormalized photo lists.
type AlbumStore interface {
	Insert(ctx context.Context, a *models.Album) error
	ByID(ctx context.Context, id string) (*models.Album, error)
	ByIDs(ctx context.Context, ids []string) ([]*models.Album, error)
	All(ctx context.Context) ([]*models.Album, error)
	Update(ctx context.Context, id, name, description string) error
	PushPhotos(ctx context.Context, albumID string, photoIDs []string) error
	PullPhotos(ctx context.Context, albumID string, photoIDs []string) error
	PullPhotosFromAll(ctx context.Context, photoIDs []string) error
	Delete(ctx context.Context, id string) error
}

// CommentStore persists comments. Empty filter values in List mean "any".
type CommentStore interface {
	Insert(ctx context.Context, c *models.Comment) error
	ByID(ctx context.Context, id string) (*models.Comment, error)
	List(ctx context.Context, photoID, authorID string) ([]*models.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByPhoto(ctx context.Context, photoID string) error
}

// Store aggregates the collections and runs multi-document transactions.
// WithTransaction aborts every write made through the callback's context when
// fn returns an error.
type Store interface {
	Users() UserStore
	Photos() PhotoStore
	Albums() AlbumStore
	Comments() CommentStore
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
