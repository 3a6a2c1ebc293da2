// Package memory is an in-memory store.Store used by tests. It mirrors the
// mongo implementation's semantics, including unique-index violations and
// transaction rollback (via snapshot/restore), without needing a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arikankainen/consequat-server/internal/apperr"
	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/store"
)

// Store keeps every collection in a map plus an insertion-order slice so
// listings are deterministic.
type Store struct {
	mu sync.Mutex

	users      map[string]*models.User
	userOrder  []string
	photos     map[string]*models.Photo
	photoOrder []string
	albums     map[string]*models.Album
	albumOrder []string
	comments     map[string]*models.Comment
	commentOrder []string
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:    map[string]*models.User{},
		photos:   map[string]*models.Photo{},
		albums:   map[string]*models.Album{},
		comments: map[string]*models.Comment{},
	}
}

func (s *Store) Users() store.UserStore       { return &userStore{s} }
func (s *Store) Photos() store.PhotoStore     { return &photoStore{s} }
func (s *Store) Albums() store.AlbumStore     { return &albumStore{s} }
func (s *Store) Comments() store.CommentStore { return &commentStore{s} }

// WithTransaction snapshots the whole store, runs fn, and restores the
// snapshot when fn fails. Individual operations stay serialized by the store
// mutex, matching the all-or-nothing behavior of the mongo transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	snapshot := s.clone()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.restore(snapshot)
		s.mu.Unlock()
		return err
	}
	return nil
}

type snapshot struct {
	users      map[string]*models.User
	userOrder  []string
	photos     map[string]*models.Photo
	photoOrder []string
	albums     map[string]*models.Album
	albumOrder []string
	comments     map[string]*models.Comment
	commentOrder []string
}

func (s *Store) clone() *snapshot {
	snap := &snapshot{
		users:        map[string]*models.User{},
		userOrder:    append([]string{}, s.userOrder...),
		photos:       map[string]*models.Photo{},
		photoOrder:   append([]string{}, s.photoOrder...),
		albums:       map[string]*models.Album{},
		albumOrder:   append([]string{}, s.albumOrder...),
		comments:     map[string]*models.Comment{},
		commentOrder: append([]string{}, s.commentOrder...),
	}
	for id, u := range s.users {
		snap.users[id] = copyUser(u)
	}
	for id, p := range s.photos {
		snap.photos[id] = copyPhoto(p)
	}
	for id, a := range s.albums {
		snap.albums[id] = copyAlbum(a)
	}
	for id, c := range s.comments {
		snap.comments[id] = copyComment(c)
	}
	return snap
}

func (s *Store) restore(snap *snapshot) {
	s.users, s.userOrder = snap.users, snap.userOrder
	s.photos, s.photoOrder = snap.photos, snap.photoOrder
	s.albums, s.albumOrder = snap.albums, snap.albumOrder
	s.comments, s.commentOrder = snap.comments, snap.commentOrder
}

func newID() string { return uuid.NewString() }

func copyUser(u *models.User) *models.User {
	c := *u
	c.Photos = append([]string{}, u.Photos...)
	c.Albums = append([]string{}, u.Albums...)
	return &c
}

func copyPhoto(p *models.Photo) *models.Photo {
	c := *p
	c.Tags = append([]string{}, p.Tags...)
	if p.Album != nil {
		album := *p.Album
		c.Album = &album
	}
	return &c
}

func copyAlbum(a *models.Album) *models.Album {
	c := *a
	c.Photos = append([]string{}, a.Photos...)
	return &c
}

func copyComment(c *models.Comment) *models.Comment {
	cp := *c
	return &cp
}

func remove(list []string, ids []string) []string {
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	out := list[:0]
	for _, id := range list {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}

//
// users
//

type userStore struct{ s *Store }

func (u *userStore) Insert(ctx context.Context, user *models.User) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return &apperr.Duplicate{Field: "username"}
		}
		if existing.Email == user.Email {
			return &apperr.Duplicate{Field: "email"}
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	if user.Photos == nil {
		user.Photos = []string{}
	}
	if user.Albums == nil {
		user.Albums = []string{}
	}
	s.users[user.ID] = copyUser(user)
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

func (u *userStore) ByID(ctx context.Context, id string) (*models.User, error) {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		return copyUser(user), nil
	}
	return nil, nil
}

func (u *userStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, nil
}

func (u *userStore) All(ctx context.Context) ([]*models.User, error) {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, copyUser(s.users[id]))
	}
	return out, nil
}

func (u *userStore) UpdateProfile(ctx context.Context, id string, email, passwordHash *string) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil
	}
	if email != nil {
		user.Email = *email
	}
	if passwordHash != nil {
		user.Password = *passwordHash
	}
	return nil
}

func (u *userStore) PushPhoto(ctx context.Context, userID, photoID string) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[userID]; ok {
		user.Photos = append(user.Photos, photoID)
	}
	return nil
}

func (u *userStore) PullPhotos(ctx context.Context, userID string, photoIDs []string) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[userID]; ok {
		user.Photos = remove(user.Photos, photoIDs)
	}
	return nil
}

func (u *userStore) PushAlbum(ctx context.Context, userID, albumID string) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[userID]; ok {
		user.Albums = append(user.Albums, albumID)
	}
	return nil
}

func (u *userStore) PullAlbums(ctx context.Context, userID string, albumIDs []string) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[userID]; ok {
		user.Albums = remove(user.Albums, albumIDs)
	}
	return nil
}

func (u *userStore) Delete(ctx context.Context, id string) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	s.userOrder = remove(s.userOrder, []string{id})
	return nil
}

//
// photos
//

type photoStore struct{ s *Store }

func (p *photoStore) Insert(ctx context.Context, photo *models.Photo) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.photos {
		if existing.MainURL == photo.MainURL {
			return &apperr.Duplicate{Field: "mainUrl"}
		}
		if existing.ThumbURL == photo.ThumbURL {
			return &apperr.Duplicate{Field: "thumbUrl"}
		}
	}
	if photo.ID == "" {
		photo.ID = newID()
	}
	if photo.Tags == nil {
		photo.Tags = []string{}
	}
	if photo.DateAdded.IsZero() {
		photo.DateAdded = time.Now().UTC()
	}
	s.photos[photo.ID] = copyPhoto(photo)
	s.photoOrder = append(s.photoOrder, photo.ID)
	return nil
}

func (p *photoStore) ByID(ctx context.Context, id string) (*models.Photo, error) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if photo, ok := s.photos[id]; ok {
		return copyPhoto(photo), nil
	}
	return nil, nil
}

func (p *photoStore) ByIDs(ctx context.Context, ids []string) ([]*models.Photo, error) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Photo{}
	for _, id := range ids {
		if photo, ok := s.photos[id]; ok {
			out = append(out, copyPhoto(photo))
		}
	}
	return out, nil
}

func matchKeyword(photo *models.Photo, fields []string, keyword string) bool {
	kw := strings.ToLower(keyword)
	contains := func(v string) bool { return strings.Contains(strings.ToLower(v), kw) }
	for _, f := range fields {
		switch f {
		case "name":
			if contains(photo.Name) {
				return true
			}
		case "location":
			if contains(photo.Location) {
				return true
			}
		case "description":
			if contains(photo.Description) {
				return true
			}
		case "tags":
			for _, t := range photo.Tags {
				if contains(t) {
					return true
				}
			}
		}
	}
	return false
}

func (p *photoStore) List(ctx context.Context, opts store.PhotoListOptions) ([]*models.Photo, int, error) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := opts.SearchFields
	if len(fields) == 0 {
		fields = []string{"name", "location", "description", "tags"}
	}

	matched := []*models.Photo{}
	for _, id := range s.photoOrder {
		photo := s.photos[id]
		if photo.Hidden {
			continue
		}
		if opts.Keyword != "" && !matchKeyword(photo, fields, opts.Keyword) {
			continue
		}
		matched = append(matched, photo)
	}

	total := len(matched)
	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[opts.Offset:]
		}
	}
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}

	out := make([]*models.Photo, 0, len(matched))
	for _, photo := range matched {
		out = append(out, copyPhoto(photo))
	}
	return out, total, nil
}

func applyUpdate(photo *models.Photo, upd store.PhotoUpdate) {
	if upd.Name != nil {
		photo.Name = *upd.Name
	}
	if upd.Location != nil {
		photo.Location = *upd.Location
	}
	if upd.Description != nil {
		photo.Description = *upd.Description
	}
	if upd.Hidden != nil {
		photo.Hidden = *upd.Hidden
	}
	if upd.Tags != nil {
		photo.Tags = append([]string{}, (*upd.Tags)...)
	}
	if upd.SetAlbum {
		if upd.Album != nil {
			album := *upd.Album
			photo.Album = &album
		} else {
			photo.Album = nil
		}
	}
}

func (p *photoStore) Update(ctx context.Context, id string, upd store.PhotoUpdate) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if photo, ok := s.photos[id]; ok {
		applyUpdate(photo, upd)
	}
	return nil
}

func (p *photoStore) UpdateMany(ctx context.Context, ids []string, upd store.PhotoUpdate) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if photo, ok := s.photos[id]; ok {
			applyUpdate(photo, upd)
		}
	}
	return nil
}

func (p *photoStore) AddTags(ctx context.Context, ids []string, tags []string) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		photo, ok := s.photos[id]
		if !ok {
			continue
		}
		for _, tag := range tags {
			present := false
			for _, existing := range photo.Tags {
				if existing == tag {
					present = true
					break
				}
			}
			if !present {
				photo.Tags = append(photo.Tags, tag)
			}
		}
	}
	return nil
}

func (p *photoStore) RemoveTags(ctx context.Context, ids []string, tags []string) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if photo, ok := s.photos[id]; ok {
			photo.Tags = remove(photo.Tags, tags)
		}
	}
	return nil
}

func (p *photoStore) ClearAlbum(ctx context.Context, albumID string) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, photo := range s.photos {
		if photo.Album != nil && *photo.Album == albumID {
			photo.Album = nil
		}
	}
	return nil
}

func (p *photoStore) TagCounts(ctx context.Context) ([]store.TagCount, error) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[string]int{}
	for _, photo := range s.photos {
		if photo.Hidden {
			continue
		}
		for _, tag := range photo.Tags {
			counts[tag]++
		}
	}

	out := make([]store.TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, store.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out, nil
}

func (p *photoStore) ByTag(ctx context.Context, tag string, limit int) ([]*models.Photo, error) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*models.Photo{}
	for _, id := range s.photoOrder {
		photo := s.photos[id]
		if photo.Hidden {
			continue
		}
		for _, t := range photo.Tags {
			if t == tag {
				out = append(out, copyPhoto(photo))
				break
			}
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (p *photoStore) Delete(ctx context.Context, id string) error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.photos, id)
	s.photoOrder = remove(s.photoOrder, []string{id})
	return nil
}

//
// albums
//

type albumStore struct{ s *Store }

func (a *albumStore) Insert(ctx context.Context, album *models.Album) error {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if album.ID == "" {
		album.ID = newID()
	}
	if album.Photos == nil {
		album.Photos = []string{}
	}
	s.albums[album.ID] = copyAlbum(album)
	s.albumOrder = append(s.albumOrder, album.ID)
	return nil
}

func (a *albumStore) ByID(ctx context.Context, id string) (*models.Album, error) {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if album, ok := s.albums[id]; ok {
		return copyAlbum(album), nil
	}
	return nil, nil
}

func (a *albumStore) ByIDs(ctx context.Context, ids []string) ([]*models.Album, error) {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Album{}
	for _, id := range ids {
		if album, ok := s.albums[id]; ok {
			out = append(out, copyAlbum(album))
		}
	}
	return out, nil
}

func (a *albumStore) All(ctx context.Context) ([]*models.Album, error) {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Album, 0, len(s.albumOrder))
	for _, id := range s.albumOrder {
		out = append(out, copyAlbum(s.albums[id]))
	}
	return out, nil
}

func (a *albumStore) Update(ctx context.Context, id, name, description string) error {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if album, ok := s.albums[id]; ok {
		album.Name = name
		album.Description = description
	}
	return nil
}

func (a *albumStore) PushPhotos(ctx context.Context, albumID string, photoIDs []string) error {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if album, ok := s.albums[albumID]; ok {
		album.Photos = append(album.Photos, photoIDs...)
	}
	return nil
}

func (a *albumStore) PullPhotos(ctx context.Context, albumID string, photoIDs []string) error {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if album, ok := s.albums[albumID]; ok {
		album.Photos = remove(album.Photos, photoIDs)
	}
	return nil
}

func (a *albumStore) PullPhotosFromAll(ctx context.Context, photoIDs []string) error {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, album := range s.albums {
		album.Photos = remove(album.Photos, photoIDs)
	}
	return nil
}

func (a *albumStore) Delete(ctx context.Context, id string) error {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.albums, id)
	s.albumOrder = remove(s.albumOrder, []string{id})
	return nil
}

//
// comments
//

type commentStore struct{ s *Store }

func (c *commentStore) Insert(ctx context.Context, comment *models.Comment) error {
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if comment.ID == "" {
		comment.ID = newID()
	}
	if comment.DateAdded.IsZero() {
		comment.DateAdded = time.Now().UTC()
	}
	s.comments[comment.ID] = copyComment(comment)
	s.commentOrder = append(s.commentOrder, comment.ID)
	return nil
}

func (c *commentStore) ByID(ctx context.Context, id string) (*models.Comment, error) {
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if comment, ok := s.comments[id]; ok {
		return copyComment(comment), nil
	}
	return nil, nil
}

func (c *commentStore) List(ctx context.Context, photoID, authorID string) ([]*models.Comment, error) {
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Comment{}
	for _, id := range s.commentOrder {
		comment := s.comments[id]
		if photoID != "" && comment.Photo != photoID {
			continue
		}
		if authorID != "" && comment.Author != authorID {
			continue
		}
		out = append(out, copyComment(comment))
	}
	return out, nil
}

func (c *commentStore) Delete(ctx context.Context, id string) error {
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.comments, id)
	s.commentOrder = remove(s.commentOrder, []string{id})
	return nil
}

func (c *commentStore) DeleteByPhoto(ctx context.Context, photoID string) error {
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := []string{}
	for id, comment := range s.comments {
		if comment.Photo == photoID {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		delete(s.comments, id)
	}
	s.commentOrder = remove(s.commentOrder, ids)
	return nil
}
