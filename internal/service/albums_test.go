package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arikankainen/consequat-server/internal/apperr"
)

func TestCreateAlbum(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")

	album, err := svc.Albums.Create(ctx, alice, "Landscapes", "mostly mountains")
	require.NoError(t, err)
	assert.NotEmpty(t, album.ID)
	assert.Equal(t, alice.ID, album.User)
	assert.Empty(t, album.Photos)

	owner := reload(t, svc, alice.ID)
	assert.Contains(t, owner.Albums, album.ID)
}

func TestCreateAlbumAnonymous(t *testing.T) {
	svc, _ := newServices(t)
	_, err := svc.Albums.Create(ctx, nil, "Landscapes", "")
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)
}

func TestEditAlbum(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	bob := createUser(t, svc, "bob")
	album := createAlbum(t, svc, alice, "Old name")
	alice = reload(t, svc, alice.ID)
	bob = reload(t, svc, bob.ID)

	updated, err := svc.Albums.Edit(ctx, alice, album.ID, "New name", "with description")
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Name)
	assert.Equal(t, "with description", updated.Description)

	_, err = svc.Albums.Edit(ctx, bob, album.ID, "hijacked", "")
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	bob.IsAdmin = true
	_, err = svc.Albums.Edit(ctx, bob, "no-such-album", "x", "")
	assert.ErrorIs(t, err, apperr.ErrAlbumNotFound)
}

func TestDeleteAlbum(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	album := createAlbum(t, svc, alice, "Landscapes")
	alice = reload(t, svc, alice.ID)

	in := photoInput("sunset")
	in.Album = &album.ID
	photo := addPhoto(t, svc, alice, in)
	alice = reload(t, svc, alice.ID)

	deleted, err := svc.Albums.Delete(ctx, alice, album.ID)
	require.NoError(t, err)
	assert.Equal(t, album.ID, deleted.ID)

	got, err := svc.Albums.Get(ctx, album.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	owner := reload(t, svc, alice.ID)
	assert.NotContains(t, owner.Albums, album.ID)

	// contained photos survive but drop their album reference
	gotPhoto, err := svc.Photos.Get(ctx, photo.ID)
	require.NoError(t, err)
	require.NotNil(t, gotPhoto)
	assert.Nil(t, gotPhoto.Album)
}

func TestDeleteAlbumNotOwner(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	bob := createUser(t, svc, "bob")
	album := createAlbum(t, svc, alice, "Landscapes")
	bob = reload(t, svc, bob.ID)

	_, err := svc.Albums.Delete(ctx, bob, album.ID)
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	got, _ := svc.Albums.Get(ctx, album.ID)
	assert.NotNil(t, got)
}

func TestListAlbums(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	createAlbum(t, svc, alice, "First")
	createAlbum(t, svc, alice, "Second")

	albums, err := svc.Albums.List(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, "First", albums[0].Name)
	assert.Equal(t, "Second", albums[1].Name)
}
