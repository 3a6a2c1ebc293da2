package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arikankainen/consequat-server/internal/apperr"
	"github.com/arikankainen/consequat-server/internal/service"
	"github.com/arikankainen/consequat-server/internal/store"
)

func TestAddPhoto(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")

	photo := addPhoto(t, svc, alice, photoInput("sunset"))
	assert.NotEmpty(t, photo.ID)
	assert.Equal(t, alice.ID, photo.User)
	assert.Nil(t, photo.Album)
	assert.False(t, photo.DateAdded.IsZero())

	owner := reload(t, svc, alice.ID)
	assert.Contains(t, owner.Photos, photo.ID)
}

func TestAddPhotoAnonymous(t *testing.T) {
	svc, _ := newServices(t)
	_, err := svc.Photos.Add(ctx, nil, photoInput("sunset"))
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)
}

func TestAddPhotoIntoAlbum(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	album := createAlbum(t, svc, alice, "Landscapes")
	alice = reload(t, svc, alice.ID)

	in := photoInput("sunset")
	in.Album = &album.ID
	photo := addPhoto(t, svc, alice, in)

	require.NotNil(t, photo.Album)
	assert.Equal(t, album.ID, *photo.Album)

	got, err := svc.Albums.Get(ctx, album.ID)
	require.NoError(t, err)
	assert.Contains(t, got.Photos, photo.ID)
}

func TestAddPhotoForeignAlbumRejected(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	bob := createUser(t, svc, "bob")
	album := createAlbum(t, svc, alice, "Landscapes")
	bob = reload(t, svc, bob.ID)

	in := photoInput("sunset")
	in.Album = &album.ID
	_, err := svc.Photos.Add(ctx, bob, in)
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	missing := "missing-album"
	in2 := photoInput("dunes")
	in2.Album = &missing
	_, err = svc.Photos.Add(ctx, bob, in2)
	assert.ErrorIs(t, err, apperr.ErrAlbumNotFound)
}

func TestAddPhotoDuplicateURLRollsBack(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")

	in := photoInput("sunset")
	addPhoto(t, svc, alice, in)
	alice = reload(t, svc, alice.ID)
	require.Len(t, alice.Photos, 1)

	dup := photoInput("copy")
	dup.MainURL = in.MainURL
	_, err := svc.Photos.Add(ctx, alice, dup)
	require.Error(t, err)
	_, ok := apperr.IsInput(err)
	assert.True(t, ok)

	alice = reload(t, svc, alice.ID)
	assert.Len(t, alice.Photos, 1, "failed insert must not leave a dangling reference")
}

func TestGetPhotoHidesHidden(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")

	in := photoInput("secret")
	in.Hidden = true
	photo := addPhoto(t, svc, alice, in)

	got, err := svc.Photos.Get(ctx, photo.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "hidden photos are invisible even to their owner on the read path")

	got, err = svc.Photos.Get(ctx, "no-such-photo")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListPhotos(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")

	sunset := photoInput("Sunset at the beach")
	sunset.Tags = []string{"beach", "evening"}
	addPhoto(t, svc, alice, sunset)

	mountain := photoInput("Mountain")
	mountain.Location = "Alps"
	addPhoto(t, svc, alice, mountain)

	hidden := photoInput("Hidden beach")
	hidden.Hidden = true
	addPhoto(t, svc, alice, hidden)

	list, err := svc.Photos.List(ctx, store.PhotoListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.TotalCount)
	assert.Len(t, list.Photos, 2)

	// case-insensitive substring over all fields by default
	list, err = svc.Photos.List(ctx, store.PhotoListOptions{Keyword: "BEACH"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)

	// restricted to location only, the beach tag no longer matches
	list, err = svc.Photos.List(ctx, store.PhotoListOptions{Keyword: "beach", SearchFields: []string{"location"}})
	require.NoError(t, err)
	assert.Equal(t, 0, list.TotalCount)

	list, err = svc.Photos.List(ctx, store.PhotoListOptions{Keyword: "alps", SearchFields: []string{"location"}})
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)
}

func TestListPhotosPagination(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	for _, name := range []string{"one", "two", "three", "four", "five"} {
		addPhoto(t, svc, alice, photoInput(name))
	}

	list, err := svc.Photos.List(ctx, store.PhotoListOptions{Offset: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, list.TotalCount, "totalCount counts matches before pagination")
	require.Len(t, list.Photos, 2)
	assert.Equal(t, "two", list.Photos[0].Name)
	assert.Equal(t, "three", list.Photos[1].Name)

	list, err = svc.Photos.List(ctx, store.PhotoListOptions{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, list.Photos)
	assert.Equal(t, 5, list.TotalCount)
}

func TestEditPhotoFields(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	photo := addPhoto(t, svc, alice, photoInput("draft"))
	alice = reload(t, svc, alice.ID)

	location := "Helsinki"
	hidden := true
	tags := []string{"city"}
	updated, err := svc.Photos.Edit(ctx, alice, service.EditPhotoInput{
		ID:       photo.ID,
		Name:     "Final",
		Location: &location,
		Hidden:   &hidden,
		Tags:     &tags,
	})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Name)
	assert.Equal(t, "Helsinki", updated.Location)
	assert.True(t, updated.Hidden)
	assert.Equal(t, []string{"city"}, updated.Tags)
	assert.Equal(t, photo.Description, updated.Description, "omitted fields keep their value")
}

func TestEditPhotoNotOwner(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	bob := createUser(t, svc, "bob")
	photo := addPhoto(t, svc, alice, photoInput("sunset"))
	bob = reload(t, svc, bob.ID)

	_, err := svc.Photos.Edit(ctx, bob, service.EditPhotoInput{ID: photo.ID, Name: "stolen"})
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	// admin bypasses ownership
	bob.IsAdmin = true
	_, err = svc.Photos.Edit(ctx, bob, service.EditPhotoInput{ID: photo.ID, Name: "moderated"})
	assert.NoError(t, err)
}

func TestEditPhotoMoveBetweenAlbums(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	src := createAlbum(t, svc, alice, "Source")
	dst := createAlbum(t, svc, alice, "Target")
	alice = reload(t, svc, alice.ID)

	in := photoInput("sunset")
	in.Album = &src.ID
	photo := addPhoto(t, svc, alice, in)
	alice = reload(t, svc, alice.ID)

	updated, err := svc.Photos.Edit(ctx, alice, service.EditPhotoInput{
		ID:       photo.ID,
		Name:     photo.Name,
		Album:    &dst.ID,
		AlbumSet: true,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Album)
	assert.Equal(t, dst.ID, *updated.Album)

	srcAlbum, _ := svc.Albums.Get(ctx, src.ID)
	dstAlbum, _ := svc.Albums.Get(ctx, dst.ID)
	assert.NotContains(t, srcAlbum.Photos, photo.ID)
	assert.Contains(t, dstAlbum.Photos, photo.ID)

	// moving to the same album is a no-op, not a duplicate push
	_, err = svc.Photos.Edit(ctx, alice, service.EditPhotoInput{
		ID:       photo.ID,
		Name:     photo.Name,
		Album:    &dst.ID,
		AlbumSet: true,
	})
	require.NoError(t, err)
	dstAlbum, _ = svc.Albums.Get(ctx, dst.ID)
	assert.Equal(t, []string{photo.ID}, dstAlbum.Photos)

	// explicit null removes the photo from its album
	updated, err = svc.Photos.Edit(ctx, alice, service.EditPhotoInput{
		ID:       photo.ID,
		Name:     photo.Name,
		Album:    nil,
		AlbumSet: true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Album)
	dstAlbum, _ = svc.Albums.Get(ctx, dst.ID)
	assert.NotContains(t, dstAlbum.Photos, photo.ID)
}

func TestEditPhotosBatchMove(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	first := createAlbum(t, svc, alice, "First")
	second := createAlbum(t, svc, alice, "Second")
	target := createAlbum(t, svc, alice, "Target")
	alice = reload(t, svc, alice.ID)

	a := photoInput("a")
	a.Album = &first.ID
	photoA := addPhoto(t, svc, alice, a)
	alice = reload(t, svc, alice.ID)

	b := photoInput("b")
	b.Album = &second.ID
	photoB := addPhoto(t, svc, alice, b)
	alice = reload(t, svc, alice.ID)

	photoC := addPhoto(t, svc, alice, photoInput("c"))
	alice = reload(t, svc, alice.ID)

	hidden := true
	photos, err := svc.Photos.EditMany(ctx, alice, service.EditPhotosInput{
		IDs:      []string{photoA.ID, photoB.ID, photoC.ID},
		Hidden:   &hidden,
		Album:    &target.ID,
		AlbumSet: true,
	})
	require.NoError(t, err)
	require.Len(t, photos, 3)
	for _, photo := range photos {
		require.NotNil(t, photo.Album)
		assert.Equal(t, target.ID, *photo.Album)
		assert.True(t, photo.Hidden)
	}

	firstAlbum, _ := svc.Albums.Get(ctx, first.ID)
	secondAlbum, _ := svc.Albums.Get(ctx, second.ID)
	targetAlbum, _ := svc.Albums.Get(ctx, target.ID)
	assert.Empty(t, firstAlbum.Photos)
	assert.Empty(t, secondAlbum.Photos)
	assert.ElementsMatch(t, []string{photoA.ID, photoB.ID, photoC.ID}, targetAlbum.Photos)
}

func TestEditPhotosRequiresOwnershipOfAll(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	bob := createUser(t, svc, "bob")
	aliceP := addPhoto(t, svc, alice, photoInput("a"))
	bobP := addPhoto(t, svc, bob, photoInput("b"))
	alice = reload(t, svc, alice.ID)

	name := "renamed"
	_, err := svc.Photos.EditMany(ctx, alice, service.EditPhotosInput{
		IDs:  []string{aliceP.ID, bobP.ID},
		Name: &name,
	})
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	got, _ := svc.Photos.Get(ctx, aliceP.ID)
	assert.NotEqual(t, "renamed", got.Name, "partial batches must not be written")
}

func TestEditTags(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")

	in := photoInput("sunset")
	in.Tags = []string{"beach", "evening"}
	photo := addPhoto(t, svc, alice, in)
	alice = reload(t, svc, alice.ID)

	photos, err := svc.Photos.EditTags(ctx, alice, []string{photo.ID}, []string{"beach", "summer"}, []string{"evening"})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.ElementsMatch(t, []string{"beach", "summer"}, photos[0].Tags, "re-adding an existing tag must not duplicate it")

	// idempotent: applying the same edit again changes nothing
	photos, err = svc.Photos.EditTags(ctx, alice, []string{photo.ID}, []string{"beach", "summer"}, []string{"evening"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"beach", "summer"}, photos[0].Tags)
}

func TestDeletePhotoCleansUp(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	bob := createUser(t, svc, "bob")
	album := createAlbum(t, svc, alice, "Landscapes")
	alice = reload(t, svc, alice.ID)

	in := photoInput("sunset")
	in.Album = &album.ID
	photo := addPhoto(t, svc, alice, in)
	alice = reload(t, svc, alice.ID)

	_, err := svc.Comments.Create(ctx, bob, "nice!", photo.ID)
	require.NoError(t, err)

	deleted, err := svc.Photos.Delete(ctx, alice, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, photo.ID, deleted.ID)

	got, _ := svc.Photos.Get(ctx, photo.ID)
	assert.Nil(t, got)

	owner := reload(t, svc, alice.ID)
	assert.NotContains(t, owner.Photos, photo.ID)

	gotAlbum, _ := svc.Albums.Get(ctx, album.ID)
	assert.NotContains(t, gotAlbum.Photos, photo.ID)

	comments, err := svc.Comments.List(ctx, photo.ID, "")
	require.NoError(t, err)
	assert.Empty(t, comments, "comments must not outlive their photo")
}

func TestDeletePhotoNotOwner(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	bob := createUser(t, svc, "bob")
	photo := addPhoto(t, svc, alice, photoInput("sunset"))
	bob = reload(t, svc, bob.ID)

	_, err := svc.Photos.Delete(ctx, bob, photo.ID)
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	got, _ := svc.Photos.Get(ctx, photo.ID)
	assert.NotNil(t, got)
}

func TestTopTags(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")

	for i, tags := range [][]string{
		{"beach", "sunset"},
		{"beach", "sunset"},
		{"beach"},
		{"alps"},
	} {
		in := photoInput(string(rune('a' + i)))
		in.Tags = tags
		addPhoto(t, svc, alice, in)
	}
	hidden := photoInput("hidden")
	hidden.Hidden = true
	hidden.Tags = []string{"beach", "alps"}
	addPhoto(t, svc, alice, hidden)

	top, err := svc.Photos.TopTags(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "beach", top[0].Tag)
	assert.Equal(t, "sunset", top[1].Tag)
	assert.Len(t, top[0].Photos, 1, "photosPerTag caps the examples")

	// hidden photos count for nothing
	for _, row := range top {
		for _, photo := range row.Photos {
			assert.False(t, photo.Hidden)
		}
	}
}
