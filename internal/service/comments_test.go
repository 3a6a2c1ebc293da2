package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arikankainen/consequat-server/internal/apperr"
)

func TestCreateComment(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	bob := createUser(t, svc, "bob")
	photo := addPhoto(t, svc, alice, photoInput("sunset"))

	comment, err := svc.Comments.Create(ctx, bob, "nice!", photo.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, bob.ID, comment.Author)
	assert.Equal(t, photo.ID, comment.Photo)
	assert.False(t, comment.DateAdded.IsZero())
}

func TestCreateCommentRequiresAuthAndPhoto(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	photo := addPhoto(t, svc, alice, photoInput("sunset"))

	_, err := svc.Comments.Create(ctx, nil, "anon", photo.ID)
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	_, err = svc.Comments.Create(ctx, alice, "ghost", "no-such-photo")
	assert.ErrorIs(t, err, apperr.ErrPhotoNotFound)
}

func TestDeleteComment(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	bob := createUser(t, svc, "bob")
	photo := addPhoto(t, svc, alice, photoInput("sunset"))

	comment, err := svc.Comments.Create(ctx, bob, "nice!", photo.ID)
	require.NoError(t, err)

	// only the author or an admin may delete; the photo owner may not
	_, err = svc.Comments.Delete(ctx, alice, comment.ID)
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	deleted, err := svc.Comments.Delete(ctx, bob, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.ID, deleted.ID)

	_, err = svc.Comments.Delete(ctx, bob, comment.ID)
	assert.ErrorIs(t, err, apperr.ErrCommentNotFound)
}

func TestDeleteCommentAdmin(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	bob := createUser(t, svc, "bob")
	photo := addPhoto(t, svc, alice, photoInput("sunset"))
	comment, err := svc.Comments.Create(ctx, bob, "spam", photo.ID)
	require.NoError(t, err)

	admin := createUser(t, svc, "admin")
	admin.IsAdmin = true
	_, err = svc.Comments.Delete(ctx, admin, comment.ID)
	assert.NoError(t, err)
}

func TestListComments(t *testing.T) {
	svc, _ := newServices(t)
	alice := createUser(t, svc, "alice")
	bob := createUser(t, svc, "bob")
	first := addPhoto(t, svc, alice, photoInput("first"))
	second := addPhoto(t, svc, alice, photoInput("second"))

	c1, _ := svc.Comments.Create(ctx, alice, "one", first.ID)
	c2, _ := svc.Comments.Create(ctx, bob, "two", first.ID)
	c3, _ := svc.Comments.Create(ctx, bob, "three", second.ID)

	all, err := svc.Comments.List(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byPhoto, err := svc.Comments.List(ctx, first.ID, "")
	require.NoError(t, err)
	require.Len(t, byPhoto, 2)
	assert.Equal(t, c1.ID, byPhoto[0].ID)
	assert.Equal(t, c2.ID, byPhoto[1].ID)

	byAuthor, err := svc.Comments.List(ctx, "", bob.ID)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	both, err := svc.Comments.List(ctx, second.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, c3.ID, both[0].ID)
}
