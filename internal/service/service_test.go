package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arikankainen/consequat-server/internal/auth"
	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/service"
	"github.com/arikankainen/consequat-server/internal/store/memory"
)

var ctx = context.Background()

func newServices(t *testing.T) (*service.Services, *memory.Store) {
	t.Helper()
	st := memory.New()
	return service.New(st, auth.NewTokenCodec("test-secret"), zap.NewNop().Sugar()), st
}

func createUser(t *testing.T, svc *service.Services, username string) *models.User {
	t.Helper()
	user, err := svc.Users.Create(ctx, service.CreateUserInput{
		Username: username,
		Password: "secret",
		Email:    username + "@example.com",
		Fullname: "Test User",
	})
	require.NoError(t, err)
	return user
}

// reload refreshes the actor the way the auth middleware does per request, so
// ownership checks see mutations made since login.
func reload(t *testing.T, svc *service.Services, id string) *models.User {
	t.Helper()
	user, err := svc.Users.ByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

var photoSeq int

func photoInput(name string) service.AddPhotoInput {
	photoSeq++
	return service.AddPhotoInput{
		MainURL:          fmt.Sprintf("https://photos.test/%s-%d.jpg", name, photoSeq),
		ThumbURL:         fmt.Sprintf("https://photos.test/%s-%d-thumb.jpg", name, photoSeq),
		Filename:         name + ".jpg",
		ThumbFilename:    name + "-thumb.jpg",
		OriginalFilename: name + "-original.jpg",
		Width:            1920,
		Height:           1080,
		Name:             name,
	}
}

func addPhoto(t *testing.T, svc *service.Services, owner *models.User, in service.AddPhotoInput) *models.Photo {
	t.Helper()
	photo, err := svc.Photos.Add(ctx, owner, in)
	require.NoError(t, err)
	return photo
}

func createAlbum(t *testing.T, svc *service.Services, owner *models.User, name string) *models.Album {
	t.Helper()
	album, err := svc.Albums.Create(ctx, owner, name, "")
	require.NoError(t, err)
	return album
}
