package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arikankainen/consequat-server/internal/apperr"
	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/store"
	"github.com/arikankainen/consequat-server/internal/store/memory"
)

func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	user := &models.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, st.Users().Insert(ctx, user))

	boom := errors.New("boom")
	err := st.WithTransaction(ctx, func(ctx context.Context) error {
		photo := &models.Photo{MainURL: "m", ThumbURL: "t", User: user.ID}
		if err := st.Photos().Insert(ctx, photo); err != nil {
			return err
		}
		if err := st.Users().PushPhoto(ctx, user.ID, photo.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// everything written inside the failed transaction is gone
	photos, _, err := st.Photos().List(ctx, store.PhotoListOptions{})
	require.NoError(t, err)
	assert.Empty(t, photos)

	got, err := st.Users().ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Photos)
}

func TestUniqueViolations(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	require.NoError(t, st.Users().Insert(ctx, &models.User{Username: "alice", Email: "alice@example.com"}))

	err := st.Users().Insert(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	dup, ok := apperr.AsDuplicate(err)
	require.True(t, ok)
	assert.Equal(t, "username", dup.Field)

	err = st.Users().Insert(ctx, &models.User{Username: "bob", Email: "alice@example.com"})
	dup, ok = apperr.AsDuplicate(err)
	require.True(t, ok)
	assert.Equal(t, "email", dup.Field)

	require.NoError(t, st.Photos().Insert(ctx, &models.Photo{MainURL: "m", ThumbURL: "t"}))
	err = st.Photos().Insert(ctx, &models.Photo{MainURL: "m", ThumbURL: "t2"})
	dup, ok = apperr.AsDuplicate(err)
	require.True(t, ok)
	assert.Equal(t, "mainUrl", dup.Field)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	photo := &models.Photo{MainURL: "m", ThumbURL: "t", Tags: []string{"beach"}}
	require.NoError(t, st.Photos().Insert(ctx, photo))

	got, err := st.Photos().ByID(ctx, photo.ID)
	require.NoError(t, err)
	got.Tags[0] = "mutated"

	again, err := st.Photos().ByID(ctx, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"beach"}, again.Tags)
}
