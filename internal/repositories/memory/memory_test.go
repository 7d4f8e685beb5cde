package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknotes/internal/models"
	"quicknotes/internal/repositories"
)

func TestUsers_EmailIsUnique(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	require.NoError(t, users.Create(ctx, &models.User{ID: "u-1", Email: "a@b.c"}))
	err := users.Create(ctx, &models.User{ID: "u-2", Email: "a@b.c"})
	assert.ErrorIs(t, err, repositories.ErrAlreadyExists)

	u, err := users.GetByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestUsers_UpdateMissing(t *testing.T) {
	users := NewStore().Users()
	err := users.UpdateAvatar(context.Background(), "ghost", models.Avatar{URL: "x"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, users.VerifyUser(context.Background(), "ghost"), repositories.ErrNotFound)
}

func TestOTPs_LatestAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	otps := store.OTPs()
	base := time.Now()

	require.NoError(t, otps.Create(ctx, &models.OTP{Email: "a@b.c", CodeHash: "old", CreatedAt: base}))
	require.NoError(t, otps.Create(ctx, &models.OTP{Email: "a@b.c", CodeHash: "new", CreatedAt: base.Add(time.Second)}))
	require.NoError(t, otps.Create(ctx, &models.OTP{Email: "x@y.z", CodeHash: "other", CreatedAt: base}))

	latest, err := otps.GetLatestByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "new", latest.CodeHash)

	n, err := otps.DeleteByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assert.Equal(t, 0, store.CountOTPs("a@b.c"))
	assert.Equal(t, 1, store.CountOTPs("x@y.z"))

	_, err = otps.GetLatestByEmail(ctx, "a@b.c")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOTPs_SameTimestampPrefersHigherID(t *testing.T) {
	ctx := context.Background()
	otps := NewStore().OTPs()
	at := time.Now()

	require.NoError(t, otps.Create(ctx, &models.OTP{Email: "a@b.c", CodeHash: "first", CreatedAt: at}))
	require.NoError(t, otps.Create(ctx, &models.OTP{Email: "a@b.c", CodeHash: "second", CreatedAt: at}))

	latest, err := otps.GetLatestByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "second", latest.CodeHash)
}

func TestNotes_ListIsPerUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	notes := NewStore().Notes()
	base := time.Now()

	require.NoError(t, notes.Store(ctx, &models.Note{ID: "n-1", UserID: "u-1", CreatedAt: base}))
	require.NoError(t, notes.Store(ctx, &models.Note{ID: "n-2", UserID: "u-1", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, notes.Store(ctx, &models.Note{ID: "n-3", UserID: "u-2", CreatedAt: base}))

	list, err := notes.FindAllByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n-2", list[0].ID)
	assert.Equal(t, "n-1", list[1].ID)

	empty, err := notes.FindAllByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestNotes_UpdateDeleteMissing(t *testing.T) {
	ctx := context.Background()
	notes := NewStore().Notes()

	assert.ErrorIs(t, notes.Update(ctx, &models.Note{ID: "ghost"}), repositories.ErrNotFound)
	assert.ErrorIs(t, notes.Delete(ctx, "ghost"), repositories.ErrNotFound)

	require.NoError(t, notes.Store(ctx, &models.Note{ID: "n-1", UserID: "u-1"}))
	require.NoError(t, notes.Delete(ctx, "n-1"))
	_, err := notes.FindByID(ctx, "n-1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestNotes_SameCreatedAtOrderedByID(t *testing.T) {
	ctx := context.Background()
	notes := NewStore().Notes()
	at := time.Now()

	for _, id := range []string{"b", "c", "a"} {
		require.NoError(t, notes.Store(ctx, &models.Note{ID: id, UserID: "u-1", CreatedAt: at}))
	}

	for i := 0; i < 5; i++ {
		list, err := notes.FindAllByUser(ctx, "u-1")
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})
	}
}
