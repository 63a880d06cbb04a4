package content

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/blog/app/store"
)

func TestSyncer_Sync(t *testing.T) {
	ctx := context.Background()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer st.Close()

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.Upsert(ctx, store.Post{Slug: "stale", Title: "Stale", Date: day, Body: "old"}))
	require.NoError(t, st.Upsert(ctx, store.Post{Slug: "toml", Title: "Old title", Date: day, Body: "old"}))

	syncer := NewSyncer(st, func(context.Context) ([]store.Post, error) { return LoadDir("testdata/posts") })
	stats, err := syncer.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncStats{Upserted: 3, Deleted: 1}, stats)

	_, err = st.Get(ctx, "stale")
	require.ErrorIs(t, err, store.ErrNotFound)

	post, err := st.Get(ctx, "toml")
	require.NoError(t, err)
	assert.Equal(t, "Written in TOML", post.Title)
	assert.True(t, post.Draft)

	all, err := st.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	t.Run("second sync deletes nothing", func(t *testing.T) {
		stats, err := syncer.Sync(ctx)
		require.NoError(t, err)
		assert.Equal(t, SyncStats{Upserted: 3}, stats)
	})

	t.Run("source error keeps the store", func(t *testing.T) {
		failing := NewSyncer(st, func(context.Context) ([]store.Post, error) { return nil, errors.New("boom") })
		_, err := failing.Sync(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")

		all, err := st.List(ctx, true)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestSyncer_SyncSerialized(t *testing.T) {
	ctx := context.Background()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer st.Close()

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	postA := store.Post{Slug: "a", Title: "A", Date: day, Body: "a"}
	postB := store.Post{Slug: "b", Title: "B", Date: day.Add(time.Hour), Body: "b"}

	// the first load sees only "a" and is held until the second sync is waiting,
	// the second load sees "a" and the newly added "b"
	var calls atomic.Int32
	firstLoading, release := make(chan struct{}), make(chan struct{})
	syncer := NewSyncer(st, func(context.Context) ([]store.Post, error) {
		if calls.Add(1) == 1 {
			close(firstLoading)
			<-release
			return []store.Post{postA}, nil
		}
		return []store.Post{postA, postB}, nil
	})

	errs := make(chan error, 2)
	go func() {
		_, err := syncer.Sync(ctx)
		errs <- err
	}()
	<-firstLoading

	secondDone := make(chan struct{})
	go func() {
		_, err := syncer.Sync(ctx)
		errs <- err
		close(secondDone)
	}()

	select {
	case <-secondDone:
		t.Fatal("second sync finished while the first one was still loading")
	case <-time.After(100 * time.Millisecond):
	}
	close(release)

	require.NoError(t, <-errs)
	require.NoError(t, <-errs)
	assert.Equal(t, int32(2), calls.Load())

	_, err = st.Get(ctx, "b")
	require.NoError(t, err, "post added by the later sync survives")
	all, err := st.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSyncer_SourceGetsContext(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	syncer := NewSyncer(st, func(ctx context.Context) ([]store.Post, error) { return nil, ctx.Err() })
	_, err = syncer.Sync(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
