package profile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantize-tools/quantcfg/internal/qparams"
	"github.com/quantize-tools/quantcfg/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.db")

	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "int8", qparams.NewAdvancedQuantizationParams())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must keep existing revisions.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	rev, err := store.Get(context.Background(), "int8")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rev.Seq)
}

func TestSaveGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	params := testutil.FullConfig()
	revision, err := store.Save(ctx, "full", params)
	require.NoError(t, err)

	// Revision IDs are UUIDs.
	_, err = uuid.Parse(revision)
	require.NoError(t, err)

	rev, err := store.Get(ctx, "full")
	require.NoError(t, err)
	assert.Equal(t, revision, rev.ID)
	assert.Equal(t, "full", rev.Name)
	assert.Equal(t, int64(1), rev.Seq)
	// The decoded configuration matches field for field.
	assert.Equal(t, params, rev.Params)
}

func TestSaveAppendsRevisions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := qparams.NewAdvancedQuantizationParams()
	_, err := store.Save(ctx, "int8", first)
	require.NoError(t, err)

	second := qparams.NewAdvancedQuantizationParams()
	second.QuantizeOutputs = true
	secondRev, err := store.Save(ctx, "int8", second)
	require.NoError(t, err)

	// Get returns the latest revision, never an earlier one.
	rev, err := store.Get(ctx, "int8")
	require.NoError(t, err)
	assert.Equal(t, secondRev, rev.ID)
	assert.Equal(t, int64(2), rev.Seq)
	assert.True(t, rev.Params.QuantizeOutputs)
}

func TestSaveSequencesPerName(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "a", qparams.NewAdvancedQuantizationParams())
	require.NoError(t, err)
	_, err = store.Save(ctx, "a", qparams.NewAdvancedQuantizationParams())
	require.NoError(t, err)
	_, err = store.Save(ctx, "b", qparams.NewAdvancedQuantizationParams())
	require.NoError(t, err)

	revA, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), revA.Seq)

	// A different name starts its own sequence.
	revB, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(1), revB.Seq)
}

func TestSaveValidation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "", qparams.NewAdvancedQuantizationParams())
	require.Error(t, err)

	_, err = store.Save(ctx, "int8", nil)
	require.Error(t, err)
}

func TestGetUnknownProfile(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "missing")
}

func TestList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	infos, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, infos)
	assert.Empty(t, infos)

	for _, name := range []string{"zeta", "alpha", "alpha"} {
		_, err := store.Save(ctx, name, qparams.NewAdvancedQuantizationParams())
		require.NoError(t, err)
	}

	infos, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Info{
		{Name: "alpha", Revisions: 2},
		{Name: "zeta", Revisions: 1},
	}, infos)
}
