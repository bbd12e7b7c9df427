package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polishai/polish/internal/enhance"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInsertGeneratesID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Insert(context.Background(), Record{Type: "general", Model: "openai/gpt-4o-mini"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	records, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestRecentNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-1", "run-2", "run-3"} {
		_, err := store.Insert(ctx, Record{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Type:      "general",
			Model:     "openai/gpt-4o-mini",
		})
		require.NoError(t, err)
	}

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-3", records[0].ID)
	assert.Equal(t, "run-2", records[1].ID)
}

func TestRecentDefaultLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		_, err := store.Insert(ctx, Record{
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			Type:      "general",
			Model:     "m",
		})
		require.NoError(t, err)
	}

	records, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 20)
}

func TestRoundTripFields(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	in := Record{
		ID:             "run-42",
		CreatedAt:      time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
		Type:           "professional",
		Tone:           "formal",
		Model:          "anthropic/claude-3.5-haiku",
		Score:          88,
		Confidence:     90,
		OriginalLength: 120,
		EnhancedLength: 145,
		DurationMs:     2300,
		Stages:         2,
	}

	_, err := store.Insert(ctx, in)
	require.NoError(t, err)

	records, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, in.ID, got.ID)
	assert.True(t, got.CreatedAt.Equal(in.CreatedAt))
	assert.Equal(t, in.Type, got.Type)
	assert.Equal(t, in.Tone, got.Tone)
	assert.Equal(t, in.Model, got.Model)
	assert.Equal(t, in.Score, got.Score)
	assert.Equal(t, in.Confidence, got.Confidence)
	assert.Equal(t, in.OriginalLength, got.OriginalLength)
	assert.Equal(t, in.EnhancedLength, got.EnhancedLength)
	assert.Equal(t, in.DurationMs, got.DurationMs)
	assert.Equal(t, in.Stages, got.Stages)
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Insert(context.Background(), Record{Type: "general", Model: "m"})
	require.NoError(t, err)

	records, err := store.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRecordOf(t *testing.T) {
	req := enhance.Request{Type: enhance.TypeProfessional, Tone: enhance.ToneFormal}
	res := &enhance.Result{
		ModelUsed:        "openai/gpt-4o-mini",
		QualityScore:     92,
		Confidence:       85,
		OriginalLength:   64,
		EnhancedLength:   71,
		ProcessingTimeMs: 1800,
		Stages:           1,
	}

	rec := RecordOf(req, res)

	assert.Empty(t, rec.ID)
	assert.True(t, rec.CreatedAt.IsZero())
	assert.Equal(t, "professional", rec.Type)
	assert.Equal(t, "formal", rec.Tone)
	assert.Equal(t, "openai/gpt-4o-mini", rec.Model)
	assert.Equal(t, 92, rec.Score)
	assert.Equal(t, 85, rec.Confidence)
	assert.Equal(t, 64, rec.OriginalLength)
	assert.Equal(t, 71, rec.EnhancedLength)
	assert.Equal(t, int64(1800), rec.DurationMs)
	assert.Equal(t, 1, rec.Stages)
}
