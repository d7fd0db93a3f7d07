package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/contractsearch/core"
	"github.com/poiesic/contractsearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRuns(t *testing.T) storage.RunRepository {
	t.Helper()
	runs, _, backend, err := NewMemoryStores(0)
	require.NoError(t, err)
	t.Cleanup(func() {
		runs.Close()
		backend.Close()
	})
	return runs
}

func sampleRun(contract string, createdAt time.Time) *core.SearchRun {
	return &core.SearchRun{
		Fingerprint: core.IDFromContent(contract),
		Profile: core.ContractProfile{
			ContractType:  "NDA",
			SearchQueries: []string{"nda template"},
		},
		Results: []core.RankedResult{{
			SearchHit: core.SearchHit{
				Title:     "NDA",
				URL:       "https://www.sec.gov/a.htm",
				Source:    core.SourceSECEdgar,
				QueryUsed: "nda template",
			},
			SimilarityScore: 90,
			Explanation:     "match",
		}},
		CreatedAt: createdAt,
	}
}

func TestRunRepository_AddAndGet(t *testing.T) {
	runs := newTestRuns(t)
	ctx := context.Background()

	added, err := runs.AddRun(ctx, sampleRun("contract A", time.Time{}))
	require.NoError(t, err)
	assert.NotZero(t, added.Id)
	assert.False(t, added.CreatedAt.IsZero())

	got, err := runs.GetRun(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, added, got)
}

func TestRunRepository_GetMissing(t *testing.T) {
	runs := newTestRuns(t)

	_, err := runs.GetRun(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRunRepository_IDsAreUnique(t *testing.T) {
	runs := newTestRuns(t)
	ctx := context.Background()

	first, err := runs.AddRun(ctx, sampleRun("a", time.Time{}))
	require.NoError(t, err)
	second, err := runs.AddRun(ctx, sampleRun("a", time.Time{}))
	require.NoError(t, err)
	assert.NotEqual(t, first.Id, second.Id)
}

func TestRunRepository_GetRecentRuns(t *testing.T) {
	runs := newTestRuns(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	var ids []core.ID
	for i := range 4 {
		run, err := runs.AddRun(ctx, sampleRun("c", base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
		ids = append(ids, run.Id)
	}

	recent, err := runs.GetRecentRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, ids[3], recent[0].Id)
	assert.Equal(t, ids[2], recent[1].Id)
	assert.Equal(t, ids[1], recent[2].Id)

	_, err = runs.GetRecentRuns(ctx, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestRunRepository_GetRunsByFingerprint(t *testing.T) {
	runs := newTestRuns(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	a1, err := runs.AddRun(ctx, sampleRun("contract A", base))
	require.NoError(t, err)
	_, err = runs.AddRun(ctx, sampleRun("contract B", base.Add(time.Minute)))
	require.NoError(t, err)
	a2, err := runs.AddRun(ctx, sampleRun("contract A", base.Add(2*time.Minute)))
	require.NoError(t, err)

	got, err := runs.GetRunsByFingerprint(ctx, core.IDFromContent("contract A"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a1.Id, got[0].Id)
	assert.Equal(t, a2.Id, got[1].Id)

	none, err := runs.GetRunsByFingerprint(ctx, core.IDFromContent("contract C"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRunRepository_DeleteRuns(t *testing.T) {
	runs := newTestRuns(t)
	ctx := context.Background()

	run, err := runs.AddRun(ctx, sampleRun("contract A", time.Time{}))
	require.NoError(t, err)

	require.NoError(t, runs.DeleteRuns(ctx, run.Id))

	_, err = runs.GetRun(ctx, run.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	byFingerprint, err := runs.GetRunsByFingerprint(ctx, run.Fingerprint)
	require.NoError(t, err)
	assert.Empty(t, byFingerprint)

	recent, err := runs.GetRecentRuns(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	assert.ErrorIs(t, runs.DeleteRuns(ctx, run.Id), storage.ErrNotFound)
}
