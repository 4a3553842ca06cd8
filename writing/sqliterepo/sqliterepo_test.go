package sqliterepo

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/programme-lv/writing/writing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *sqliteSubmRepo {
	t.Helper()
	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "writing.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestListByUserOrderFilterAndProjection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)
	base := time.Date(2024, 6, 1, 9, 0, 0, 500, time.UTC)

	a := domain.WritingSubm{
		UUID: uuid.New(), UserID: "alice", CreatedAt: base,
		Difficulty: "easy", Topic: "pets", PromptText: "p", UserText: "my cat",
		WordCount: 2, Evaluation: json.RawMessage(`{"grade":"B"}`),
	}
	b := a
	b.UUID = uuid.New()
	b.CreatedAt = base.Add(10 * time.Second)
	b.Evaluation = nil
	// across a second boundary with fewer fractional digits
	c := a
	c.UUID = uuid.New()
	c.CreatedAt = base.Add(9*time.Second + 999*time.Millisecond)
	other := a
	other.UUID = uuid.New()
	other.UserID = "bob"

	for _, s := range []domain.WritingSubm{a, b, c, other} {
		require.NoError(t, repo.StoreSubm(ctx, s))
	}

	got, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, b.UUID, got[0].UUID)
	assert.Equal(t, c.UUID, got[1].UUID)
	assert.Equal(t, a.UUID, got[2].UUID)

	assert.Nil(t, got[0].Evaluation)
	assert.JSONEq(t, `{"grade":"B"}`, string(got[2].Evaluation))
	assert.True(t, got[2].CreatedAt.Equal(base))
	assert.Equal(t, "my cat", got[2].UserText)
	assert.Equal(t, 2, got[2].WordCount)
}

func TestListByUserEmpty(t *testing.T) {
	t.Parallel()
	got, err := newTestRepo(t).ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUserAfterClose(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	require.NoError(t, repo.Close())

	_, err := repo.ListByUser(context.Background(), "alice")
	require.Error(t, err)
}

func TestStoreSubmUpserts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)
	s := domain.WritingSubm{UUID: uuid.New(), UserID: "alice", CreatedAt: time.Now(), UserText: "x", WordCount: 1}
	require.NoError(t, repo.StoreSubm(ctx, s))

	s.Evaluation = json.RawMessage(`{"score":1}`)
	require.NoError(t, repo.StoreSubm(ctx, s))

	got, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"score":1}`, string(got[0].Evaluation))
	require.NoError(t, repo.Ping(ctx))
}
