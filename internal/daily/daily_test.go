package daily

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/fortune/assets"
)

func TestPhraseIndexDeterministic(t *testing.T) {
	day := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)
	a := PhraseIndex(day, "salt", 25)
	b := PhraseIndex(day.Add(-time.Hour), "salt", 25)
	assert.Equal(t, a, b, "same UTC day, same index")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 25)

	assert.Zero(t, PhraseIndex(day, "salt", 0))
	assert.Equal(t, "", Phrase(day, "salt", nil))
	assert.Equal(t, "ONLY", Phrase(day, "salt", []string{"ONLY"}))
}

func TestPhraseIndexVariesWithSalt(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for _, salt := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		seen[PhraseIndex(day, salt, 1000)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := fs.ReadFile(assets.Migrations(), "001_results.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func TestSaltDefaultsWhenUnset(t *testing.T) {
	t.Setenv("DAILY_SALT", "")
	assert.Equal(t, DefaultSalt, Salt())

	t.Setenv("DAILY_SALT", "pepper")
	assert.Equal(t, "pepper", Salt())
}

func TestStoreLeaderboard(t *testing.T) {
	ctx := context.Background()
	st := NewStore(openTestDB(t))

	rows := []Result{
		{GameID: "g1", Round: 1, Date: "2026-10-19", Winner: "Alice", Score: 1200, Players: 2, Phrase: "CAT"},
		{GameID: "g2", Round: 1, Date: "2026-10-19", Winner: "Bob", Score: 3000, Players: 1, Phrase: "DOG", Daily: true},
		{GameID: "g3", Round: 1, Date: "2026-10-18", Winner: "Carol", Score: 9000, Players: 3, Phrase: "EMU"},
	}
	for _, r := range rows {
		require.NoError(t, st.InsertResult(ctx, r))
	}
	// duplicate is ignored
	require.NoError(t, st.InsertResult(ctx, Result{GameID: "g1", Round: 1, Date: "2026-10-19", Winner: "X", Score: 1, Phrase: "Y"}))

	lb, err := st.Leaderboard(ctx, "2026-10-19", 0)
	require.NoError(t, err)
	require.Len(t, lb, 2)
	assert.Equal(t, LBRow{Winner: "Bob", Score: 3000, Phrase: "DOG", Daily: true}, lb[0])
	assert.Equal(t, "Alice", lb[1].Winner)

	lb, err = st.Leaderboard(ctx, "2026-10-19", 1)
	require.NoError(t, err)
	assert.Len(t, lb, 1)
}
