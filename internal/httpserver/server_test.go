package httpserver

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/fortune/assets"
	"github.com/robalobadob/fortune/internal/game"
	"github.com/robalobadob/fortune/internal/store"
)

// fixedRand always returns the same values. With Float64() == 0 every spin
// starts at velocity 8 and travels 404 degrees before stopping.
type fixedRand struct{}

func (fixedRand) Intn(int) int     { return 0 }
func (fixedRand) Float64() float64 { return 0 }

var testDay = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, corpus ...string) (*Server, store.Store) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	schema, err := fs.ReadFile(assets.Migrations(), "001_results.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	st := store.NewMemoryStore(0)
	s := New(st, db, corpus)
	s.newRand = func() game.Rand { return fixedRand{} }
	s.now = func() time.Time { return testDay }
	return s, st
}

func do(t *testing.T, s *Server, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func newGame(t *testing.T, s *Server, players ...string) (id, token string) {
	t.Helper()
	rec, out := do(t, s, http.MethodPost, "/game/new", "", map[string]any{"players": players})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return out["gameId"].(string), out["token"].(string)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, "CAT")
	rec, out := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])
}

func TestNewGameValidation(t *testing.T) {
	s, _ := newTestServer(t, "CAT")

	rec, out := do(t, s, http.MethodPost, "/game/new", "", map[string]any{"players": []string{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_players", out["error"])

	rec, _ = do(t, s, http.MethodPost, "/game/new", "", map[string]any{"players": []string{"a", "b", "c", "d"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, out = do(t, s, http.MethodPost, "/game/new", "", map[string]any{"players": []string{"ok", "  "}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_player", out["error"])

	empty, _ := newTestServer(t)
	rec, out = do(t, empty, http.MethodPost, "/game/new", "", map[string]any{"players": []string{"a"}})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "no_phrases", out["error"])
}

func TestNewGameHidesPhrase(t *testing.T) {
	s, _ := newTestServer(t, "CAT")
	rec, out := do(t, s, http.MethodPost, "/game/new", "", map[string]any{"players": []string{"Alice"}})
	require.Equal(t, http.StatusOK, rec.Code)

	state := out["state"].(map[string]any)
	assert.NotContains(t, state, "answer")
	assert.Equal(t, "___", state["phrase"])
	assert.EqualValues(t, 3, state["missing"])
	assert.Equal(t, false, out["awaitingGuess"])
	assert.EqualValues(t, 1, out["round"])
}

func TestEndGameDeletesSession(t *testing.T) {
	s, st := newTestServer(t, "CAT")
	id, token := newGame(t, s, "Alice")
	_, otherToken := newGame(t, s, "Bob")
	require.Equal(t, 2, st.Len())

	rec, _ := do(t, s, http.MethodDelete, "/game/"+id, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec, _ = do(t, s, http.MethodDelete, "/game/"+id, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, out := do(t, s, http.MethodDelete, "/game/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])
	assert.Equal(t, 1, st.Len())

	rec, _ = do(t, s, http.MethodGet, "/game/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, s, http.MethodDelete, "/game/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTokenRequired(t *testing.T) {
	s, _ := newTestServer(t, "CAT")
	id, _ := newGame(t, s, "Alice")
	_, otherToken := newGame(t, s, "Bob")

	rec, _ := do(t, s, http.MethodPost, "/game/"+id+"/spin", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, s, http.MethodPost, "/game/"+id+"/spin", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, s, http.MethodPost, "/game/"+id+"/spin", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// reading state is public
	rec, _ = do(t, s, http.MethodGet, "/game/"+id, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, s, http.MethodGet, "/game/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFullRoundOverHTTP(t *testing.T) {
	s, _ := newTestServer(t, "CAT")
	id, tok := newGame(t, s, "Alice")
	base := "/game/" + id

	// guessing before spinning is refused
	rec, out := do(t, s, http.MethodPost, base+"/letter", tok, map[string]string{"guess": "c"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "spin_first", out["error"])

	// 0 + 404 degrees -> 44, segment 2 ($200)
	rec, out = do(t, s, http.MethodPost, base+"/spin", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	spin := out["spin"].(map[string]any)
	assert.Equal(t, "guess", spin["kind"])
	assert.EqualValues(t, 200, spin["segment"].(map[string]any)["value"])
	assert.Equal(t, true, out["awaitingGuess"])

	rec, out = do(t, s, http.MethodPost, base+"/spin", tok, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "guess_first", out["error"])

	rec, out = do(t, s, http.MethodPost, base+"/letter", tok, map[string]string{"guess": "c"})
	require.Equal(t, http.StatusOK, rec.Code)
	outcome := out["outcome"].(map[string]any)
	assert.EqualValues(t, 1, outcome["lettersFound"])
	assert.EqualValues(t, 200, outcome["scoreEarned"])
	assert.Equal(t, "normal_guess", outcome["kind"])
	assert.Equal(t, "C__", out["state"].(map[string]any)["phrase"])
	assert.Equal(t, false, out["awaitingGuess"])

	// 44 + 404 -> 88, segment 5 ($250)
	rec, _ = do(t, s, http.MethodPost, base+"/spin", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// 200 points can't buy a vowel; still our guess
	rec, out = do(t, s, http.MethodPost, base+"/letter", tok, map[string]string{"guess": "a"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "vowel_cant_afford", out["outcome"].(map[string]any)["kind"])
	assert.Equal(t, true, out["awaitingGuess"])

	rec, out = do(t, s, http.MethodPost, base+"/letter", tok, map[string]string{"guess": "ab"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_guess", out["error"])

	rec, out = do(t, s, http.MethodPost, base+"/phrase", tok, map[string]string{"guess": "cat"})
	require.Equal(t, http.StatusOK, rec.Code)
	outcome = out["outcome"].(map[string]any)
	assert.Equal(t, "phrase_correct", outcome["kind"])
	assert.EqualValues(t, 2, outcome["lettersFound"])
	assert.EqualValues(t, 500, outcome["scoreEarned"])

	state := out["state"].(map[string]any)
	assert.Equal(t, "CAT", state["answer"])
	assert.EqualValues(t, 0, state["winner"])

	rec, out = do(t, s, http.MethodPost, base+"/spin", tok, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "game_over", out["error"])

	rec, out = do(t, s, http.MethodGet, "/results/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-10-19", out["date"])
	rows := out["rows"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, "Alice", row["winner"])
	assert.EqualValues(t, 700, row["score"])

	// next round keeps the score
	rec, out = do(t, s, http.MethodPost, base+"/round", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, out["round"])
	state = out["state"].(map[string]any)
	assert.Nil(t, state["winner"])
	assert.EqualValues(t, 700, state["players"].([]any)[0].(map[string]any)["score"])

	rec, out = do(t, s, http.MethodPost, base+"/round", tok, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "round_in_progress", out["error"])
}

func TestPassRotatesTurn(t *testing.T) {
	s, st := newTestServer(t, "CAT")
	id, tok := newGame(t, s, "A", "B")

	rec, out := do(t, s, http.MethodPost, "/game/"+id+"/pass", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, out["state"].(map[string]any)["turn"])

	sess, err := st.Get(context.Background(), id)
	require.NoError(t, err)
	_ = sess.Do(func(_ *store.Session, g *game.Game) error {
		assert.Equal(t, 1, g.CurrentTurnIndex())
		return nil
	})
}

func TestDailyGameUsesPhraseOfTheDay(t *testing.T) {
	s, _ := newTestServer(t, "ONE", "TWO", "THREE", "FOUR")
	rec, out := do(t, s, http.MethodPost, "/game/new", "", map[string]any{"players": []string{"A"}, "daily": true})
	require.Equal(t, http.StatusOK, rec.Code)
	first := out["state"].(map[string]any)["phrase"]

	for i := 0; i < 3; i++ {
		_, out = do(t, s, http.MethodPost, "/game/new", "", map[string]any{"players": []string{"B"}, "daily": true})
		assert.Equal(t, first, out["state"].(map[string]any)["phrase"])
	}
}
