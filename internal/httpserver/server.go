// internal/httpserver/server.go
//
// HTTP server wiring for the wheel game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", GET /game/{id}.
//   - Command endpoints (host token required): spin, letter, phrase, pass, round.
//   - Results ledger endpoints: mounted under /results.
//
// Notes:
//   - Every command runs inside Session.Do, so calls on one game are serialized.
//   - Responses carry a fresh engine Snapshot; clients keep no game state.
//   - A guess is accepted only after a spin landed on money (Session.Awaiting).

package httpserver

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fortune/internal/daily"
	"github.com/robalobadob/fortune/internal/game"
	"github.com/robalobadob/fortune/internal/store"
)

// maxPlayers matches the largest table the setup screen offers.
const maxPlayers = 3

var (
	errSpinFirst       = errors.New("spin_first")
	errGuessFirst      = errors.New("guess_first")
	errRoundInProgress = errors.New("round_in_progress")
	errBadPlayers      = errors.New("bad_players")
)

// Server bundles router, session store, and results ledger.
type Server struct {
	r       *chi.Mux
	store   store.Store
	results *daily.Store
	corpus  []string

	newRand func() game.Rand
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
// db may be nil, in which case finished rounds are not recorded.
func New(st store.Store, db *sql.DB, corpus []string) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		corpus:  corpus,
		newRand: game.NewRand,
		now:     time.Now,
	}
	if db != nil {
		s.results = daily.NewStore(db)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // CORS for the browser client

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"fortune-go","endpoints":["/health","POST /game/new","GET /game/{id}","POST /game/{id}/spin","POST /game/{id}/letter","POST /game/{id}/phrase","DELETE /game/{id}","/results/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", s.handleState)
		r.Group(func(r chi.Router) {
			r.Use(s.requireHost)
			r.Post("/spin", s.handleSpin)
			r.Post("/letter", s.handleLetter)
			r.Post("/phrase", s.handlePhrase)
			r.Post("/pass", s.handlePass)
			r.Post("/round", s.handleRound)
			r.Delete("/", s.handleEnd)
		})
	})

	s.mountResults(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	// Debug: corpus size
	s.r.Get("/debug/phrases", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"phrases": len(s.corpus), "sessions": s.store.Len()})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request with status and latency.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("reqId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Players []string `json:"players"`
	Daily   bool     `json:"daily"` // play the phrase of the day
}
type newGameRes struct {
	GameID string `json:"gameId"`
	Token  string `json:"token"` // bearer token for the command endpoints
	sessionView
}

// sessionView is the state every game endpoint returns.
type sessionView struct {
	State    game.Snapshot `json:"state"`
	Awaiting bool          `json:"awaitingGuess"`
	Round    int           `json:"round"`
}

func view(s *store.Session, g *game.Game) sessionView {
	return sessionView{State: g.Snapshot(), Awaiting: s.Awaiting, Round: s.Round}
}

// handleNewGame seats the players, starts the first round and issues a host token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if len(req.Players) == 0 || len(req.Players) > maxPlayers {
		writeError(w, errBadPlayers)
		return
	}

	g := game.New(s.corpus, game.WithRand(s.newRand()))
	for _, name := range req.Players {
		if err := g.AddPlayer(name); err != nil {
			writeError(w, err)
			return
		}
	}
	var err error
	if req.Daily {
		err = g.NewGameWith(daily.Phrase(s.now(), daily.Salt(), s.corpus))
	} else {
		err = g.NewGame()
	}
	if err != nil {
		log.Error().Err(err).Msg("start round")
		writeError(w, err)
		return
	}

	sess := store.NewSession(genID(), g)
	sess.Daily = req.Daily
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	tok, err := signGameToken(sess.ID)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}

	log.Info().Str("gameId", sess.ID).Int("players", len(req.Players)).Bool("daily", req.Daily).Msg("game created")
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, Token: tok, sessionView: view(sess, g)})
}

// handleState returns the current snapshot. The hidden phrase is only
// included once the round has a winner.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *store.Session, g *game.Game) (any, error) {
		return view(sess, g), nil
	})
}

type spinRes struct {
	Spin  game.SpinResult `json:"spin"`
	Ticks int             `json:"ticks"`
	sessionView
}

// handleSpin spins the wheel to rest and applies the segment it stops on.
func (s *Server) handleSpin(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *store.Session, g *game.Game) (any, error) {
		if sess.Awaiting {
			return nil, errGuessFirst
		}
		if _, won := g.Winner(); won {
			return nil, game.ErrGameOver
		}
		wh := g.Wheel()
		wh.StartSpin()
		ticks := wh.SpinToRest()
		res, err := g.ResolveSpin()
		if err != nil {
			return nil, err
		}
		sess.Awaiting = res.Kind == game.SpinGuess
		log.Info().Str("gameId", sess.ID).Str("segment", res.Segment.Label()).Str("kind", string(res.Kind)).Msg("spin")
		return spinRes{Spin: res, Ticks: ticks, sessionView: view(sess, g)}, nil
	})
}

// guessReq/Res payloads for the letter and phrase endpoints.
type guessReq struct {
	Guess string `json:"guess"`
}
type guessRes struct {
	Outcome game.GuessOutcome `json:"outcome"`
	sessionView
}

func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	s.handleGuess(w, r, (*game.Game).GuessLetter)
}

func (s *Server) handlePhrase(w http.ResponseWriter, r *http.Request) {
	s.handleGuess(w, r, (*game.Game).GuessPhrase)
}

// handleGuess applies a letter or phrase guess and records the round if it
// produced a winner. An unaffordable vowel keeps the player in guess mode.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request, guess func(*game.Game, string) (game.GuessOutcome, error)) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.withSession(w, r, func(sess *store.Session, g *game.Game) (any, error) {
		if !sess.Awaiting {
			return nil, errSpinFirst
		}
		out, err := guess(g, req.Guess)
		if err != nil {
			return nil, err
		}
		if out.Kind != game.OutcomeVowelCantAfford {
			sess.Awaiting = false
		}
		if out.Kind == game.OutcomeWinner || out.Kind == game.OutcomePhraseCorrect {
			s.recordResult(r, sess, g)
		}
		log.Info().Str("gameId", sess.ID).Str("kind", string(out.Kind)).Int("found", out.LettersFound).Int("earned", out.ScoreEarned).Msg("guess")
		return guessRes{Outcome: out, sessionView: view(sess, g)}, nil
	})
}

// handlePass hands the turn to the next player without a guess.
func (s *Server) handlePass(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *store.Session, g *game.Game) (any, error) {
		if _, won := g.Winner(); won {
			return nil, game.ErrGameOver
		}
		g.NextTurn()
		sess.Awaiting = false
		return view(sess, g), nil
	})
}

// handleRound starts the next round on a finished game; scores carry over.
func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *store.Session, g *game.Game) (any, error) {
		if _, won := g.Winner(); !won {
			return nil, errRoundInProgress
		}
		if err := g.NewGame(); err != nil {
			return nil, err
		}
		sess.Round++
		sess.Awaiting = false
		log.Info().Str("gameId", sess.ID).Int("round", sess.Round).Msg("new round")
		return view(sess, g), nil
	})
}

// handleEnd closes a table and frees its session.
func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	log.Info().Str("gameId", id).Msg("game ended")
	_, _ = w.Write([]byte(`{"ok":true}`))
}

// withSession loads the session named in the path, runs fn under its lock
// and writes fn's result (or error) as JSON.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*store.Session, *game.Game) (any, error)) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var out any
	err = sess.Do(func(sess *store.Session, g *game.Game) error {
		var err error
		out, err = fn(sess, g)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// recordResult appends a won round to the results ledger (best effort).
func (s *Server) recordResult(r *http.Request, sess *store.Session, g *game.Game) {
	if s.results == nil {
		return
	}
	winner, _ := g.Winner()
	res := daily.Result{
		GameID:  sess.ID,
		Round:   sess.Round,
		Date:    daily.DateKey(s.now()),
		Winner:  winner.Name,
		Score:   winner.Score,
		Players: len(g.Players()),
		Phrase:  g.Phrase().Hidden(),
		Daily:   sess.Daily,
	}
	if err := s.results.InsertResult(r.Context(), res); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("record result")
		return
	}
	log.Info().Str("gameId", sess.ID).Str("winner", winner.Name).Int("score", winner.Score).Msg("round won")
}

// ------------------------------- errors ------------------------------------

// errorStatus maps known errors to an HTTP status and a stable code.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{store.ErrNotFound, http.StatusNotFound, "not_found"},
	{game.ErrInvalidGuess, http.StatusBadRequest, "invalid_guess"},
	{game.ErrEmptyName, http.StatusBadRequest, "invalid_player"},
	{errBadPlayers, http.StatusBadRequest, "bad_players"},
	{game.ErrGameOver, http.StatusConflict, "game_over"},
	{game.ErrWheelSpinning, http.StatusConflict, "wheel_spinning"},
	{game.ErrNoRound, http.StatusConflict, "no_round"},
	{game.ErrNoPlayers, http.StatusConflict, "no_players"},
	{errSpinFirst, http.StatusConflict, "spin_first"},
	{errGuessFirst, http.StatusConflict, "guess_first"},
	{errRoundInProgress, http.StatusConflict, "round_in_progress"},
	{game.ErrEmptyCorpus, http.StatusServiceUnavailable, "no_phrases"},
}

func writeError(w http.ResponseWriter, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			http.Error(w, `{"error":"`+e.code+`"}`, e.status)
			return
		}
	}
	log.Error().Err(err).Msg("unhandled error")
	http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
}

// ------------------------------- small util --------------------------------

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// queryInt parses an integer query parameter, returning def when absent or invalid.
func queryInt(r *http.Request, k string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(k)); err == nil {
		return v
	}
	return def
}
