// internal/game/engine.go
//
// Core game engine for one table of wheel-and-phrase play.
// Responsibilities:
//   - Own the Wheel, the Phrase, and the ordered player list.
//   - Rotate turns (wrap-around; a single player never rotates).
//   - Apply letter guesses: vowel purchase, per-letter scoring, winner on full reveal.
//   - Apply phrase guesses: credit for missing letters, solver wins outright.
//   - Resolve the stopped wheel: bankrupt, lose a turn, free spin, or money.
//
// Notes:
//   - The engine is not safe for concurrent use; callers serialize all calls
//     on one Game (the HTTP store does this with a per-session mutex).
//   - Precondition failures return an error and leave state untouched.
//     An unaffordable vowel is an outcome, not an error.

package game

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// VowelCost is deducted from the current player's score to buy a vowel.
const VowelCost = 250

const vowels = "AEIOU"

// Game is the state of one table: wheel, phrase, players, turn and winner.
type Game struct {
	wheel   *Wheel
	phrase  *Phrase
	players []Player
	turn    int
	winner  int // -1 until the round is won
	corpus  []string
	rng     Rand
}

// Option configures a Game.
type Option func(*Game)

// WithRand injects the random source shared by the wheel, the phrase and
// first-player selection.
func WithRand(r Rand) Option {
	return func(g *Game) { g.rng = r }
}

// New constructs a game over corpus. Players are added with AddPlayer and a
// round is started with NewGame.
func New(corpus []string, opts ...Option) *Game {
	g := &Game{winner: -1, corpus: append([]string(nil), corpus...)}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = NewRand()
	}
	g.wheel = NewWheel(g.rng)
	g.phrase = NewPhrase(g.rng)
	return g
}

// NewGame starts a round: random phrase, random first player, no winner.
// Scores carry over from the previous round.
func (g *Game) NewGame() error {
	if len(g.players) == 0 {
		return ErrNoPlayers
	}
	if err := g.phrase.SelectRandom(g.corpus); err != nil {
		return err
	}
	g.RandomFirstPlayer()
	g.winner = -1
	return nil
}

// NewGameWith starts a round on a fixed phrase (phrase of the day, tests).
func (g *Game) NewGameWith(hidden string) error {
	if len(g.players) == 0 {
		return ErrNoPlayers
	}
	if err := g.phrase.Set(hidden); err != nil {
		return err
	}
	g.RandomFirstPlayer()
	g.winner = -1
	return nil
}

// AddPlayer appends a player with a zero score.
func (g *Game) AddPlayer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	g.players = append(g.players, Player{Name: name})
	return nil
}

// ResetPlayers clears the table and drops the current round; guesses fail
// with ErrNoRound until the next NewGame.
func (g *Game) ResetPlayers() {
	g.players = nil
	g.turn = 0
	g.winner = -1
	g.phrase = NewPhrase(g.rng)
}

// RandomFirstPlayer picks the starting player uniformly; with one player it
// is always index 0.
func (g *Game) RandomFirstPlayer() {
	if len(g.players) <= 1 {
		g.turn = 0
		return
	}
	g.turn = g.rng.Intn(len(g.players))
}

// NextTurn passes play to the next player, wrapping around.
func (g *Game) NextTurn() {
	if len(g.players) <= 1 {
		return
	}
	g.turn = (g.turn + 1) % len(g.players)
}

// SetTurn moves the turn pointer directly.
func (g *Game) SetTurn(i int) error {
	if i < 0 || i >= len(g.players) {
		return ErrBadTurn
	}
	g.turn = i
	return nil
}

// GuessLetter applies a single-letter guess for the current player.
//
// Rules:
//   - Vowels cost VowelCost and need score - VowelCost >= 0; an unaffordable
//     vowel returns OutcomeVowelCantAfford with no state change at all.
//   - Earned = newly revealed letters * wheel value.
//   - No match passes the turn.
//   - Full reveal ends the round; the highest score wins (first in player
//     order on ties).
func (g *Game) GuessLetter(raw string) (GuessOutcome, error) {
	if err := g.guessable(); err != nil {
		return GuessOutcome{}, err
	}
	raw = strings.TrimSpace(raw)
	if utf8.RuneCountInString(raw) != 1 {
		return GuessOutcome{}, ErrInvalidGuess
	}

	vowel := isVowel(raw)
	wheelValue := g.wheel.SelectedSegment().Value
	cur := &g.players[g.turn]

	if vowel {
		if cur.Score-VowelCost < 0 {
			return GuessOutcome{Kind: OutcomeVowelCantAfford, Vowel: true}, nil
		}
		cur.LoseScore(VowelCost)
	}

	matches := g.phrase.MatchLetter(raw)
	earned := matches * wheelValue
	cur.AddScore(earned)

	if matches == 0 {
		g.NextTurn()
	}

	kind := OutcomeNormalGuess
	if g.phrase.FullyRevealed() {
		kind = OutcomeWinner
		g.winner = g.leader()
	}
	return GuessOutcome{LettersFound: matches, ScoreEarned: earned, Kind: kind, Vowel: vowel}, nil
}

// GuessPhrase applies a full-phrase guess for the current player. A correct
// guess credits every still-hidden letter at the wheel value and makes the
// guesser the winner regardless of other scores; a wrong guess passes the turn.
func (g *Game) GuessPhrase(raw string) (GuessOutcome, error) {
	if err := g.guessable(); err != nil {
		return GuessOutcome{}, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return GuessOutcome{}, ErrInvalidGuess
	}

	wheelValue := g.wheel.SelectedSegment().Value
	if !g.phrase.MatchPhrase(raw) {
		g.NextTurn()
		return GuessOutcome{Kind: OutcomePhraseIncorrect}, nil
	}

	missing := g.phrase.MissingCount()
	earned := missing * wheelValue
	g.players[g.turn].AddScore(earned)
	g.phrase.RevealAll()
	g.winner = g.turn
	return GuessOutcome{LettersFound: missing, ScoreEarned: earned, Kind: OutcomePhraseCorrect}, nil
}

// ResolveSpin applies the segment the stopped wheel selected to the current
// player. Bankrupt zeroes the score and passes the turn, lose-a-turn passes
// the turn, free spin changes nothing, money lets the player guess.
func (g *Game) ResolveSpin() (SpinResult, error) {
	if err := g.guessable(); err != nil {
		return SpinResult{}, err
	}
	seg := g.wheel.SelectedSegment()
	res := SpinResult{Segment: seg, Player: g.turn}

	switch seg.Type {
	case SegmentBankrupt:
		g.players[g.turn].Bankrupt()
		g.NextTurn()
		res.Kind = SpinBankrupt
	case SegmentLoseATurn:
		g.NextTurn()
		res.Kind = SpinLostTurn
	case SegmentFreeSpin:
		res.Kind = SpinSpinAgain
	default:
		res.Kind = SpinGuess
	}
	return res, nil
}

// guessable checks the preconditions shared by guesses and spin resolution.
func (g *Game) guessable() error {
	switch {
	case len(g.players) == 0:
		return ErrNoPlayers
	case g.phrase.empty():
		return ErrNoRound
	case g.winner >= 0:
		return ErrGameOver
	case !g.wheel.Stopped():
		return ErrWheelSpinning
	}
	return nil
}

// leader returns the index of the first player holding the maximum score.
func (g *Game) leader() int {
	best := 0
	for i := 1; i < len(g.players); i++ {
		if g.players[i].Score > g.players[best].Score {
			best = i
		}
	}
	return best
}

func isVowel(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return strings.ContainsRune(vowels, unicode.ToUpper(r))
}

// CurrentPlayer returns a copy of the player whose turn it is.
func (g *Game) CurrentPlayer() (Player, bool) {
	if len(g.players) == 0 {
		return Player{}, false
	}
	return g.players[g.turn], true
}

// CurrentTurnIndex is the index of the player whose turn it is.
func (g *Game) CurrentTurnIndex() int { return g.turn }

// Winner returns the round winner, if any.
func (g *Game) Winner() (Player, bool) {
	if g.winner < 0 {
		return Player{}, false
	}
	return g.players[g.winner], true
}

// Players returns a copy of the player list in turn order.
func (g *Game) Players() []Player {
	return append([]Player(nil), g.players...)
}

// Wheel exposes the wheel so the driver can spin and tick it.
func (g *Game) Wheel() *Wheel { return g.wheel }

// Phrase exposes the phrase for rendering.
func (g *Game) Phrase() *Phrase { return g.phrase }

// Snapshot copies everything a renderer needs.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Players: g.Players(),
		Turn:    g.turn,
		Wheel:   g.wheel.state(),
	}
	if !g.phrase.empty() {
		s.Phrase = g.phrase.Current()
		s.Missing = g.phrase.MissingCount()
	}
	if g.winner >= 0 {
		w := g.winner
		s.Winner = &w
		s.Answer = g.phrase.Hidden()
	}
	return s
}
