package game

import "errors"

// Precondition failures. None of them mutate game state.
var (
	ErrInvalidGuess  = errors.New("invalid guess")
	ErrNoPlayers     = errors.New("no players")
	ErrEmptyName     = errors.New("player name is empty")
	ErrEmptyCorpus   = errors.New("phrase corpus is empty")
	ErrNoRound       = errors.New("no round in progress")
	ErrGameOver      = errors.New("round already has a winner")
	ErrWheelSpinning = errors.New("wheel is still spinning")
	ErrBadTurn       = errors.New("turn index out of range")
)
