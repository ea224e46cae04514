// internal/game/types.go
//
// Core type definitions for the wheel game engine.
// Defines:
//   - SegmentType / WheelSegment: one wedge of the reward wheel.
//   - OutcomeType / GuessOutcome: result of a single letter or phrase guess.
//   - SpinKind / SpinResult: what the stopped wheel means for the current player.
//   - Snapshot: a value copy of the whole game for rendering.

package game

// SegmentType identifies what a wheel segment does when the wheel stops on it.
type SegmentType string

const (
	SegmentMoney     SegmentType = "money"
	SegmentBankrupt  SegmentType = "bankrupt"
	SegmentFreeSpin  SegmentType = "free_spin"
	SegmentLoseATurn SegmentType = "lose_a_turn"
)

// Label returns the display name of the segment type.
func (t SegmentType) Label() string {
	switch t {
	case SegmentMoney:
		return "Money"
	case SegmentBankrupt:
		return "Bankrupt"
	case SegmentFreeSpin:
		return "Free Spin"
	case SegmentLoseATurn:
		return "Lose a Turn"
	}
	return "Unknown"
}

// WheelSegment is one of the fixed wedges on the wheel.
// Value is only meaningful (and positive) for SegmentMoney; it is 0 otherwise.
type WheelSegment struct {
	Type  SegmentType `json:"type"`
	Value int         `json:"value"`
}

// OutcomeType classifies the result of a guess.
type OutcomeType string

const (
	OutcomeWinner          OutcomeType = "winner"
	OutcomeNormalGuess     OutcomeType = "normal_guess"
	OutcomeVowelCantAfford OutcomeType = "vowel_cant_afford"
	OutcomePhraseCorrect   OutcomeType = "phrase_correct"
	OutcomePhraseIncorrect OutcomeType = "phrase_incorrect"
)

// GuessOutcome describes what happened on one GuessLetter or GuessPhrase call.
type GuessOutcome struct {
	LettersFound int         `json:"lettersFound"` // newly revealed (or credited) letters
	ScoreEarned  int         `json:"scoreEarned"`  // LettersFound * wheel value
	Kind         OutcomeType `json:"kind"`
	Vowel        bool        `json:"vowel"` // guess was a purchased vowel attempt
}

// SpinKind is the consequence of the segment the wheel stopped on.
type SpinKind string

const (
	SpinGuess     SpinKind = "guess"      // money segment: the player may guess
	SpinBankrupt  SpinKind = "bankrupt"   // score reset to 0, turn passes
	SpinLostTurn  SpinKind = "lost_turn"  // turn passes
	SpinSpinAgain SpinKind = "spin_again" // free spin: same player spins again
)

// SpinResult is returned by ResolveSpin.
type SpinResult struct {
	Segment WheelSegment `json:"segment"`
	Kind    SpinKind     `json:"kind"`
	Player  int          `json:"player"` // index of the player who spun
}

// WheelState is the renderable part of the wheel.
type WheelState struct {
	Angle    float64      `json:"angle"`
	Velocity float64      `json:"velocity"`
	Index    int          `json:"index"`
	Segment  WheelSegment `json:"segment"`
}

// Snapshot is a detached copy of the game state.
// Answer is only populated once the round has a winner.
type Snapshot struct {
	Phrase  string     `json:"phrase"`
	Answer  string     `json:"answer,omitempty"`
	Missing int        `json:"missing"`
	Players []Player   `json:"players"`
	Turn    int        `json:"turn"`
	Winner  *int       `json:"winner,omitempty"`
	Wheel   WheelState `json:"wheel"`
}
