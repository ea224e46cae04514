package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/fortune/internal/game"
)

func TestBoardText(t *testing.T) {
	assert.Equal(t, "C _ _", boardText("C__"))
	assert.Equal(t, "_ _   _", boardText("__ _"))
	assert.Equal(t, "", boardText(""))
}

func TestScoreTable(t *testing.T) {
	data := scoreTable([]game.Player{{Name: "A", Score: 100}, {Name: "B", Score: -50}}, 1)
	assert.Len(t, data, 3)
	assert.Equal(t, []string{"", "A", "£100"}, data[1])
	assert.Equal(t, []string{"▶", "B", "£-50"}, data[2])
}

func TestDescribeOutcome(t *testing.T) {
	assert.Equal(t, "You need 250 to buy a vowel!",
		describeOutcome(game.GuessOutcome{Kind: game.OutcomeVowelCantAfford, Vowel: true}))
	assert.Equal(t, "You bought a vowel for £250. You found 2, worth £600!",
		describeOutcome(game.GuessOutcome{LettersFound: 2, ScoreEarned: 600, Kind: game.OutcomeNormalGuess, Vowel: true}))
	assert.Equal(t, "No luck, the turn passes.",
		describeOutcome(game.GuessOutcome{Kind: game.OutcomeNormalGuess}))
	assert.Contains(t, describeOutcome(game.GuessOutcome{LettersFound: 3, ScoreEarned: 900, Kind: game.OutcomePhraseCorrect}), "£900")
}

func TestDescribeSpin(t *testing.T) {
	assert.Contains(t, describeSpin(game.SpinResult{Kind: game.SpinBankrupt}, "Ann"), "bankrupt")
	assert.Equal(t, "Ann landed on £400.",
		describeSpin(game.SpinResult{Kind: game.SpinGuess, Segment: game.WheelSegment{Type: game.SegmentMoney, Value: 400}}, "Ann"))
}

func TestWheelLine(t *testing.T) {
	w := game.NewWheel(game.NewSeededRand(1))
	w.SetAngle(0)
	line := wheelLine(w)
	assert.Contains(t, line, "£1000") // neighbour before index 0 wraps to 23
	assert.Contains(t, line, "▶ £400")
	assert.Contains(t, line, "Lose a Turn")
}

func TestAnotherRoundReturnsPromptError(t *testing.T) {
	eof := errors.New("EOF")
	again, err := anotherRound(func() (bool, error) { return false, eof })
	assert.ErrorIs(t, err, eof)
	assert.False(t, again)

	again, err = anotherRound(func() (bool, error) { return true, nil })
	assert.NoError(t, err)
	assert.True(t, again)
}
