package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/robalobadob/fortune/internal/game"
)

// boardText spaces the masked phrase out so each tile is readable.
func boardText(masked string) string {
	var b strings.Builder
	for i, r := range []rune(masked) {
		if i > 0 {
			b.WriteRune(' ')
		}
		if r == ' ' {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// scoreTable lists the players; the one to move is marked.
func scoreTable(players []game.Player, turn int) pterm.TableData {
	data := pterm.TableData{{"", "Player", "Score"}}
	for i, p := range players {
		mark := ""
		if i == turn {
			mark = "▶"
		}
		data = append(data, []string{mark, p.Name, "£" + strconv.Itoa(p.Score)})
	}
	return data
}

// wheelLine shows the segment under the pointer and its neighbours.
func wheelLine(w *game.Wheel) string {
	segs := w.Segments()
	i := w.SelectedIndex()
	n := len(segs)
	prev := segs[(i+n-1)%n].Label()
	next := segs[(i+1)%n].Label()
	return fmt.Sprintf("%12s | ▶ %-11s ◀ | %-12s %5.2f°/tick", prev, segs[i].Label(), next, w.Velocity())
}

func describeSpin(res game.SpinResult, name string) string {
	switch res.Kind {
	case game.SpinBankrupt:
		return fmt.Sprintf("Oh no! %s is bankrupt! Score reset to 0 and the turn passes.", name)
	case game.SpinLostTurn:
		return fmt.Sprintf("Oh no! %s loses a turn!", name)
	case game.SpinSpinAgain:
		return fmt.Sprintf("Free spin! %s spins again.", name)
	}
	return fmt.Sprintf("%s landed on %s.", name, res.Segment.Label())
}

func describeOutcome(out game.GuessOutcome) string {
	switch out.Kind {
	case game.OutcomeVowelCantAfford:
		return fmt.Sprintf("You need %d to buy a vowel!", game.VowelCost)
	case game.OutcomePhraseIncorrect:
		return "Sorry, that's not it. Play passes to the next player."
	case game.OutcomePhraseCorrect:
		return fmt.Sprintf("Solved! %d hidden letters earn you £%d.", out.LettersFound, out.ScoreEarned)
	}
	var b strings.Builder
	if out.Vowel {
		fmt.Fprintf(&b, "You bought a vowel for £%d. ", game.VowelCost)
	}
	if out.LettersFound == 0 {
		b.WriteString("No luck, the turn passes.")
	} else {
		fmt.Fprintf(&b, "You found %d, worth £%d!", out.LettersFound, out.ScoreEarned)
	}
	return b.String()
}

func printState(g *game.Game) {
	s := g.Snapshot()
	pterm.DefaultBox.
		WithTitle(pterm.LightYellow("|PUZZLE|")).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		Println(boardText(s.Phrase))
	_ = pterm.DefaultTable.WithHasHeader().WithData(scoreTable(s.Players, s.Turn)).Render()
}

func printWinner(g *game.Game) {
	w, ok := g.Winner()
	if !ok {
		return
	}
	s := g.Snapshot()
	text := pterm.Sprintfln("The phrase was %s", pterm.LightGreen(s.Answer)) +
		pterm.Sprintfln("%s wins with £%d", pterm.LightCyan(w.Name), w.Score)
	pterm.DefaultBox.
		WithTitle(pterm.LightGreen("|WINNER|")).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		WithTopPadding(1).
		WithBottomPadding(1).
		Println(text)
	_ = pterm.DefaultTable.WithHasHeader().WithData(scoreTable(s.Players, -1)).Render()
}
