// Command fortune is a hot-seat terminal client: players share one keyboard,
// spin the wheel and guess letters or the whole phrase until it is solved.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/robalobadob/fortune/internal/daily"
	"github.com/robalobadob/fortune/internal/game"
	"github.com/robalobadob/fortune/internal/phrases"
)

const (
	maxPlayers = 3
	frame      = 16 * time.Millisecond

	actSpin   = "Spin the wheel"
	actPass   = "Pass"
	actQuit   = "Quit"
	actLetter = "Guess a letter"
	actSolve  = "Solve the phrase"
)

var errQuit = errors.New("quit")

func main() {
	numPlayers := flag.Int("players", 0, "number of players (1-3); asks when 0")
	phrasesPath := flag.String("phrases", "", "phrase file, one per line (default: PHRASES_FILE or built-in list)")
	seed := flag.Int64("seed", 0, "random seed for a reproducible game (0 = time based)")
	dailyPhrase := flag.Bool("daily", false, "first round uses the phrase of the day")
	animate := flag.Bool("animate", true, "animate the wheel while it spins")
	flag.Parse()
	_ = godotenv.Load()

	if err := run(*numPlayers, *phrasesPath, *seed, *dailyPhrase, *animate); err != nil && !errors.Is(err, errQuit) {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	pterm.Info.Println("Thanks for playing!")
}

func run(numPlayers int, phrasesPath string, seed int64, dailyPhrase, animate bool) error {
	corpus, err := loadCorpus(phrasesPath)
	if err != nil {
		return err
	}
	rng := game.NewRand()
	if seed != 0 {
		rng = game.NewSeededRand(seed)
	}
	g := game.New(corpus, game.WithRand(rng))

	_ = pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("WHEEL ", pterm.FgYellow.ToStyle()),
		putils.LettersFromStringWithStyle("OF ", pterm.FgLightWhite.ToStyle()),
		putils.LettersFromStringWithStyle("FORTUNE", pterm.FgYellow.ToStyle()),
	).Render()

	if err := seatPlayers(g, numPlayers); err != nil {
		return err
	}

	first := true
	for {
		if first && dailyPhrase {
			err = g.NewGameWith(daily.Phrase(time.Now(), daily.Salt(), corpus))
		} else {
			err = g.NewGame()
		}
		if err != nil {
			return err
		}
		first = false

		if err := playRound(g, animate); err != nil {
			return err
		}
		printWinner(g)

		again, err := anotherRound(func() (bool, error) {
			return pterm.DefaultInteractiveConfirm.WithDefaultText("Play another round?").WithDefaultValue(true).Show()
		})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// anotherRound asks whether to keep playing. A failed prompt (closed stdin)
// is an error, not a "no".
func anotherRound(ask func() (bool, error)) (bool, error) {
	again, err := ask()
	if err != nil {
		return false, fmt.Errorf("round prompt: %w", err)
	}
	return again, nil
}

func loadCorpus(path string) ([]string, error) {
	if path != "" {
		return phrases.Load(path)
	}
	if err := phrases.Init(); err != nil {
		return nil, err
	}
	return phrases.All(), nil
}

// seatPlayers asks for the table size (unless given) and each player's name.
func seatPlayers(g *game.Game, n int) error {
	if n < 1 || n > maxPlayers {
		opts := make([]string, maxPlayers)
		for i := range opts {
			opts[i] = strconv.Itoa(i + 1)
		}
		choice, err := pterm.DefaultInteractiveSelect.WithDefaultText("Number of players").WithOptions(opts).Show()
		if err != nil {
			return err
		}
		n, _ = strconv.Atoi(choice)
	}

	g.ResetPlayers()
	for i := 0; i < n; i++ {
		for {
			name, err := pterm.DefaultInteractiveTextInput.WithDefaultText(fmt.Sprintf("Name of player %d", i+1)).Show()
			if err != nil {
				return err
			}
			if err := g.AddPlayer(name); errors.Is(err, game.ErrEmptyName) {
				pterm.Warning.Println("Names can't be empty.")
				continue
			}
			break
		}
	}
	return nil
}

// playRound runs turns until the phrase is solved.
func playRound(g *game.Game, animate bool) error {
	for {
		if _, won := g.Winner(); won {
			return nil
		}
		printState(g)

		p, _ := g.CurrentPlayer()
		action, err := pterm.DefaultInteractiveSelect.
			WithDefaultText(fmt.Sprintf("%s, your move", pterm.LightCyan(p.Name))).
			WithOptions([]string{actSpin, actPass, actQuit}).
			Show()
		if err != nil {
			return err
		}
		switch action {
		case actQuit:
			return errQuit
		case actPass:
			g.NextTurn()
			continue
		}

		res, err := spin(g, animate)
		if err != nil {
			return err
		}
		pterm.Println(describeSpin(res, p.Name))
		if res.Kind == game.SpinGuess {
			if err := takeGuess(g, res.Segment); err != nil {
				return err
			}
		}
	}
}

// spin starts the wheel, ticks it to rest and resolves the segment.
func spin(g *game.Game, animate bool) (game.SpinResult, error) {
	w := g.Wheel()
	w.StartSpin()
	if animate {
		area, err := pterm.DefaultArea.Start()
		if err == nil {
			for !w.Stopped() {
				w.Tick()
				area.Update(wheelLine(w))
				time.Sleep(frame)
			}
			_ = area.Stop()
		}
	}
	w.SpinToRest()
	return g.ResolveSpin()
}

// takeGuess prompts until the player makes a guess that counts.
func takeGuess(g *game.Game, seg game.WheelSegment) error {
	for {
		kind, err := pterm.DefaultInteractiveSelect.
			WithDefaultText(fmt.Sprintf("Playing for %s per letter", seg.Label())).
			WithOptions([]string{actLetter, actSolve}).
			Show()
		if err != nil {
			return err
		}
		prompt := "Your letter (vowels cost " + strconv.Itoa(game.VowelCost) + ")"
		if kind == actSolve {
			prompt = "The phrase is"
		}
		input, err := pterm.DefaultInteractiveTextInput.WithDefaultText(prompt).Show()
		if err != nil {
			return err
		}

		var out game.GuessOutcome
		if kind == actSolve {
			out, err = g.GuessPhrase(input)
		} else {
			out, err = g.GuessLetter(input)
		}
		if errors.Is(err, game.ErrInvalidGuess) {
			pterm.Warning.Println("Enter a single letter, or the whole phrase when solving.")
			continue
		}
		if err != nil {
			return err
		}

		msg := describeOutcome(out)
		switch out.Kind {
		case game.OutcomeVowelCantAfford:
			pterm.Warning.Println(msg)
			continue
		case game.OutcomePhraseIncorrect:
			pterm.Error.Println(msg)
		default:
			if out.LettersFound == 0 {
				pterm.Error.Println(msg)
			} else {
				pterm.Success.Println(msg)
			}
		}
		return nil
	}
}
