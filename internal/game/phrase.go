// internal/game/phrase.go
//
// Phrase holds the hidden target and tracks which positions are revealed.
// The masked form shows a placeholder for every unrevealed non-space
// character; spaces are always shown as spaces.
//
// Matching is case-insensitive; a revealed position always shows the
// character as written in the hidden phrase.

package game

import (
	"strings"
	"unicode"
)

// Placeholder stands in for an unrevealed character.
const Placeholder = '_'

// Phrase is the hidden/masked pair for one round.
type Phrase struct {
	hidden   []rune
	revealed []bool
	rng      Rand
}

// NewPhrase returns an empty phrase; call SelectRandom or Set before use.
func NewPhrase(rng Rand) *Phrase {
	if rng == nil {
		rng = NewRand()
	}
	return &Phrase{rng: rng}
}

// SelectRandom picks one phrase uniformly from corpus and masks it.
func (p *Phrase) SelectRandom(corpus []string) error {
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}
	return p.Set(corpus[p.rng.Intn(len(corpus))])
}

// Set installs hidden as the target with a fresh mask.
func (p *Phrase) Set(hidden string) error {
	if strings.TrimSpace(hidden) == "" {
		return ErrEmptyCorpus
	}
	p.hidden = []rune(hidden)
	p.revealed = make([]bool, len(p.hidden))
	for i, r := range p.hidden {
		p.revealed[i] = r == ' '
	}
	return nil
}

// Mask renders hidden with every non-space character replaced by Placeholder.
func Mask(hidden string) string {
	var b strings.Builder
	for _, r := range hidden {
		if r == ' ' {
			b.WriteRune(' ')
		} else {
			b.WriteRune(Placeholder)
		}
	}
	return b.String()
}

// MatchLetter reveals every unrevealed position equal to letter (ignoring
// case) and returns how many were newly revealed. Only the first rune of
// letter is considered.
func (p *Phrase) MatchLetter(letter string) int {
	rs := []rune(letter)
	if len(rs) == 0 {
		return 0
	}
	want := unicode.ToUpper(rs[0])
	n := 0
	for i, r := range p.hidden {
		if !p.revealed[i] && unicode.ToUpper(r) == want {
			p.revealed[i] = true
			n++
		}
	}
	return n
}

// MatchPhrase reports whether candidate equals the hidden phrase, ignoring case.
func (p *Phrase) MatchPhrase(candidate string) bool {
	return len(p.hidden) > 0 && strings.EqualFold(candidate, string(p.hidden))
}

// FullyRevealed is true once no placeholder remains.
func (p *Phrase) FullyRevealed() bool {
	return p.MissingCount() == 0
}

// MissingCount is the number of placeholders left in the masked phrase.
func (p *Phrase) MissingCount() int {
	n := 0
	for _, ok := range p.revealed {
		if !ok {
			n++
		}
	}
	return n
}

// RevealAll uncovers the remaining characters.
func (p *Phrase) RevealAll() {
	for i := range p.revealed {
		p.revealed[i] = true
	}
}

// Current is the player-visible masked phrase.
func (p *Phrase) Current() string {
	out := make([]rune, len(p.hidden))
	for i, r := range p.hidden {
		if p.revealed[i] {
			out[i] = r
		} else {
			out[i] = Placeholder
		}
	}
	return string(out)
}

// Hidden is the target phrase. Only show it once the round is over.
func (p *Phrase) Hidden() string { return string(p.hidden) }

func (p *Phrase) empty() bool { return len(p.hidden) == 0 }
