// internal/phrases/phrases.go
//
// Phrase corpus management for the game engine.
//
// Responsibilities:
//   - Load the candidate phrases from an operator-provided file, or fall back
//     to the list embedded in the assets package.
//   - Normalize entries (trim, collapse inner whitespace, drop comments/blank lines).
//
// Initialization behavior (Init):
//   1. If PHRASES_FILE is set, load phrases from that file.
//   2. Otherwise use the embedded default corpus.
//
// Environment variables:
//   PHRASES_FILE=/path/to/phrases.txt
//
// Init runs once (sync.Once); Load can be used directly by tools that take
// the path from a flag.

package phrases

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/fortune/assets"
)

// ErrEmpty is returned when a source yields no usable phrases.
var ErrEmpty = errors.New("phrases: corpus is empty")

var (
	initOnce   sync.Once
	corpus     []string
	initialErr error
)

// Init loads the corpus exactly once.
func Init() error {
	initOnce.Do(func() {
		if path := os.Getenv("PHRASES_FILE"); path != "" {
			corpus, initialErr = Load(path)
			return
		}
		corpus, initialErr = Embedded()
	})
	return initialErr
}

// All returns the loaded corpus (nil before a successful Init).
func All() []string { return corpus }

// Count is the number of loaded phrases.
func Count() int { return len(corpus) }

// Load reads one phrase per line from path.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("phrases: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Embedded returns the built-in corpus.
func Embedded() ([]string, error) {
	list, err := assets.PhraseList()
	if err != nil {
		return nil, fmt.Errorf("phrases: embedded list: %w", err)
	}
	out := normalize(list)
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// Parse reads phrases from r, skipping blank lines and # comments.
func Parse(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	out := normalize(lines)
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// normalize trims each line and collapses runs of whitespace to one space,
// so masks never show doubled gaps.
func normalize(lines []string) []string {
	var out []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		out = append(out, strings.Join(strings.Fields(l), " "))
	}
	return out
}
