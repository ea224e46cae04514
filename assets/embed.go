package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed phrases.txt sql/*.sql
var FS embed.FS

// readLines returns the trimmed, non-empty, non-comment lines of an embedded file.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// PhraseList is the built-in phrase corpus.
func PhraseList() ([]string, error) {
	return readLines("phrases.txt")
}

// Migrations is the embedded migration directory (files named NNN_*.sql).
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// "sql" is embedded above; Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}
