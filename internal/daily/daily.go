package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"os"
	"time"
)

// DefaultSalt is used when DAILY_SALT is unset.
const DefaultSalt = "local_dev_salt"

// Salt returns DAILY_SALT, or DefaultSalt when it is unset or empty. The
// server and the terminal client share it so both pick the same phrase.
func Salt() string {
	if v := os.Getenv("DAILY_SALT"); v != "" {
		return v
	}
	return DefaultSalt
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// PhraseIndex returns a deterministic corpus index for a date using
// HMAC(salt, YYYY-MM-DD) % corpusLen.
func PhraseIndex(date time.Time, salt string, corpusLen int) int {
	if corpusLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(corpusLen))
}

// Phrase returns the phrase of the day from corpus, or "" if corpus is empty.
func Phrase(date time.Time, salt string, corpus []string) string {
	if len(corpus) == 0 {
		return ""
	}
	return corpus[PhraseIndex(date, salt, len(corpus))]
}
