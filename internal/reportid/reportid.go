// Package reportid issues and validates the 8 character codes printed on
// inventory reports. A code is a 2 character prefix derived from the report
// type or requester name, followed by 6 random characters. The alphabet
// leaves out 0, 1 and lowercase letters so codes survive being read off a
// printed page.
package reportid

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/akvideo/technikliste-backend/internal/logger"
)

// Alphabet is the 34 symbol character set report codes are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ23456789"

const (
	prefixLen = 2
	suffixLen = 6

	// CodeLen is the total length of a report code.
	CodeLen = prefixLen + suffixLen

	// 34^6 candidates per prefix make exhaustion practically impossible,
	// the bound only keeps the draw loop from spinning forever if a prefix
	// namespace ever fills up.
	maxAttempts = 10000
)

// ErrExhausted is returned when no free code could be drawn within the
// attempt bound.
var ErrExhausted = errors.New("report id namespace exhausted")

// Oracle answers which codes with a given prefix have already been issued.
// The verification repo is the production implementation.
type Oracle interface {
	TakenIDs(ctx context.Context, prefix string) ([]string, error)
}

type Generator struct {
	oracle Oracle
	log    *logger.Logger

	// One generator serves all requests, but rand.Rand is not safe for
	// concurrent use. Every draw goes through the mutex.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(oracle Oracle, log *logger.Logger) *Generator {
	return &Generator{
		oracle: oracle,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    log.With("service", "ReportIDGenerator"),
	}
}

// Generate returns a fresh code that no stored report with the same prefix
// uses. It only reads from the oracle, persisting the code is the caller's
// job. On any failure the returned code is the empty string and the caller
// should treat verification as unavailable for this document.
func (g *Generator) Generate(ctx context.Context, reportType, name string) (string, error) {
	prefix := DerivePrefix(reportType, name)

	taken, err := g.oracle.TakenIDs(ctx, prefix)
	if err != nil {
		g.log.Warn("Could not fetch taken ids, no code issued", "prefix", prefix, "error", err)
		return "", fmt.Errorf("fetch taken ids: %w", err)
	}

	takenSet := make(map[string]struct{}, len(taken))
	for _, id := range taken {
		takenSet[id] = struct{}{}
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := prefix + g.randomSuffix()
		if _, exists := takenSet[candidate]; !exists {
			return candidate, nil
		}
	}

	g.log.Error("No free code found within attempt bound", "prefix", prefix, "taken", len(taken))
	return "", ErrExhausted
}

// DerivePrefix computes the 2 character prefix for a report code. General
// reports always get "GR", personal reports derive the prefix from the
// requester's name, and anything too short to derive from falls back to "XX".
func DerivePrefix(reportType, name string) string {
	if reportType == "General Report" {
		return "GR"
	}
	words := strings.Fields(name)
	if len(words) >= 2 {
		first := []rune(words[0])
		second := []rune(words[1])
		return strings.ToUpper(string(first[0]) + string(second[0]))
	}
	if runes := []rune(name); len(runes) >= 2 {
		return strings.ToUpper(string(runes[:2]))
	}
	return "XX"
}

func (g *Generator) randomSuffix() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return RandomSuffix(g.rng)
}

// RandomSuffix draws 6 characters uniformly from the code alphabet. The
// importer reuses it for device ids, which share the character set. Callers
// with concurrent access must serialize rng themselves.
func RandomSuffix(rng *rand.Rand) string {
	var b strings.Builder
	b.Grow(suffixLen)
	for i := 0; i < suffixLen; i++ {
		b.WriteByte(Alphabet[rng.Intn(len(Alphabet))])
	}
	return b.String()
}

// Valid reports whether s is syntactically a report code: exactly 8
// characters, each from the code alphabet. Lowercase letters and the digits
// 0 and 1 are rejected.
func Valid(s string) bool {
	if len(s) != CodeLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(Alphabet, rune(s[i])) {
			return false
		}
	}
	return true
}
