package reports

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePrice normalizes a price cell from the legacy inventory sheet.
// Both decimal comma and decimal point are accepted, fractions are cut
// (not rounded) to two digits, the empty cell means "no price recorded".
func ParsePrice(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	raw = strings.ReplaceAll(raw, ",", ".")

	whole, fraction := raw, ""
	if i := strings.Index(raw, "."); i >= 0 {
		whole, fraction = raw[:i], raw[i+1:]
	}
	if len(fraction) > 2 {
		fraction = fraction[:2]
	}
	for len(fraction) < 2 {
		fraction += "0"
	}

	value, err := strconv.ParseFloat(whole+"."+fraction, 64)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return &value, nil
}
