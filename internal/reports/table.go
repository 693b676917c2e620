package reports

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akvideo/technikliste-backend/internal/latex"
	"github.com/akvideo/technikliste-backend/internal/types"
)

// TableBody renders one LaTeX table row per device, columns Menge, Name,
// Standort, Preis, Anschaffungsjahr. Every cell goes through the escaper.
// The inventory does not track the year of purchase yet, that column is a
// fixed "n/a".
func TableBody(devices []types.Device) string {
	var b strings.Builder
	for _, d := range devices {
		menge := latex.Escape(strconv.Itoa(d.Amount))
		name := latex.Escape(d.Description)
		lagerort := latex.Escape(d.Location)
		preis := latex.Escape(strings.ReplaceAll(FormatPrice(d.Price), ".", ","))
		jahr := "n/a"
		fmt.Fprintf(&b, "%s&%s&%s&%s&%s\\\\%%\n", menge, name, lagerort, preis, jahr)
	}
	return b.String()
}

// FormatPrice renders a price with two decimals, or the empty string when
// none is recorded.
func FormatPrice(price *float64) string {
	if price == nil {
		return ""
	}
	return strconv.FormatFloat(*price, 'f', 2, 64)
}
