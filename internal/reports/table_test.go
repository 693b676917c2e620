package reports

import (
	"strings"
	"testing"

	"github.com/akvideo/technikliste-backend/internal/types"
)

func TestTableBodyRowShape(t *testing.T) {
	price := 21.41
	devices := []types.Device{
		{Amount: 2, Description: "Kabel 5m", Location: "Medienraum", Price: &price},
	}
	got := TableBody(devices)
	want := "2&Kabel 5m&Medienraum&21,41&n/a\\\\%\n"
	if got != want {
		t.Fatalf("row: got=%q want=%q", got, want)
	}
}

func TestTableBodyMissingValues(t *testing.T) {
	devices := []types.Device{{Amount: 1, Description: "", Location: "", Price: nil}}
	got := TableBody(devices)
	if !strings.Contains(got, "1&n/a&n/a&n/a&n/a") {
		t.Fatalf("missing values not rendered as n/a: got=%q", got)
	}
}

func TestTableBodyEscapesCells(t *testing.T) {
	devices := []types.Device{{Amount: 1, Description: "50% Rabatt & mehr", Location: "Shelf_2"}}
	got := TableBody(devices)
	if !strings.Contains(got, `50\% Rabatt \& mehr`) {
		t.Fatalf("description not escaped: got=%q", got)
	}
	if !strings.Contains(got, `Shelf\_2`) {
		t.Fatalf("location not escaped: got=%q", got)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   *float64
		want string
	}{
		{nil, ""},
		{f(9.85), "9.85"},
		{f(9.0), "9.00"},
		{f(9.8), "9.80"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.in); got != tc.want {
			t.Fatalf("FormatPrice(%v): got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func f(v float64) *float64 { return &v }
