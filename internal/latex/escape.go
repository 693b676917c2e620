package latex

import "strings"

// substitutions is the ordered list of characters that must be neutralized
// before user text can appear in a LaTeX document. Backslash goes first:
// every later replacement introduces fresh backslashes, and handling it
// first keeps them from being escaped twice. The order is load-bearing and
// pinned by the golden tests.
var substitutions = []struct {
	from string
	to   string
}{
	{`\`, `\textbackslash `},
	{`#`, `\#`},
	{`$`, `\$`},
	{`%`, `\%`},
	{`^`, `\textasciicircum `},
	{`}`, `\}`},
	{`{`, `\{`},
	{`&`, `\&`},
	{`~`, `\textasciitilde `},
	{`_`, `\_`},
}

// Escape makes an arbitrary string safe for LaTeX compilation. The empty
// string maps to the sentinel "n/a" so table cells never render blank.
func Escape(input string) string {
	if input == "" {
		return "n/a"
	}
	for _, sub := range substitutions {
		input = strings.ReplaceAll(input, sub.from, sub.to)
	}
	return input
}
