package latex

import (
	"errors"
	"testing"
)

func TestPackagesFromSetupScript(t *testing.T) {
	script := `#!/bin/sh
tlmgr init-usertree
tlmgr install lastpage
tlmgr install tabu
tlmgr install ms
echo done
`
	got := packagesFromSetupScript(script)
	want := []string{"lastpage", "tabu", "ms"}
	if len(got) != len(want) {
		t.Fatalf("packages: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("packages[%d]: got=%q want=%q", i, got[i], want[i])
		}
	}
}

func TestBuildErrorIsDistinguishable(t *testing.T) {
	var err error = &BuildError{Log: "! Undefined control sequence."}

	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("BuildError not recoverable via errors.As")
	}
	if buildErr.Log == "" {
		t.Fatalf("build log lost")
	}
}
