package latex

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/akvideo/technikliste-backend/internal/logger"
)

// BuildError reports that the LaTeX toolchain ran but rejected the document.
// It is distinct from toolchain-missing errors so callers can tell a broken
// template from a broken installation.
type BuildError struct {
	Log string
}

func (e *BuildError) Error() string {
	return "latex build failed"
}

// Compiler turns LaTeX source into a PDF. It is treated as an opaque
// collaborator by the report pipeline.
type Compiler interface {
	AssertReady(ctx context.Context) error
	Compile(ctx context.Context, tex string) ([]byte, error)
}

type pdflatex struct {
	log *logger.Logger

	pdflatexPath  string
	kpsewhichPath string
	setupScript   string
	workRoot      string

	defaultTimeout time.Duration
}

// NewPDFLatex returns a Compiler shelling out to pdflatex. setupScript is
// the latex_setup.sh listing the packages the template needs; AssertReady
// checks each of them via kpsewhich.
func NewPDFLatex(setupScript string, log *logger.Logger) Compiler {
	return &pdflatex{
		log:            log.With("service", "PDFLatex"),
		pdflatexPath:   "pdflatex",
		kpsewhichPath:  "kpsewhich",
		setupScript:    setupScript,
		workRoot:       filepath.Join(os.TempDir(), "technikliste-latex"),
		defaultTimeout: 2 * time.Minute,
	}
}

func (p *pdflatex) AssertReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := exec.LookPath(p.pdflatexPath); err != nil {
		return fmt.Errorf("missing required binary %q in PATH: %w", p.pdflatexPath, err)
	}
	if _, err := exec.LookPath(p.kpsewhichPath); err != nil {
		return fmt.Errorf("missing required binary %q in PATH: %w", p.kpsewhichPath, err)
	}

	script, err := os.ReadFile(p.setupScript)
	if err != nil {
		return fmt.Errorf("read latex setup script: %w", err)
	}
	for _, pkg := range packagesFromSetupScript(string(script)) {
		style := pkg + ".sty"
		if pkg == "ms" {
			// the ms bundle installs everysel.sty, there is no ms.sty
			style = "everysel.sty"
		}
		cmd := exec.CommandContext(ctx, p.kpsewhichPath, style)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("latex package %q not installed (kpsewhich %s): %w", pkg, style, err)
		}
	}
	return nil
}

// packagesFromSetupScript extracts the package names from "tlmgr install"
// lines of the setup script.
func packagesFromSetupScript(script string) []string {
	var pkgs []string
	for _, line := range strings.Split(script, "\n") {
		if !strings.HasPrefix(line, "tlmgr install") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		pkgs = append(pkgs, fields[len(fields)-1])
	}
	return pkgs
}

func (p *pdflatex) Compile(ctx context.Context, tex string) ([]byte, error) {
	if err := os.MkdirAll(p.workRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create workRoot: %w", err)
	}
	dir, err := os.MkdirTemp(p.workRoot, "build-*")
	if err != nil {
		return nil, fmt.Errorf("create build dir: %w", err)
	}
	defer os.RemoveAll(dir)

	texPath := filepath.Join(dir, "report.tex")
	if err := os.WriteFile(texPath, []byte(tex), 0o644); err != nil {
		return nil, fmt.Errorf("write tex source: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.defaultTimeout)
	defer cancel()

	// two passes so \pageref{LastPage} and friends resolve
	for pass := 0; pass < 2; pass++ {
		cmd := exec.CommandContext(ctx, p.pdflatexPath,
			"-interaction=nonstopmode",
			"-halt-on-error",
			"-output-directory", dir,
			texPath,
		)
		out, err := cmd.CombinedOutput()
		if err != nil {
			p.log.Error("pdflatex failed", "pass", pass, "error", err)
			return nil, &BuildError{Log: string(out)}
		}
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "report.pdf"))
	if err != nil {
		return nil, fmt.Errorf("read pdf output: %w", err)
	}
	return pdf, nil
}
