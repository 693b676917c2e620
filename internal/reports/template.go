// Package reports composes the LaTeX source of an inventory report from the
// template skeleton, the selected devices and a fresh verification code.
package reports

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akvideo/technikliste-backend/internal/logger"
	"github.com/akvideo/technikliste-backend/internal/types"
)

// Placeholder tokens of the template skeleton. Each appears exactly once in
// template.tex, except the accent color which the skeleton may use in
// several places.
const (
	tokenMessage    = "MESSAGE"
	tokenHeaderInfo = "HEADER-INFO"
	tokenDate       = "DATUM"
	tokenID         = "IDNUMBER"
	tokenTable      = "TABLE&&&&"
	tokenLogoPath   = "/app/pdf_assets/logo.png"

	accentColor  = "orange"
	neutralColor = "black"

	incompleteNotice = "Dies ist eine unvollständige Liste"

	reportType = "General Report"
)

// ErrAssets marks a missing or unreadable template or logo asset. This is a
// deployment defect, not a store or toolchain problem.
var ErrAssets = errors.New("report assets unavailable")

// IDGenerator is the slice of the report id generator the filler needs.
type IDGenerator interface {
	Generate(ctx context.Context, reportType, name string) (string, error)
}

type Filler struct {
	assetsDir string
	gen       IDGenerator
	log       *logger.Logger
}

// NewFiller returns a Filler reading template.tex and logo.png from
// assetsDir.
func NewFiller(assetsDir string, gen IDGenerator, log *logger.Logger) *Filler {
	return &Filler{
		assetsDir: assetsDir,
		gen:       gen,
		log:       log.With("service", "TemplateFiller"),
	}
}

type replacement struct {
	token string
	value string
}

// Fill substitutes all placeholders of the template skeleton and returns the
// finished LaTeX source plus the verification code embedded in it. When no
// code could be generated the returned code is the empty string and the
// document carries none; the report is still usable, just not verifiable.
// A missing template or logo asset is a fatal error.
func (f *Filler) Fill(ctx context.Context, filtersActive bool, sortByCol, sortByCol2, order string, devices []types.Device) (string, string, error) {
	templatePath := filepath.Join(f.assetsDir, "template.tex")
	skeleton, err := os.ReadFile(templatePath)
	if err != nil {
		return "", "", fmt.Errorf("%w: read template: %v", ErrAssets, err)
	}

	logoPath := filepath.Join(f.assetsDir, "logo.png")
	if _, err := os.Stat(logoPath); err != nil {
		return "", "", fmt.Errorf("%w: logo: %v", ErrAssets, err)
	}
	absLogoPath, err := filepath.Abs(logoPath)
	if err != nil {
		return "", "", fmt.Errorf("%w: resolve logo path: %v", ErrAssets, err)
	}
	// the LaTeX toolchain wants forward slashes, also on Windows
	absLogoPath = strings.ReplaceAll(absLogoPath, `\`, "/")

	sortByString := sortByCol
	if sortByCol != sortByCol2 {
		sortByString = fmt.Sprintf("%s und %s", sortByCol, sortByCol2)
	}
	headerInfo := fmt.Sprintf("Diese Liste enthält %d Einträge und ist %s nach %s sortiert.", len(devices), order, sortByString)

	uniqueID, err := f.gen.Generate(ctx, reportType, "")
	if err != nil {
		f.log.Warn("No verification code for this document", "error", err)
		uniqueID = ""
	}

	message := ""
	if filtersActive {
		message = incompleteNotice
	}

	// The substitutions are applied in this exact order. The accent rewrite
	// only fires on a complete list, where there is no notice to highlight.
	replacements := []replacement{
		{tokenMessage, message},
	}
	if !filtersActive {
		replacements = append(replacements, replacement{accentColor, neutralColor})
	}
	replacements = append(replacements,
		replacement{tokenLogoPath, absLogoPath},
		replacement{tokenHeaderInfo, headerInfo},
		replacement{tokenDate, time.Now().Format("02.01.2006")},
		replacement{tokenID, uniqueID},
		replacement{tokenTable, TableBody(devices)},
	)

	document := string(skeleton)
	for _, r := range replacements {
		document = strings.ReplaceAll(document, r.token, r.value)
	}

	return document, uniqueID, nil
}
