// Command genassets renders a placeholder logo for the PDF assets
// directory, for deployments where the real organization logo is not
// checked in.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

const logoSize = 512

func main() {
	assetsDir := flag.String("assets", "pdf_assets", "directory to write logo.png into")
	initials := flag.String("initials", "AK", "initials drawn on the placeholder")
	flag.Parse()

	if err := run(*assetsDir, *initials); err != nil {
		fmt.Fprintf(os.Stderr, "genassets: %v\n", err)
		os.Exit(1)
	}
}

func run(assetsDir, initials string) error {
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return fmt.Errorf("create assets dir: %w", err)
	}

	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(parsed, &truetype.Options{Size: logoSize / 3})

	dc := gg.NewContext(logoSize, logoSize)
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()

	dc.SetRGB255(230, 81, 0)
	dc.DrawCircle(logoSize/2, logoSize/2, logoSize/2-8)
	dc.Fill()

	dc.SetFontFace(face)
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored(initials, logoSize/2, logoSize/2, 0.5, 0.5)

	out := filepath.Join(assetsDir, "logo.png")
	if err := dc.SavePNG(out); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Println("wrote", out)
	return nil
}
