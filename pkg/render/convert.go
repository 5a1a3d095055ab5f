package render

import (
	"bytes"
	"fmt"
	"os/exec"
)

// ToPDF rasterizes a rendered radar SVG to PDF, the format the report
// export ships. Requires librsvg: brew install librsvg (macOS),
// apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG rasterizes a rendered radar SVG to PNG at the given scale factor.
// Scale 2.0 doubles the pixel dimensions, which keeps dot labels readable
// when the radar is embedded in slides. Requires librsvg like [ToPDF].
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// rsvgConvert pipes the SVG through the rsvg-convert binary. The SVG sink
// stays the single source of truth for radar geometry; raster formats are
// pure conversions of its output.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
