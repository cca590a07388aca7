package render

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrNoConverter is returned when rsvg-convert is not on PATH.
var ErrNoConverter = errors.New("rsvg-convert not found (install librsvg)")

// converter is the external SVG converter; tests replace it.
var converter = "rsvg-convert"

// ToPDF converts SVG to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "-f", "pdf")
}

// ToPNG converts SVG to PNG. A scale of 2.0 doubles the resolution.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(svg, "-f", "png", "-z", strconv.FormatFloat(scale, 'f', -1, 64))
}

func convert(svg []byte, args ...string) ([]byte, error) {
	path, err := exec.LookPath(converter)
	if err != nil {
		return nil, ErrNoConverter
	}
	var out, stderr bytes.Buffer
	cmd := exec.Command(path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", converter, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
