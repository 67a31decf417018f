// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package frameio writes finished frames to image files.
package frameio

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Format is an output file format.
type Format string

// Supported formats.
const (
	PNG Format = "png"
	BMP Format = "bmp"
)

// FormatFor returns name if it is set, otherwise the format implied by the
// extension of path. Unknown extensions fall back to PNG.
func FormatFor(path, name string) (Format, error) {
	if name != "" {
		switch f := Format(strings.ToLower(name)); f {
		case PNG, BMP:
			return f, nil
		default:
			return "", fmt.Errorf("frameio: unknown format %q", name)
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return BMP, nil
	}
	return PNG, nil
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("frameio: unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("frameio: encode %s: %w", f, err)
	}
	return nil
}

// Save writes img to path in format f.
func Save(path string, img image.Image, f Format) error {
	file, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("frameio: %w", err)
	}
	if err := Encode(file, img, f); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
