// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the TOML configuration of the glsoftdemo command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/glsoft/visual"
)

// FileName is the configuration file looked up in the user config directory.
const FileName = "glsoft.toml"

// Config is the full configuration.
type Config struct {
	Surface Surface `toml:"surface"`
	Visual  Visual  `toml:"visual"`
	Output  Output  `toml:"output"`
	Log     Log     `toml:"log"`
	Trace   Trace   `toml:"trace"`
}

// Surface selects and sizes the output surface.
type Surface struct {
	// Provider names a surface backend: "image", "terminal" or "" for the
	// highest-priority available one.
	Provider   string `toml:"provider"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Antialias  bool   `toml:"antialias"`
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

// Visual is the pixel format request.
type Visual struct {
	DoubleBuffer bool  `toml:"double_buffer"`
	RedSize      int32 `toml:"red_size"`
	GreenSize    int32 `toml:"green_size"`
	BlueSize     int32 `toml:"blue_size"`
	AlphaSize    int32 `toml:"alpha_size"`
	DepthSize    int32 `toml:"depth_size"`
	StencilSize  int32 `toml:"stencil_size"`
}

// Output controls where the image provider writes its last frame.
type Output struct {
	Path string `toml:"path"`
	// Format is "png", "bmp", or "" to pick from the path extension.
	Format string `toml:"format"`
}

// Log sets the slog level of the command.
type Log struct {
	Level string `toml:"level"`
}

// Trace enables the SQLite draw-call recorder when Database is set.
type Trace struct {
	Database string `toml:"database"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Surface: Surface{
			Width:      300,
			Height:     300,
			Foreground: "#ffffff",
			Background: "#000000",
		},
		Visual: Visual{
			DoubleBuffer: true,
			RedSize:      8,
			GreenSize:    8,
			BlueSize:     8,
		},
		Output: Output{Path: "frame.png"},
		Log:    Log{Level: "info"},
	}
}

// ErrInvalid is wrapped by validation and unknown-key errors.
var ErrInvalid = errors.New("config: invalid configuration")

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Write encodes c to path, creating parent directories.
func Write(path string, c Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DefaultPath returns FileName inside the user configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return filepath.Join(dir, "glsoft", FileName), nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
	}

	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return bad("surface size %dx%d must be positive", c.Surface.Width, c.Surface.Height)
	}
	if _, err := ParseColor(c.Surface.Foreground); err != nil {
		return bad("surface.foreground: %v", err)
	}
	if _, err := ParseColor(c.Surface.Background); err != nil {
		return bad("surface.background: %v", err)
	}
	for name, bits := range map[string]int32{
		"red_size": c.Visual.RedSize, "green_size": c.Visual.GreenSize,
		"blue_size": c.Visual.BlueSize, "alpha_size": c.Visual.AlphaSize,
		"depth_size": c.Visual.DepthSize, "stencil_size": c.Visual.StencilSize,
	} {
		if bits < 0 {
			return bad("visual.%s = %d must not be negative", name, bits)
		}
	}
	switch strings.ToLower(c.Output.Format) {
	case "", "png", "bmp":
	default:
		return bad("output.format %q: want png or bmp", c.Output.Format)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return bad("log.level: %v", err)
	}
	return nil
}

// SlogLevel parses Level; the empty string is info.
func (l Log) SlogLevel() (slog.Level, error) {
	var lv slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lv.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, err
	}
	return lv, nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("color %q must start with #", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ForegroundColor returns the parsed line color. Validate must have passed.
func (s Surface) ForegroundColor() color.RGBA {
	c, _ := ParseColor(s.Foreground)
	return c
}

// BackgroundColor returns the parsed clear color. Validate must have passed.
func (s Surface) BackgroundColor() color.RGBA {
	c, _ := ParseColor(s.Background)
	return c
}

// Attribs returns the visual request as attributes, boolean keys first.
func (v Visual) Attribs() []visual.Attrib {
	attribs := []visual.Attrib{{Key: visual.UseGL, Value: 1}, {Key: visual.RGBA, Value: 1}}
	if v.DoubleBuffer {
		attribs = append(attribs, visual.Attrib{Key: visual.DoubleBuffer, Value: 1})
	}
	for _, a := range []visual.Attrib{
		{Key: visual.RedSize, Value: v.RedSize},
		{Key: visual.GreenSize, Value: v.GreenSize},
		{Key: visual.BlueSize, Value: v.BlueSize},
		{Key: visual.AlphaSize, Value: v.AlphaSize},
		{Key: visual.DepthSize, Value: v.DepthSize},
		{Key: visual.StencilSize, Value: v.StencilSize},
	} {
		if a.Value > 0 {
			attribs = append(attribs, a)
		}
	}
	return attribs
}

// AttribList encodes Attribs as a zero-terminated attribute list.
func (v Visual) AttribList() []int32 {
	return visual.EncodeList(v.Attribs())
}
