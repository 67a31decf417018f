// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package visual

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestParseList(t *testing.T) {
	list := []int32{
		int32(RGBA),
		int32(DoubleBuffer),
		int32(DepthSize), 24,
		int32(RedSize), 8,
		0,
		int32(Stereo), // after the terminator, ignored
	}
	got, err := ParseList(list)
	if err != nil {
		t.Fatalf("ParseList() error = %v", err)
	}
	want := []Attrib{
		{RGBA, 1},
		{DoubleBuffer, 1},
		{DepthSize, 24},
		{RedSize, 8},
	}
	if len(got) != len(want) {
		t.Fatalf("ParseList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseList()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseListUnterminated(t *testing.T) {
	got, err := ParseList([]int32{int32(RGBA), int32(AlphaSize), 8})
	if err != nil {
		t.Fatalf("ParseList() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ParseList() = %v, want 2 attributes", got)
	}
}

func TestParseListErrors(t *testing.T) {
	tests := []struct {
		name      string
		list      []int32
		wantKey   Key
		wantIndex int
	}{
		{"unknown key", []int32{int32(RGBA), 999, 0}, Key(999), 1},
		{"missing value", []int32{int32(DepthSize)}, DepthSize, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseList(tt.list)
			if !errors.Is(err, ErrUnsupportedCapability) {
				t.Fatalf("ParseList() error = %v, want ErrUnsupportedCapability", err)
			}
			var ae *AttribError
			if !errors.As(err, &ae) {
				t.Fatalf("error type = %T, want *AttribError", err)
			}
			if ae.Key != tt.wantKey || ae.Index != tt.wantIndex {
				t.Errorf("AttribError = {Key:%v Index:%d}, want {Key:%v Index:%d}", ae.Key, ae.Index, tt.wantKey, tt.wantIndex)
			}
		})
	}
}

func TestEncodeListRoundTrip(t *testing.T) {
	in := []Attrib{{DoubleBuffer, 1}, {DepthSize, 16}, {FBConfigID, 7}}
	list := EncodeList(in)
	if list[len(list)-1] != 0 {
		t.Fatal("EncodeList result is not zero-terminated")
	}
	out, err := ParseList(list)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("round trip = %v, want %v", out, in)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("round trip[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestCollectDefaultsAndOverride(t *testing.T) {
	a := Collect(nil)
	if !a.UseGL {
		t.Error("default UseGL should be true")
	}
	if a != DefaultAttribs() {
		t.Errorf("Collect(nil) = %+v, want defaults", a)
	}

	a = Collect([]Attrib{{DepthSize, 16}, {DepthSize, 24}})
	if a.DepthSize != 24 {
		t.Errorf("DepthSize = %d, want later value 24", a.DepthSize)
	}
}

func TestChoose(t *testing.T) {
	tests := []struct {
		name      string
		list      []int32
		wantColor gputypes.TextureFormat
		wantDS    gputypes.TextureFormat
		wantDB    bool
	}{
		{
			name:      "empty",
			list:      []int32{0},
			wantColor: gputypes.TextureFormatRGBA8Unorm,
			wantDS:    gputypes.TextureFormatUndefined,
		},
		{
			name:      "double buffered with depth",
			list:      []int32{int32(RGBA), int32(DoubleBuffer), int32(DepthSize), 24, 0},
			wantColor: gputypes.TextureFormatRGBA8Unorm,
			wantDS:    gputypes.TextureFormatDepth24PlusStencil8,
			wantDB:    true,
		},
		{
			name:      "stencil only",
			list:      []int32{int32(StencilSize), 8, 0},
			wantColor: gputypes.TextureFormatRGBA8Unorm,
			wantDS:    gputypes.TextureFormatDepth24PlusStencil8,
		},
		{
			name:      "bare 32-bit buffer",
			list:      []int32{int32(BufferSize), 32, 0},
			wantColor: gputypes.TextureFormatBGRA8Unorm,
			wantDS:    gputypes.TextureFormatUndefined,
		},
		{
			name:      "32-bit buffer with channels",
			list:      []int32{int32(BufferSize), 32, int32(RedSize), 8, 0},
			wantColor: gputypes.TextureFormatRGBA8Unorm,
			wantDS:    gputypes.TextureFormatUndefined,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Choose(tt.list)
			if err != nil {
				t.Fatalf("Choose() error = %v", err)
			}
			if f.Color != tt.wantColor {
				t.Errorf("Color = %v, want %v", f.Color, tt.wantColor)
			}
			if f.DepthStencil != tt.wantDS {
				t.Errorf("DepthStencil = %v, want %v", f.DepthStencil, tt.wantDS)
			}
			if f.DoubleBuffer != tt.wantDB {
				t.Errorf("DoubleBuffer = %v, want %v", f.DoubleBuffer, tt.wantDB)
			}
		})
	}
}

func TestChooseUnsupported(t *testing.T) {
	tests := []struct {
		name string
		list []int32
		key  Key
	}{
		{"stereo", []int32{int32(Stereo), 0}, Stereo},
		{"overlay level", []int32{int32(Level), 1, 0}, Level},
		{"aux buffers", []int32{int32(AuxBuffers), 2, 0}, AuxBuffers},
		{"accumulation", []int32{int32(AccumBlueSize), 8, 0}, AccumRedSize},
		{"wide channel", []int32{int32(GreenSize), 10, 0}, GreenSize},
		{"wide buffer", []int32{int32(BufferSize), 64, 0}, BufferSize},
		{"unknown key", []int32{12345, 0}, Key(12345)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Choose(tt.list)
			if !errors.Is(err, ErrUnsupportedCapability) {
				t.Fatalf("Choose() error = %v, want ErrUnsupportedCapability", err)
			}
			var ae *AttribError
			if errors.As(err, &ae) && ae.Key != tt.key {
				t.Errorf("rejected key = %v, want %v", ae.Key, tt.key)
			}
		})
	}
}

func TestChooseRequiresUseGL(t *testing.T) {
	a := DefaultAttribs()
	a.UseGL = false
	if _, err := ChooseAttribs(a); !errors.Is(err, ErrUnsupportedCapability) {
		t.Errorf("ChooseAttribs(UseGL=false) = %v, want ErrUnsupportedCapability", err)
	}
}

func TestDefaultFormat(t *testing.T) {
	f := DefaultFormat()
	if f.Color != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("DefaultFormat().Color = %v", f.Color)
	}
	if !strings.HasPrefix(f.String(), "color=") {
		t.Errorf("String() = %q", f.String())
	}
}

func TestKeyString(t *testing.T) {
	if got := DepthSize.String(); got != "DepthSize" {
		t.Errorf("DepthSize.String() = %q", got)
	}
	if got := Key(-3).String(); got != "Key(-3)" {
		t.Errorf("Key(-3).String() = %q", got)
	}
	if got := (Attrib{DepthSize, 24}).String(); got != "DepthSize=24" {
		t.Errorf("Attrib.String() = %q", got)
	}
	if got := (Attrib{RGBA, 1}).String(); got != "RGBA" {
		t.Errorf("Attrib.String() = %q", got)
	}
}

func TestExtensionsAndProcs(t *testing.T) {
	if got := Extensions(); got != "" {
		t.Errorf("Extensions() = %q, want empty", got)
	}
	fn, err := LookupProc("glXSwapIntervalEXT")
	if fn != nil {
		t.Error("LookupProc returned an entry point")
	}
	if !errors.Is(err, ErrUnsupportedProc) {
		t.Errorf("LookupProc error = %v, want ErrUnsupportedProc", err)
	}
	var pe *ProcError
	if !errors.As(err, &pe) || pe.Name != "glXSwapIntervalEXT" {
		t.Errorf("ProcError = %v", err)
	}
}
