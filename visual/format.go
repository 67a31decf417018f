// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package visual

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Attribs is the full set of visual attributes after applying a list over
// the defaults. All fields are zero by default except UseGL.
type Attribs struct {
	UseGL          bool
	BufferSize     int32
	Level          int32
	RGBA           bool
	DoubleBuffer   bool
	Stereo         bool
	AuxBuffers     int32
	RedSize        int32
	GreenSize      int32
	BlueSize       int32
	AlphaSize      int32
	DepthSize      int32
	StencilSize    int32
	AccumRedSize   int32
	AccumGreenSize int32
	AccumBlueSize  int32
	AccumAlphaSize int32
	FBConfigID     int32
}

// DefaultAttribs returns the attributes of an empty request.
func DefaultAttribs() Attribs {
	return Attribs{UseGL: true}
}

// Apply sets the field named by each attribute; later attributes win.
func (a *Attribs) Apply(attribs ...Attrib) {
	for _, at := range attribs {
		v := at.Value
		switch at.Key {
		case UseGL:
			a.UseGL = v != 0
		case BufferSize:
			a.BufferSize = v
		case Level:
			a.Level = v
		case RGBA:
			a.RGBA = v != 0
		case DoubleBuffer:
			a.DoubleBuffer = v != 0
		case Stereo:
			a.Stereo = v != 0
		case AuxBuffers:
			a.AuxBuffers = v
		case RedSize:
			a.RedSize = v
		case GreenSize:
			a.GreenSize = v
		case BlueSize:
			a.BlueSize = v
		case AlphaSize:
			a.AlphaSize = v
		case DepthSize:
			a.DepthSize = v
		case StencilSize:
			a.StencilSize = v
		case AccumRedSize:
			a.AccumRedSize = v
		case AccumGreenSize:
			a.AccumGreenSize = v
		case AccumBlueSize:
			a.AccumBlueSize = v
		case AccumAlphaSize:
			a.AccumAlphaSize = v
		case FBConfigID:
			a.FBConfigID = v
		}
	}
}

// Collect applies attribs over DefaultAttribs.
func Collect(attribs []Attrib) Attribs {
	a := DefaultAttribs()
	a.Apply(attribs...)
	return a
}

// Format is the pixel format descriptor handed to context creation.
type Format struct {
	// Color is the color buffer layout.
	Color gputypes.TextureFormat
	// DepthStencil is TextureFormatUndefined when neither depth nor
	// stencil bits were requested.
	DepthStencil gputypes.TextureFormat
	DoubleBuffer bool
	// Attribs is the request the format was chosen for.
	Attribs Attribs
}

// DefaultFormat is the format chosen for an empty attribute list.
func DefaultFormat() Format {
	f, _ := ChooseAttribs(DefaultAttribs())
	return f
}

// String summarizes the format for logs.
func (f Format) String() string {
	return fmt.Sprintf("color=%v depth_stencil=%v double_buffer=%t", f.Color, f.DepthStencil, f.DoubleBuffer)
}

// Choose parses list and picks a format for it.
func Choose(list []int32) (Format, error) {
	attribs, err := ParseList(list)
	if err != nil {
		return Format{}, err
	}
	return ChooseAttribs(Collect(attribs))
}

// maxChannelBits is the widest color channel an RGBA8 buffer provides.
const maxChannelBits = 8

// ChooseAttribs picks a format for an already collected request.
func ChooseAttribs(a Attribs) (Format, error) {
	reject := func(k Key, reason string) (Format, error) {
		return Format{}, &AttribError{Index: -1, Key: k, Reason: reason}
	}

	switch {
	case !a.UseGL:
		return reject(UseGL, "rendering must be enabled")
	case a.Stereo:
		return reject(Stereo, "stereo buffers are not supported")
	case a.Level != 0:
		return reject(Level, "overlay and underlay planes are not supported")
	case a.AuxBuffers > 0:
		return reject(AuxBuffers, "auxiliary buffers are not supported")
	case a.AccumRedSize > 0 || a.AccumGreenSize > 0 || a.AccumBlueSize > 0 || a.AccumAlphaSize > 0:
		return reject(AccumRedSize, "accumulation buffers are not supported")
	case a.BufferSize > 4*maxChannelBits:
		return reject(BufferSize, "color buffer wider than 32 bits")
	}
	for _, ch := range []struct {
		k    Key
		bits int32
	}{
		{RedSize, a.RedSize}, {GreenSize, a.GreenSize}, {BlueSize, a.BlueSize}, {AlphaSize, a.AlphaSize},
	} {
		if ch.bits > maxChannelBits {
			return reject(ch.k, fmt.Sprintf("%d-bit channel exceeds %d bits", ch.bits, maxChannelBits))
		}
	}

	f := Format{
		Color:        gputypes.TextureFormatRGBA8Unorm,
		DepthStencil: gputypes.TextureFormatUndefined,
		DoubleBuffer: a.DoubleBuffer,
		Attribs:      a,
	}
	// A bare 32-bit request is the X11 default visual, stored BGRA.
	if a.BufferSize == 4*maxChannelBits && a.RedSize == 0 && a.GreenSize == 0 && a.BlueSize == 0 && a.AlphaSize == 0 {
		f.Color = gputypes.TextureFormatBGRA8Unorm
	}
	if a.DepthSize > 0 || a.StencilSize > 0 {
		f.DepthStencil = gputypes.TextureFormatDepth24PlusStencil8
	}
	return f, nil
}

// Extensions returns the space-separated extension string. The pipeline
// implements no extensions, so it is empty.
func Extensions() string {
	return ""
}

// ErrUnsupportedProc is returned by LookupProc for every name.
var ErrUnsupportedProc = errors.New("visual: unsupported entry point")

// ProcError names the entry point that could not be resolved.
type ProcError struct {
	Name string
}

func (e *ProcError) Error() string {
	return "visual: no entry point " + e.Name
}

// Unwrap returns ErrUnsupportedProc.
func (e *ProcError) Unwrap() error {
	return ErrUnsupportedProc
}

// LookupProc resolves an extension entry point by name. No extensions are
// implemented, so it always reports the name as unsupported.
func LookupProc(name string) (func(), error) {
	return nil, &ProcError{Name: name}
}
