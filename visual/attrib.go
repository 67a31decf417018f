// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package visual negotiates pixel formats from GLX-style attribute lists.
//
// An attribute list is a zero-terminated sequence of keys, each followed by
// an integer operand unless the key is boolean:
//
//	list := []int32{
//	    int32(visual.RGBA),
//	    int32(visual.DoubleBuffer),
//	    int32(visual.DepthSize), 24,
//	    0,
//	}
//	format, err := visual.Choose(list)
//
// The pipeline draws untextured lines into an RGBA surface, so most of the
// attribute space is accepted and recorded rather than acted upon; requests
// the pipeline cannot honor fail with ErrUnsupportedCapability.
package visual

import (
	"errors"
	"fmt"
)

// Key identifies a visual attribute. The values match the GLX_* constants.
type Key int32

// Attribute keys.
const (
	UseGL          Key = 1
	BufferSize     Key = 2
	Level          Key = 3
	RGBA           Key = 4
	DoubleBuffer   Key = 5
	Stereo         Key = 6
	AuxBuffers     Key = 7
	RedSize        Key = 8
	GreenSize      Key = 9
	BlueSize       Key = 10
	AlphaSize      Key = 11
	DepthSize      Key = 12
	StencilSize    Key = 13
	AccumRedSize   Key = 14
	AccumGreenSize Key = 15
	AccumBlueSize  Key = 16
	AccumAlphaSize Key = 17
	FBConfigID     Key = 0x8013
)

// keyInfo describes how a key is encoded in a list.
type keyInfo struct {
	name    string
	boolean bool
}

var keys = map[Key]keyInfo{
	UseGL:          {"UseGL", true},
	BufferSize:     {"BufferSize", false},
	Level:          {"Level", false},
	RGBA:           {"RGBA", true},
	DoubleBuffer:   {"DoubleBuffer", true},
	Stereo:         {"Stereo", true},
	AuxBuffers:     {"AuxBuffers", false},
	RedSize:        {"RedSize", false},
	GreenSize:      {"GreenSize", false},
	BlueSize:       {"BlueSize", false},
	AlphaSize:      {"AlphaSize", false},
	DepthSize:      {"DepthSize", false},
	StencilSize:    {"StencilSize", false},
	AccumRedSize:   {"AccumRedSize", false},
	AccumGreenSize: {"AccumGreenSize", false},
	AccumBlueSize:  {"AccumBlueSize", false},
	AccumAlphaSize: {"AccumAlphaSize", false},
	FBConfigID:     {"FBConfigID", false},
}

// String returns the attribute name, or "Key(n)" for an unknown key.
func (k Key) String() string {
	if info, ok := keys[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Key(%d)", int32(k))
}

// Boolean reports whether k is a flag with no operand.
func (k Key) Boolean() bool {
	return keys[k].boolean
}

// Attrib is one parsed attribute. Boolean keys have Value 1.
type Attrib struct {
	Key   Key
	Value int32
}

// String formats the attribute as "Key" or "Key=value".
func (a Attrib) String() string {
	if a.Key.Boolean() {
		return a.Key.String()
	}
	return fmt.Sprintf("%v=%d", a.Key, a.Value)
}

// ErrUnsupportedCapability is returned for attribute lists, or context
// requests, the pipeline cannot satisfy.
var ErrUnsupportedCapability = errors.New("visual: unsupported capability")

// AttribError describes a rejected attribute.
type AttribError struct {
	// Index is the position of the key in the list.
	Index int
	Key   Key
	// Reason explains the rejection.
	Reason string
}

func (e *AttribError) Error() string {
	return fmt.Sprintf("visual: attribute %v at index %d: %s", e.Key, e.Index, e.Reason)
}

// Unwrap returns ErrUnsupportedCapability.
func (e *AttribError) Unwrap() error {
	return ErrUnsupportedCapability
}

// ParseList parses a zero-terminated attribute list. A list without a
// terminator is read to its end. Unknown keys and missing operands are
// errors.
func ParseList(list []int32) ([]Attrib, error) {
	var attribs []Attrib
	for i := 0; i < len(list); i++ {
		k := Key(list[i])
		if k == 0 {
			break
		}
		info, ok := keys[k]
		if !ok {
			return nil, &AttribError{Index: i, Key: k, Reason: "unknown attribute"}
		}
		if info.boolean {
			attribs = append(attribs, Attrib{Key: k, Value: 1})
			continue
		}
		if i+1 >= len(list) {
			return nil, &AttribError{Index: i, Key: k, Reason: "missing value"}
		}
		i++
		attribs = append(attribs, Attrib{Key: k, Value: list[i]})
	}
	return attribs, nil
}

// EncodeList is the inverse of ParseList: it returns a zero-terminated list.
func EncodeList(attribs []Attrib) []int32 {
	list := make([]int32, 0, 2*len(attribs)+1)
	for _, a := range attribs {
		list = append(list, int32(a.Key))
		if !a.Key.Boolean() {
			list = append(list, a.Value)
		}
	}
	return append(list, 0)
}
