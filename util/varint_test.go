// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/provenanced/util"
)

type varintItem struct {
	value   uint64
	encoded []byte
}

var varintItems = []varintItem{
	{0x00, []byte{0x00}},
	{0x01, []byte{0x01}},
	{0x7f, []byte{0x7f}},
	{0x80, []byte{0x80, 0x01}},
	{0xff, []byte{0xff, 0x01}},
	{0x3fff, []byte{0xff, 0x7f}},
	{0x4000, []byte{0x80, 0x80, 0x01}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

func TestToVarint64(t *testing.T) {
	for i, item := range varintItems {
		encoded := util.ToVarint64(item.value)
		if !bytes.Equal(encoded, item.encoded) {
			t.Errorf("%d: encode: %d  got: %x  expected: %x", i, item.value, encoded, item.encoded)
		}
	}
}

func TestFromVarint64(t *testing.T) {
	for i, item := range varintItems {
		// trailing junk must be ignored
		buffer := append([]byte{}, item.encoded...)
		buffer = append(buffer, 0xde, 0xad)

		value, count := util.FromVarint64(buffer)
		if value != item.value {
			t.Errorf("%d: decode: %x  got: %d  expected: %d", i, item.encoded, value, item.value)
		}
		if count != len(item.encoded) {
			t.Errorf("%d: decode: %x  used: %d  expected: %d", i, item.encoded, count, len(item.encoded))
		}
	}
}

func TestFromVarint64Truncated(t *testing.T) {
	value, count := util.FromVarint64([]byte{0x80})
	if 0 != value || 0 != count {
		t.Errorf("truncated: got: %d, %d  expected: 0, 0", value, count)
	}
	value, count = util.FromVarint64([]byte{})
	if 0 != value || 0 != count {
		t.Errorf("empty: got: %d, %d  expected: 0, 0", value, count)
	}
}

func TestClippedVarint64(t *testing.T) {
	value, count := util.ClippedVarint64([]byte{0x20}, 1, 64)
	if 0x20 != value || 1 != count {
		t.Errorf("clipped: got: %d, %d  expected: 32, 1", value, count)
	}

	// below minimum
	value, count = util.ClippedVarint64([]byte{0x00}, 1, 64)
	if 0 != value || 0 != count {
		t.Errorf("below minimum: got: %d, %d  expected: 0, 0", value, count)
	}

	// above maximum
	value, count = util.ClippedVarint64([]byte{0x41}, 1, 64)
	if 0 != value || 0 != count {
		t.Errorf("above maximum: got: %d, %d  expected: 0, 0", value, count)
	}

	// inverted range
	value, count = util.ClippedVarint64([]byte{0x01}, 10, 5)
	if 0 != value || 0 != count {
		t.Errorf("inverted range: got: %d, %d  expected: 0, 0", value, count)
	}
}
