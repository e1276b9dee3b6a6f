// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/provenanced/fault"
	"github.com/bitmark-inc/provenanced/identity"
)

func TestRoundTrip(t *testing.T) {
	raw := make([]byte, identity.Size)
	for i := range raw {
		raw[i] = byte(i + 1)
	}

	id, err := identity.FromBytes(raw)
	assert.NoError(t, err, "from bytes failed")
	assert.Equal(t, raw, id.Bytes(), "wrong bytes")

	decoded, err := identity.FromBase58(id.String())
	assert.NoError(t, err, "from base58 failed")
	assert.Equal(t, id, decoded, "base58 round trip mismatch")
}

func TestInvalidLength(t *testing.T) {
	_, err := identity.FromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.ErrInvalidIdentityLength, err, "wrong error")
}

func TestInvalidBase58(t *testing.T) {
	_, err := identity.FromBase58("0OIl") // characters outside the alphabet
	assert.Equal(t, fault.ErrCannotDecodeIdentity, err, "wrong error")
}

func TestIsZero(t *testing.T) {
	var id identity.Identity
	assert.True(t, id.IsZero(), "zero identity not detected")

	id[31] = 1
	assert.False(t, id.IsZero(), "non-zero identity reported zero")
}

func TestText(t *testing.T) {
	raw := make([]byte, identity.Size)
	raw[0] = 0xff

	id, err := identity.FromBytes(raw)
	assert.NoError(t, err, "from bytes failed")

	text, err := id.MarshalText()
	assert.NoError(t, err, "marshal failed")

	var back identity.Identity
	err = back.UnmarshalText(text)
	assert.NoError(t, err, "unmarshal failed")
	assert.Equal(t, id, back, "text round trip mismatch")
}
