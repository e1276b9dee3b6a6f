// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identity - opaque party identifiers
//
// A party in the registry is named by a fixed 32 byte identifier,
// shown to humans in Base58. The registry performs no signature
// checks: the host environment authenticates callers and hands the
// verified identifier down, so this package only needs decoding,
// encoding and comparison.
package identity

import (
	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/provenanced/fault"
)

// Size - number of bytes in an identity
const Size = 32

// Identity - an authenticated party
type Identity [Size]byte

// FromBase58 - convert a Base58 encoded string to an identity
func FromBase58(s string) (Identity, error) {
	var id Identity
	decoded, err := base58.Decode(s)
	if nil != err {
		return id, fault.ErrCannotDecodeIdentity
	}
	if Size != len(decoded) {
		return id, fault.ErrInvalidIdentityLength
	}
	copy(id[:], decoded)
	return id, nil
}

// FromBytes - convert a raw byte slice to an identity
func FromBytes(buffer []byte) (Identity, error) {
	var id Identity
	if Size != len(buffer) {
		return id, fault.ErrInvalidIdentityLength
	}
	copy(id[:], buffer)
	return id, nil
}

// Bytes - the raw bytes
func (id Identity) Bytes() []byte {
	return id[:]
}

// String - Base58 encoding of the identity
func (id Identity) String() string {
	return base58.Encode(id[:])
}

// IsZero - an all-zero identity marks "nobody"
func (id Identity) IsZero() bool {
	for _, b := range id {
		if 0 != b {
			return false
		}
	}
	return true
}

// MarshalText - convert identity to Base58 text
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert Base58 text to identity
func (id *Identity) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*id = decoded
	return nil
}
