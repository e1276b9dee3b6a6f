// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/provenanced/fault"
)

// DigestLength - number of bytes in a digest
const DigestLength = 32

// Digest - a fixed-size opaque hash
//
// the registry never verifies digests, it only stores and returns them
type Digest [DigestLength]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return Digest(sha3.Sum256(record))
}

// DigestFromBytes - convert a byte slice to a digest
func DigestFromBytes(buffer []byte) (Digest, error) {
	var digest Digest
	if DigestLength != len(buffer) {
		return digest, fault.ErrWrongDigestLength
	}
	copy(digest[:], buffer)
	return digest, nil
}

// String - hexadecimal representation
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// MarshalText - convert digest to hexadecimal text
func (digest Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(DigestLength)
	buffer := make([]byte, size)
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hexadecimal text to digest
func (digest *Digest) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	if DigestLength != byteCount {
		return fault.ErrWrongDigestLength
	}
	copy(digest[:], buffer)
	return nil
}
