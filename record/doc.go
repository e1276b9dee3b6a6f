// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - registry entity records and their wire format
//
// The registry stores two kinds of record: products and tracking
// events. Records are packed to a byte form for the storage layer:
// a Varint64 tag identifying the record kind, followed by the fields
// in struct order. Variable length fields are prefixed by a Varint64
// byte count; identities and digests are fixed 32 byte values and
// are stored raw.
//
// Pack validates every field ceiling and returns one specific fault
// error per violated field, so a record that packs successfully is
// known to be well formed.
package record
