// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/provenanced/fault"
	"github.com/bitmark-inc/provenanced/identity"
	"github.com/bitmark-inc/provenanced/util"
)

// limit on any single length prefix, to clip corrupt records early
const maxFieldLength = 8192

// Unpack - turn a byte slice back into a product record
func (packed PackedProduct) Unpack() (product *Product, e error) {

	// a corrupt record could index past the buffer end
	defer func() {
		if r := recover(); nil != r {
			product = nil
			e = fault.ErrNotAProductRecord
		}
	}()

	recordType, n := util.FromVarint64(packed)
	if 0 == n || ProductTag != TagType(recordType) {
		return nil, fault.ErrNotAProductRecord
	}

	product = &Product{}

	product.Id, n = nextString(packed, n)
	product.Name, n = nextString(packed, n)
	product.Description, n = nextString(packed, n)
	product.OriginLocation, n = nextString(packed, n)
	product.Category, n = nextString(packed, n)
	product.Owner, n = nextIdentity(packed, n)
	product.CreatedAt, n = nextUint64(packed, n)
	product.Active, n = nextBool(packed, n)

	tagCount, n := nextUint64(packed, n)
	product.Tags = make([]string, tagCount)
	for i := range product.Tags {
		product.Tags[i], n = nextString(packed, n)
	}

	certificateCount, n := nextUint64(packed, n)
	product.Certifications = make([]Digest, certificateCount)
	for i := range product.Certifications {
		product.Certifications[i], n = nextDigest(packed, n)
	}

	mediaCount, n := nextUint64(packed, n)
	product.MediaHashes = make([]Digest, mediaCount)
	for i := range product.MediaHashes {
		product.MediaHashes[i], n = nextDigest(packed, n)
	}

	customCount, n := nextUint64(packed, n)
	product.Custom = make(map[Symbol]string, customCount)
	for i := uint64(0); i < customCount; i += 1 {
		var key, value string
		key, n = nextString(packed, n)
		value, n = nextString(packed, n)
		product.Custom[Symbol(key)] = value
	}

	if n != len(packed) {
		return nil, fault.ErrNotAProductRecord
	}

	return product, nil
}

// Unpack - turn a byte slice back into a tracking event record
func (packed PackedEvent) Unpack() (event *TrackingEvent, e error) {

	defer func() {
		if r := recover(); nil != r {
			event = nil
			e = fault.ErrNotAnEventRecord
		}
	}()

	recordType, n := util.FromVarint64(packed)
	if 0 == n || TrackingEventTag != TagType(recordType) {
		return nil, fault.ErrNotAnEventRecord
	}

	event = &TrackingEvent{}

	event.EventId, n = nextUint64(packed, n)
	event.ProductId, n = nextString(packed, n)
	event.Actor, n = nextIdentity(packed, n)
	event.Timestamp, n = nextUint64(packed, n)

	eventType, n := nextString(packed, n)
	event.EventType = Symbol(eventType)

	event.DataHash, n = nextDigest(packed, n)
	event.Note, n = nextString(packed, n)

	if n != len(packed) {
		return nil, fault.ErrNotAnEventRecord
	}

	return event, nil
}

// field extractors
//
// each panics on a truncated buffer; the Unpack recover turns that
// into the not-a-record fault

func nextString(packed []byte, n int) (string, int) {
	length, count := util.ClippedVarint64(packed[n:], 0, maxFieldLength)
	if 0 == count {
		panic("truncated length prefix")
	}
	n += count
	s := string(packed[n : n+length])
	return s, n + length
}

func nextIdentity(packed []byte, n int) (identity.Identity, int) {
	id, err := identity.FromBytes(packed[n : n+identity.Size])
	if nil != err {
		panic("truncated identity")
	}
	return id, n + identity.Size
}

func nextUint64(packed []byte, n int) (uint64, int) {
	value, count := util.FromVarint64(packed[n:])
	if 0 == count {
		panic("truncated varint")
	}
	return value, n + count
}

func nextBool(packed []byte, n int) (bool, int) {
	return 0 != packed[n], n + 1
}

func nextDigest(packed []byte, n int) (Digest, int) {
	digest, err := DigestFromBytes(packed[n : n+DigestLength])
	if nil != err {
		panic("truncated digest")
	}
	return digest, n + DigestLength
}
