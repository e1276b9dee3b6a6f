// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/provenanced/identity"
)

// TagType - type code for records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	ProductTag       = TagType(iota)
	TrackingEventTag = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// byte sizes for various fields
const (
	minProductIdLength   = 1
	maxProductIdLength   = 64
	minNameLength        = 1
	maxNameLength        = 64
	maxDescriptionLength = 1024
	minOriginLength      = 1
	maxOriginLength      = 128
	minCategoryLength    = 1
	maxCategoryLength    = 64
	minTagLength         = 1
	maxTagLength         = 32
	maxTagCount          = 16
	maxCertificateCount  = 16
	maxMediaHashCount    = 16
	maxCustomCount       = 16
	maxCustomValueLength = 256
	maxNoteLength        = 1024
)

// PackedProduct - packed product record
type PackedProduct []byte

// PackedEvent - packed tracking event record
type PackedEvent []byte

// Product - a registered product
//
// the id is caller-chosen and immutable; a product is never deleted,
// only deactivated or transferred
type Product struct {
	Id             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	OriginLocation string            `json:"originLocation"`
	Category       string            `json:"category"`
	Owner          identity.Identity `json:"owner"`
	CreatedAt      uint64            `json:"createdAt"`
	Active         bool              `json:"active"`
	Tags           []string          `json:"tags"`
	Certifications []Digest          `json:"certifications"`
	MediaHashes    []Digest          `json:"mediaHashes"`
	Custom         map[Symbol]string `json:"custom"`
}

// TrackingEvent - one immutable entry in a product history
//
// the event id is assigned by the registry and reflects global
// creation order
type TrackingEvent struct {
	EventId   uint64            `json:"eventId,string"`
	ProductId string            `json:"productId"`
	Actor     identity.Identity `json:"actor"`
	Timestamp uint64            `json:"timestamp"`
	EventType Symbol            `json:"eventType"`
	DataHash  Digest            `json:"dataHash"`
	Note      string            `json:"note"`
}
