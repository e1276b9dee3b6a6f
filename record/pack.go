// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bitmark-inc/provenanced/fault"
	"github.com/bitmark-inc/provenanced/identity"
	"github.com/bitmark-inc/provenanced/util"
)

// pack Product
//
// Pack Varint64(tag) followed by fields in order as struct above;
// the custom map is packed in ascending key order so the packed form
// is deterministic
//
// every field ceiling is checked here and reported with a specific
// fault error, so a packed record is known to be well formed
func (product *Product) Pack() (PackedProduct, error) {
	err := ValidateProductId(product.Id)
	if nil != err {
		return nil, err
	}

	if utf8.RuneCountInString(product.Name) < minNameLength {
		return nil, fault.ErrInvalidName
	}
	if utf8.RuneCountInString(product.Name) > maxNameLength {
		return nil, fault.ErrNameTooLong
	}

	if utf8.RuneCountInString(product.Description) > maxDescriptionLength {
		return nil, fault.ErrDescriptionTooLong
	}

	if utf8.RuneCountInString(product.OriginLocation) < minOriginLength {
		return nil, fault.ErrInvalidOrigin
	}
	if utf8.RuneCountInString(product.OriginLocation) > maxOriginLength {
		return nil, fault.ErrOriginTooLong
	}

	if utf8.RuneCountInString(product.Category) < minCategoryLength {
		return nil, fault.ErrInvalidCategory
	}
	if utf8.RuneCountInString(product.Category) > maxCategoryLength {
		return nil, fault.ErrCategoryTooLong
	}

	if len(product.Tags) > maxTagCount {
		return nil, fault.ErrTooManyTags
	}
	for _, tag := range product.Tags {
		if utf8.RuneCountInString(tag) < minTagLength {
			return nil, fault.ErrInvalidTag
		}
		if utf8.RuneCountInString(tag) > maxTagLength {
			return nil, fault.ErrTagTooLong
		}
	}

	if len(product.Certifications) > maxCertificateCount {
		return nil, fault.ErrTooManyCertifications
	}
	if len(product.MediaHashes) > maxMediaHashCount {
		return nil, fault.ErrTooManyMediaHashes
	}

	if len(product.Custom) > maxCustomCount {
		return nil, fault.ErrTooManyCustomEntries
	}
	customKeys := make([]string, 0, len(product.Custom))
	for key, value := range product.Custom {
		if err := key.Validate(); nil != err {
			return nil, err
		}
		if utf8.RuneCountInString(value) > maxCustomValueLength {
			return nil, fault.ErrCustomValueTooLong
		}
		customKeys = append(customKeys, string(key))
	}
	sort.Strings(customKeys)

	// concatenate bytes
	message := util.ToVarint64(uint64(ProductTag))
	message = appendString(message, product.Id)
	message = appendString(message, product.Name)
	message = appendString(message, product.Description)
	message = appendString(message, product.OriginLocation)
	message = appendString(message, product.Category)
	message = appendIdentity(message, product.Owner)
	message = appendUint64(message, product.CreatedAt)
	message = appendBool(message, product.Active)

	message = appendUint64(message, uint64(len(product.Tags)))
	for _, tag := range product.Tags {
		message = appendString(message, tag)
	}

	message = appendUint64(message, uint64(len(product.Certifications)))
	for _, digest := range product.Certifications {
		message = append(message, digest[:]...)
	}

	message = appendUint64(message, uint64(len(product.MediaHashes)))
	for _, digest := range product.MediaHashes {
		message = append(message, digest[:]...)
	}

	message = appendUint64(message, uint64(len(customKeys)))
	for _, key := range customKeys {
		message = appendString(message, key)
		message = appendString(message, product.Custom[Symbol(key)])
	}

	return PackedProduct(message), nil
}

// pack TrackingEvent
//
// Pack Varint64(tag) followed by fields in order as struct above
func (event *TrackingEvent) Pack() (PackedEvent, error) {
	err := ValidateProductId(event.ProductId)
	if nil != err {
		return nil, err
	}

	err = event.EventType.Validate()
	if nil != err {
		return nil, err
	}

	if utf8.RuneCountInString(event.Note) > maxNoteLength {
		return nil, fault.ErrNoteTooLong
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(TrackingEventTag))
	message = appendUint64(message, event.EventId)
	message = appendString(message, event.ProductId)
	message = appendIdentity(message, event.Actor)
	message = appendUint64(message, event.Timestamp)
	message = appendString(message, string(event.EventType))
	message = append(message, event.DataHash[:]...)
	message = appendString(message, event.Note)

	return PackedEvent(message), nil
}

// ValidateProductId - check a caller-chosen product id
//
// ids are used inside concatenated index keys, so NUL bytes are
// forbidden in addition to the length ceiling
func ValidateProductId(id string) error {
	if utf8.RuneCountInString(id) < minProductIdLength {
		return fault.ErrInvalidProductId
	}
	if utf8.RuneCountInString(id) > maxProductIdLength {
		return fault.ErrProductIdTooLong
	}
	if strings.ContainsRune(id, 0) {
		return fault.ErrInvalidProductId
	}
	return nil
}

// append a string to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer []byte, s string) []byte {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append an identity to a buffer
//
// identities are a fixed size so are stored raw
func appendIdentity(buffer []byte, id identity.Identity) []byte {
	return append(buffer, id.Bytes()...)
}

// append a Varint64 to a buffer
func appendUint64(buffer []byte, value uint64) []byte {
	valueBytes := util.ToVarint64(value)
	return append(buffer, valueBytes...)
}

// append a single flag byte to a buffer
func appendBool(buffer []byte, value bool) []byte {
	b := byte(0x00)
	if value {
		b = 0x01
	}
	return append(buffer, b)
}
