// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the entity repository
//
// single-record access to products and tracking events, the
// per-product event id list and the global scalar counters; all
// reads and writes go through the one transaction of the current
// call so the unit of work stays atomic
//
// lookups report absence with a nil/zero result, never an error;
// the contract surface decides which absences are faults
package registry

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/provenanced/record"
	"github.com/bitmark-inc/provenanced/storage"
)

// counter names in the Counters pool
var (
	totalProductsKey  = []byte("products")
	activeProductsKey = []byte("active")
	eventSequenceKey  = []byte("events")
)

// HasProduct - check a product id is registered
func HasProduct(trx storage.Transaction, productId string) bool {
	return trx.Has(storage.Pool.Products, []byte(productId))
}

// GetProduct - fetch and unpack one product
//
// returns nil if the id is not registered
func GetProduct(trx storage.Transaction, productId string) *record.Product {
	packed := trx.Get(storage.Pool.Products, []byte(productId))
	if nil == packed {
		return nil
	}

	product, err := record.PackedProduct(packed).Unpack()
	if nil != err {
		logger.Panicf("registry.GetProduct: corrupt record for: %q  error: %s", productId, err)
	}
	return product
}

// PutProduct - pack and store one product, full overwrite
//
// used both for creation and for updates
func PutProduct(trx storage.Transaction, product *record.Product) error {
	packed, err := product.Pack()
	if nil != err {
		return err
	}
	trx.Put(storage.Pool.Products, []byte(product.Id), packed)
	return nil
}

// NextEventId - allocate the next tracking event id
//
// increment and persist are one inseparable step: the new value is
// staged before this returns, so a skipped persist cannot
// desynchronise future ids
func NextEventId(trx storage.Transaction) uint64 {
	sequence, _ := trx.GetN(storage.Pool.Counters, eventSequenceKey)
	sequence += 1
	trx.PutN(storage.Pool.Counters, eventSequenceKey, sequence)
	return sequence
}

// EventSequence - the highest event id allocated so far
func EventSequence(trx storage.Transaction) uint64 {
	sequence, _ := trx.GetN(storage.Pool.Counters, eventSequenceKey)
	return sequence
}

// GetEvent - fetch and unpack one tracking event
//
// returns nil if the event id was never allocated
func GetEvent(trx storage.Transaction, eventId uint64) *record.TrackingEvent {
	packed := trx.Get(storage.Pool.Events, eventKey(eventId))
	if nil == packed {
		return nil
	}

	event, err := record.PackedEvent(packed).Unpack()
	if nil != err {
		logger.Panicf("registry.GetEvent: corrupt record for: %d  error: %s", eventId, err)
	}
	return event
}

// PutEvent - pack and store one tracking event
//
// events are immutable: this is only ever called once per event id
func PutEvent(trx storage.Transaction, event *record.TrackingEvent) error {
	packed, err := event.Pack()
	if nil != err {
		return err
	}
	trx.Put(storage.Pool.Events, eventKey(event.EventId), packed)
	return nil
}

// GetProductEventIds - the whole event id list of one product
//
// an unregistered or event-free product yields an empty list
func GetProductEventIds(trx storage.Transaction, productId string) []uint64 {
	packed := trx.Get(storage.Pool.ProductEventIds, []byte(productId))
	if 0 != len(packed)%8 {
		logger.Panicf("registry.GetProductEventIds: corrupt list for: %q  length: %d", productId, len(packed))
	}

	ids := make([]uint64, 0, len(packed)/8)
	for i := 0; i < len(packed); i += 8 {
		ids = append(ids, binary.BigEndian.Uint64(packed[i:i+8]))
	}
	return ids
}

// PutProductEventIds - whole-list replace of a product event id list
func PutProductEventIds(trx storage.Transaction, productId string, ids []uint64) {
	packed := make([]byte, 8*len(ids))
	for i, id := range ids {
		binary.BigEndian.PutUint64(packed[8*i:], id)
	}
	trx.Put(storage.Pool.ProductEventIds, []byte(productId), packed)
}

// AppendProductEventId - append one event id to a product list
//
// read-modify-write of the whole list; safe because the unit of work
// is atomic and calls never interleave
func AppendProductEventId(trx storage.Transaction, productId string, eventId uint64) {
	packed := trx.Get(storage.Pool.ProductEventIds, []byte(productId))
	buffer := make([]byte, len(packed), len(packed)+8)
	copy(buffer, packed)

	idBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(idBytes, eventId)
	trx.Put(storage.Pool.ProductEventIds, []byte(productId), append(buffer, idBytes...))
}

// TotalProducts - number of products ever registered
func TotalProducts(trx storage.Transaction) uint64 {
	n, _ := trx.GetN(storage.Pool.Counters, totalProductsKey)
	return n
}

// IncrementTotalProducts - bump the registration counter, returns the
// new value which is also the new product's global index position
func IncrementTotalProducts(trx storage.Transaction) uint64 {
	n, _ := trx.GetN(storage.Pool.Counters, totalProductsKey)
	n += 1
	trx.PutN(storage.Pool.Counters, totalProductsKey, n)
	return n
}

// ActiveProducts - number of currently active products
func ActiveProducts(trx storage.Transaction) uint64 {
	n, _ := trx.GetN(storage.Pool.Counters, activeProductsKey)
	return n
}

// IncrementActiveProducts - one more product is active
func IncrementActiveProducts(trx storage.Transaction) uint64 {
	n, _ := trx.GetN(storage.Pool.Counters, activeProductsKey)
	n += 1
	trx.PutN(storage.Pool.Counters, activeProductsKey, n)
	return n
}

// DecrementActiveProducts - one fewer product is active
func DecrementActiveProducts(trx storage.Transaction) uint64 {
	n, _ := trx.GetN(storage.Pool.Counters, activeProductsKey)
	if 0 == n {
		logger.Panic("registry.DecrementActiveProducts: counter underflow")
	}
	n -= 1
	trx.PutN(storage.Pool.Counters, activeProductsKey, n)
	return n
}

// event ids are stored big endian so records sort in creation order
func eventKey(eventId uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, eventId)
	return key
}
