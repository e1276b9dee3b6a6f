// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package index - append-only secondary indexes
//
// every indexed dimension is a count plus a family of 1-based
// position slots: position i holds the id of the i-th entity ever
// appended under that dimension. Slots are written exactly once and
// never removed, so pagination is a bounded run of point lookups and
// every position inside the count must resolve.
//
// the append is not idempotent - appending the same entity twice
// double counts it - so callers append exactly once per entity
// creation
package index

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/provenanced/storage"
)

// Append - add an entity id at the next position of a dimension
//
// read count, bump, write the new slot, persist the count; returns
// the new count
func Append(trx storage.Transaction, counts *storage.PoolHandle, positions *storage.PoolHandle, dimension []byte, entityId []byte) uint64 {
	count, _ := trx.GetN(counts, dimension)
	count += 1
	trx.Put(positions, positionKey(dimension, count), entityId)
	trx.PutN(counts, dimension, count)
	return count
}

// Count - number of entities appended under a dimension
func Count(trx storage.Transaction, counts *storage.PoolHandle, dimension []byte) uint64 {
	count, _ := trx.GetN(counts, dimension)
	return count
}

// Fetch - resolve a page of entity ids in insertion order
func Fetch(trx storage.Transaction, counts *storage.PoolHandle, positions *storage.PoolHandle, dimension []byte, offset uint64, limit uint64) [][]byte {
	total, _ := trx.GetN(counts, dimension)
	return fetchPositions(trx, positions, dimension, total, offset, limit)
}

// AppendGlobal - record a product at a position of the global index
//
// the position is the total-products counter value after increment,
// maintained by the caller so the counter has a single owner
func AppendGlobal(trx storage.Transaction, position uint64, productId string) {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, position)
	trx.Put(storage.Pool.GlobalIndex, key, []byte(productId))
}

// FetchGlobal - resolve a page of the global product index
func FetchGlobal(trx storage.Transaction, total uint64, offset uint64, limit uint64) []string {
	items := fetchPositions(trx, storage.Pool.GlobalIndex, nil, total, offset, limit)
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = string(item)
	}
	return ids
}

// EventTypeDimension - dimension key for events of one type within
// one product
//
// the NUL separator cannot occur in a product id or a symbol, so
// distinct (product, type) pairs never alias
func EventTypeDimension(productId string, eventType string) []byte {
	dimension := make([]byte, 0, len(productId)+1+len(eventType))
	dimension = append(dimension, productId...)
	dimension = append(dimension, 0x00)
	return append(dimension, eventType...)
}

// shared page walk over position slots
//
// the allocation is sized from the clamped page, never from the raw
// limit, so an oversized limit cannot drive an oversized allocation
func fetchPositions(trx storage.Transaction, positions *storage.PoolHandle, dimension []byte, total uint64, offset uint64, limit uint64) [][]byte {
	page := Positions(offset, limit, total)
	result := make([][]byte, 0, len(page))

	for _, i := range page {
		entityId := trx.Get(positions, positionKey(dimension, i))
		if nil == entityId {
			logger.Panicf("index.Fetch: missing position %d of %d for dimension: %x", i, total, dimension)
		}
		result = append(result, entityId)
	}
	return result
}

// slot key: dimension ++ big endian count
//
// the count is a fixed 8 byte suffix so dimensions of different
// lengths can never produce the same key
func positionKey(dimension []byte, i uint64) []byte {
	key := make([]byte, len(dimension)+8)
	copy(key, dimension)
	binary.BigEndian.PutUint64(key[len(dimension):], i)
	return key
}
