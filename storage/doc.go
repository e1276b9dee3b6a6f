// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk data store
//
// maintain separate pools of a number of elements in key→value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. product id   = caller-chosen UTF-8 string (no NUL bytes)
// 4. event id     = big endian uint64 (8 bytes)
// 5. identity     = 32 byte opaque public identifier
// 6. count        = successive index value as big endian uint64 (8 bytes)
// 7. digest       = 32 byte SHA3-256
//
// Products:
//
//   P ++ product id               - product store
//                                   data: packed product record
//   L ++ product id               - per-product event id list, append only
//                                   data: concatenated event ids (8 bytes each)
//
// Events:
//
//   E ++ event id                 - tracking event store
//                                   data: packed event record
//
// Authorization:
//
//   A ++ product id ++ identity   - explicit actor grant, absent = not granted
//                                   data: 0x01
//
// Indexes (count + 1-based position slots, append only):
//
//   I ++ count                    - global product index
//                                   data: product id
//   N ++ owner                    - number of products indexed for an owner
//                                   data: count
//   O ++ owner ++ count           - owner index position
//                                   data: product id
//   G ++ origin                   - number of products indexed for an origin
//                                   data: count
//   R ++ origin ++ count          - origin index position
//                                   data: product id
//   T ++ product id ++ 0x00 ++ event type
//                                 - number of events of a type for a product
//                                   data: count
//   X ++ product id ++ 0x00 ++ event type ++ count
//                                 - event type index position
//                                   data: event id (8 bytes)
//
// Counters:
//
//   C ++ name                     - global scalar counters
//                                   data: count
//                                   names: "products", "active", "events"
//
// Testing:
//
//   Z ++ key                      - testing data
package storage
