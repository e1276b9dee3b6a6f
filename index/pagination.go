// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package index

// Positions - the 1-based index positions selected by a page
//
// offset is 0-based; the result is the contiguous run
// offset+1 .. min(offset+limit, total) in order, empty when the
// page starts past the end or limit is zero
func Positions(offset uint64, limit uint64, total uint64) []uint64 {
	if offset >= total || 0 == limit {
		return []uint64{}
	}

	end := offset + limit
	if end < offset || end > total { // unsigned overflow clamps too
		end = total
	}

	positions := make([]uint64, 0, end-offset)
	for i := offset + 1; i <= end; i += 1 {
		positions = append(positions, i)
	}
	return positions
}
