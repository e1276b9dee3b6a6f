// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tracker - the public registry operations
//
// each operation is one atomic unit of work: validation and
// authorization run before any write is staged, every write of the
// call commits together, and any fault aborts the whole call leaving
// no trace. The host environment serializes calls, so an operation
// never observes another's intermediate state.
//
// identity arguments are taken to be already authenticated: the
// caller of this package must have verified that the party named by
// each identity really is the party invoking the operation.
package tracker
