// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/provenanced/counter"
)

// Transaction - the single unit of work over all pools
//
// writes are staged and only become visible to other callers after
// Commit; Abort discards every staged write
type Transaction interface {
	Begin() error
	Abort()
	Commit() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
}

type transactionData struct {
	access Access
}

// lifetime tallies, reported by the CLI in verbose mode
var (
	committedTransactions counter.Counter
	abortedTransactions   counter.Counter
)

func newTransaction(access Access) Transaction {
	return &transactionData{
		access: access,
	}
}

// TransactionCounters - numbers of committed and aborted transactions
// since process start
func TransactionCounters() (uint64, uint64) {
	return committedTransactions.Uint64(), abortedTransactions.Uint64()
}

func (t *transactionData) Begin() error {
	return t.access.Begin()
}

func (t *transactionData) Abort() {
	t.access.Abort()
	abortedTransactions.Increment()
}

func (t *transactionData) Commit() error {
	err := t.access.Commit()
	if nil == err {
		committedTransactions.Increment()
	}
	return err
}

func (t *transactionData) Put(p *PoolHandle, key []byte, value []byte) {
	p.put(key, value)
}

// PutN - store a big endian uint64 value
func (t *transactionData) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	p.put(key, buffer)
}

func (t *transactionData) Delete(p *PoolHandle, key []byte) {
	p.remove(key)
}

func (t *transactionData) Get(p *PoolHandle, key []byte) []byte {
	return p.Get(key)
}

func (t *transactionData) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	return p.GetN(key)
}

func (t *transactionData) Has(p *PoolHandle, key []byte) bool {
	return p.Has(key)
}
