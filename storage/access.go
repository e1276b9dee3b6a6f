// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/provenanced/fault"
)

// Access - combined direct and batched access to the database
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	DirectDelete([]byte) error
	DirectPut([]byte, []byte) error
	Get([]byte) ([]byte, bool, error)
	Has([]byte) (bool, error)
	InUse() bool
	Put([]byte, []byte)
}

type accessData struct {
	sync.Mutex
	inUse  bool
	db     *leveldb.DB
	batch  *leveldb.Batch
	staged Cache
}

func newAccess(db *leveldb.DB, batch *leveldb.Batch, staged Cache) Access {
	return &accessData{
		inUse:  false,
		db:     db,
		batch:  batch,
		staged: staged,
	}
}

func (d *accessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.ErrTransactionAlreadyInUse
	}

	d.inUse = true
	return nil
}

// Put - stage a write; becomes durable on Commit
func (d *accessData) Put(key []byte, value []byte) {
	d.staged.Set(dbPut, string(key), value)
	d.batch.Put(key, value)
}

// Delete - stage a removal; becomes durable on Commit
func (d *accessData) Delete(key []byte) {
	d.staged.Set(dbDelete, string(key), nil)
	d.batch.Delete(key)
}

// Commit - write all staged operations in one atomic batch
func (d *accessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	err := d.db.Write(d.batch, nil)
	d.batch.Reset()
	d.staged.Clear()
	d.inUse = false
	return err
}

// Abort - discard all staged operations
func (d *accessData) Abort() {
	d.Lock()
	defer d.Unlock()

	d.batch.Reset()
	d.staged.Clear()
	d.inUse = false
}

// Get - staged value if present, otherwise the committed value
//
// second result is false when the key is absent
func (d *accessData) Get(key []byte) ([]byte, bool, error) {
	value, op, found := d.staged.Get(string(key))
	if found {
		if dbDelete == op {
			return nil, false, nil
		}
		return value, true, nil
	}

	value, err := d.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	} else if nil != err {
		return nil, false, err
	}
	return value, true, nil
}

func (d *accessData) Has(key []byte) (bool, error) {
	_, op, found := d.staged.Get(string(key))
	if found {
		return dbDelete != op, nil
	}
	return d.db.Has(key, nil)
}

// DirectPut - immediate write bypassing any open transaction
func (d *accessData) DirectPut(key []byte, value []byte) error {
	return d.db.Put(key, value, nil)
}

// DirectDelete - immediate removal bypassing any open transaction
func (d *accessData) DirectDelete(key []byte) error {
	return d.db.Delete(key, nil)
}

func (d *accessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}
