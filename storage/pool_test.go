// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/binary"
	"testing"

	"github.com/bitmark-inc/provenanced/storage"
)

// main pool test
func TestPool(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	// ensure that pool was empty
	if nil != p.Get([]byte("key-one")) {
		t.Fatal("pool was not empty")
	}

	p.Put([]byte("key-one"), []byte("data-one"))
	p.Put([]byte("key-two"), []byte("data-two"))
	p.Put([]byte("key-remove-me"), []byte("to be deleted"))
	p.Delete([]byte("key-remove-me"))
	p.Put([]byte("key-one"), []byte("data-one(NEW)")) // duplicate

	if !p.Has([]byte("key-one")) {
		t.Error("missing: key-one")
	}
	if p.Has([]byte("key-remove-me")) {
		t.Error("not deleted: key-remove-me")
	}
	if value := p.Get([]byte("key-one")); "data-one(NEW)" != string(value) {
		t.Errorf("key-one: got: %q  expected: %q", value, "data-one(NEW)")
	}
	if value := p.Get([]byte("key-two")); "data-two" != string(value) {
		t.Errorf("key-two: got: %q  expected: %q", value, "data-two")
	}
	if nil != p.Get([]byte("/nonexistent")) {
		t.Error("unexpected record: /nonexistent")
	}

	// check that restarting database keeps data
	storage.Finalise()
	err := storage.Initialise(databaseFileName, false)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	p = storage.Pool.TestData
	if value := p.Get([]byte("key-one")); "data-one(NEW)" != string(value) {
		t.Errorf("after restart key-one: got: %q  expected: %q", value, "data-one(NEW)")
	}
}

// distinct pools must never collide
func TestPoolIsolation(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("shared-key")
	storage.Pool.TestData.Put(key, []byte("test-data"))

	if storage.Pool.Products.Has(key) {
		t.Error("products pool sees test data")
	}
	if nil != storage.Pool.Counters.Get(key) {
		t.Error("counters pool sees test data")
	}
}

func TestPoolGetN(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	n, found := p.GetN([]byte("counter"))
	if found {
		t.Fatal("unexpected counter record")
	}
	if 0 != n {
		t.Fatalf("counter: got: %d  expected: 0", n)
	}

	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, 42)
	p.Put([]byte("counter"), buffer)

	n, found = p.GetN([]byte("counter"))
	if !found {
		t.Fatal("missing counter record")
	}
	if 42 != n {
		t.Fatalf("counter: got: %d  expected: 42", n)
	}
}

func TestDoubleInitialise(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := storage.Initialise(databaseFileName, false)
	if nil == err {
		t.Fatal("second initialise did not fail")
	}
}
