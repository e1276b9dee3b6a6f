// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker_test

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/provenanced/fault"
	"github.com/bitmark-inc/provenanced/identity"
	"github.com/bitmark-inc/provenanced/record"
	"github.com/bitmark-inc/provenanced/storage"
	"github.com/bitmark-inc/provenanced/tracker"
)

// test database file
const (
	databaseFileName = "test.leveldb"
)

// some identities for test cases
var (
	alice   = makeIdentity(0x01)
	bob     = makeIdentity(0x02)
	carol   = makeIdentity(0x03)
	mallory = makeIdentity(0x04)
)

func makeIdentity(fill byte) identity.Identity {
	buffer := make([]byte, identity.Size)
	for i := 0; i < identity.Size; i += 1 {
		buffer[i] = fill
	}
	id, err := identity.FromBytes(buffer)
	if nil != err {
		panic(err)
	}
	return id
}

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseFileName, false)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	storage.Finalise()
	removeFiles()
}

// register a minimal valid product owned by alice
func registerTestProduct(t *testing.T, productId string) *record.Product {
	product, err := tracker.RegisterProduct(
		alice, productId, "Single Origin Beans", "a test product",
		"Yirgacheffe", "coffee",
		[]string{"organic"}, nil, nil, nil,
	)
	if nil != err {
		t.Fatalf("register %q error: %s", productId, err)
	}
	return product
}

func TestRegisterProduct(t *testing.T) {
	setup(t)
	defer teardown(t)

	product := registerTestProduct(t, "lot-001")
	assert.Equal(t, "lot-001", product.Id, "wrong id")
	assert.Equal(t, alice, product.Owner, "wrong owner")
	assert.True(t, product.Active, "new product must be active")

	stored, err := tracker.GetProduct("lot-001")
	assert.NoError(t, err, "get error")
	assert.Equal(t, product.Id, stored.Id, "stored id differs")
	assert.Equal(t, product.Name, stored.Name, "stored name differs")
	assert.Equal(t, product.Owner, stored.Owner, "stored owner differs")
	assert.Equal(t, product.OriginLocation, stored.OriginLocation, "stored origin differs")
	assert.Equal(t, product.CreatedAt, stored.CreatedAt, "stored timestamp differs")
	assert.Equal(t, product.Tags, stored.Tags, "stored tags differ")
	assert.True(t, stored.Active, "stored product must be active")

	ids, err := tracker.GetProductEventIds("lot-001")
	assert.NoError(t, err, "event ids error")
	assert.Empty(t, ids, "new product must have no events")

	exists, err := tracker.HasProduct("lot-001")
	assert.NoError(t, err, "has error")
	assert.True(t, exists, "registered product must exist")
}

func TestRegisterDuplicateProductId(t *testing.T) {
	setup(t)
	defer teardown(t)

	registerTestProduct(t, "lot-001")

	_, err := tracker.RegisterProduct(
		bob, "lot-001", "Counterfeit", "", "Elsewhere", "coffee",
		nil, nil, nil, nil,
	)
	assert.Equal(t, fault.ErrProductAlreadyExists, err, "duplicate id must be rejected")

	// first registration untouched
	product, err := tracker.GetProduct("lot-001")
	assert.NoError(t, err, "get error")
	assert.Equal(t, alice, product.Owner, "original owner must survive")
}

func TestRegisterValidationBeforeWrite(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := tracker.RegisterProduct(
		alice, "", "No Id", "", "Nowhere", "none",
		nil, nil, nil, nil,
	)
	assert.Equal(t, fault.ErrInvalidProductId, err, "empty id must be rejected")

	// a failed registration must leave no trace in the counters
	stats, err := tracker.GetStats()
	assert.NoError(t, err, "stats error")
	assert.Equal(t, uint64(0), stats.TotalProducts, "rejected registration counted")
	assert.Equal(t, uint64(0), stats.ActiveProducts, "rejected registration counted")
}

func TestGetMissingProduct(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := tracker.GetProduct("no-such-lot")
	assert.Equal(t, fault.ErrProductNotFound, err, "missing product must not resolve")

	exists, err := tracker.HasProduct("no-such-lot")
	assert.NoError(t, err, "has error")
	assert.False(t, exists, "missing product must not exist")
}

func TestAddTrackingEvent(t *testing.T) {
	setup(t)
	defer teardown(t)

	registerTestProduct(t, "lot-001")

	hash := record.NewDigest([]byte("shipment manifest"))
	eventId, err := tracker.AddTrackingEvent(alice, "lot-001", "shipped", hash, "left the warehouse")
	assert.NoError(t, err, "add event error")
	assert.Equal(t, uint64(1), eventId, "first event id")

	event, err := tracker.GetEvent(eventId)
	assert.NoError(t, err, "get event error")
	assert.Equal(t, "lot-001", event.ProductId, "wrong product")
	assert.Equal(t, alice, event.Actor, "wrong actor")
	assert.Equal(t, record.Symbol("shipped"), event.EventType, "wrong type")
	assert.Equal(t, hash, event.DataHash, "wrong hash")
	assert.Equal(t, "left the warehouse", event.Note, "wrong note")

	ids, err := tracker.GetProductEventIds("lot-001")
	assert.NoError(t, err, "event ids error")
	assert.Equal(t, []uint64{1}, ids, "history must hold the event")
}

func TestEventIdsAreGloballyUnique(t *testing.T) {
	setup(t)
	defer teardown(t)

	registerTestProduct(t, "lot-001")
	registerTestProduct(t, "lot-002")

	hash := record.NewDigest([]byte("data"))
	seen := make(map[uint64]bool)
	products := []string{"lot-001", "lot-002", "lot-001", "lot-002", "lot-001"}
	for i, productId := range products {
		eventId, err := tracker.AddTrackingEvent(alice, productId, "scanned", hash, "")
		assert.NoError(t, err, "add event error")
		assert.False(t, seen[eventId], "event id reused")
		assert.Equal(t, uint64(i+1), eventId, "event ids must follow creation order")
		seen[eventId] = true
	}
}

func TestEventOrderingPerProduct(t *testing.T) {
	setup(t)
	defer teardown(t)

	registerTestProduct(t, "lot-001")
	registerTestProduct(t, "lot-002")

	hash := record.NewDigest([]byte("data"))
	// interleave so the per-product histories are sparse in the
	// global sequence
	tracker.AddTrackingEvent(alice, "lot-001", "picked", hash, "")  // 1
	tracker.AddTrackingEvent(alice, "lot-002", "picked", hash, "")  // 2
	tracker.AddTrackingEvent(alice, "lot-001", "washed", hash, "")  // 3
	tracker.AddTrackingEvent(alice, "lot-001", "shipped", hash, "") // 4

	ids, err := tracker.GetProductEventIds("lot-001")
	assert.NoError(t, err, "event ids error")
	assert.Equal(t, []uint64{1, 3, 4}, ids, "history must preserve append order")

	ids, err = tracker.GetProductEventIds("lot-002")
	assert.NoError(t, err, "event ids error")
	assert.Equal(t, []uint64{2}, ids, "history must preserve append order")
}

func TestEventPagination(t *testing.T) {
	setup(t)
	defer teardown(t)

	registerTestProduct(t, "lot-001")

	hash := record.NewDigest([]byte("data"))
	for i := 0; i < 7; i += 1 {
		_, err := tracker.AddTrackingEvent(alice, "lot-001", "scanned", hash, "")
		assert.NoError(t, err, "add event error")
	}

	// walk the history in pages of 3 and reassemble it
	collected := []uint64{}
	for offset := uint64(0); ; offset += 3 {
		page, err := tracker.GetProductEventIdsPaginated("lot-001", offset, 3)
		assert.NoError(t, err, "page error")
		if 0 == len(page) {
			break
		}
		collected = append(collected, page...)
	}
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7}, collected, "pages must tile the history")

	// a page past the end is empty, not an error
	page, err := tracker.GetProductEventIdsPaginated("lot-001", 100, 3)
	assert.NoError(t, err, "page error")
	assert.Empty(t, page, "page past the end")

	// a page over the end is clipped
	page, err = tracker.GetProductEventIdsPaginated("lot-001", 5, 10)
	assert.NoError(t, err, "page error")
	assert.Equal(t, []uint64{6, 7}, page, "last partial page")

	// the largest possible limit clips the same way
	page, err = tracker.GetProductEventIdsPaginated("lot-001", 0, math.MaxUint64)
	assert.NoError(t, err, "page error")
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7}, page, "full history")

	products, err := tracker.GetAllProducts(0, math.MaxUint64)
	assert.NoError(t, err, "list error")
	assert.Equal(t, 1, len(products), "wrong product count")
}

func TestAuthorization(t *testing.T) {
	setup(t)
	defer teardown(t)

	registerTestProduct(t, "lot-001")
	hash := record.NewDigest([]byte("data"))

	// owner is implicitly authorized, others are not
	ok, err := tracker.IsAuthorized("lot-001", alice)
	assert.NoError(t, err, "authorization error")
	assert.True(t, ok, "owner must be authorized")

	ok, err = tracker.IsAuthorized("lot-001", bob)
	assert.NoError(t, err, "authorization error")
	assert.False(t, ok, "unknown actor must be denied")

	_, err = tracker.AddTrackingEvent(bob, "lot-001", "scanned", hash, "")
	assert.Equal(t, fault.ErrUnauthorized, err, "unauthorized append must fail")

	// grant, append, revoke, append again
	err = tracker.AddAuthorizedActor(alice, "lot-001", bob)
	assert.NoError(t, err, "grant error")

	ok, _ = tracker.IsAuthorized("lot-001", bob)
	assert.True(t, ok, "granted actor must be authorized")

	_, err = tracker.AddTrackingEvent(bob, "lot-001", "scanned", hash, "")
	assert.NoError(t, err, "granted append error")

	err = tracker.RemoveAuthorizedActor(alice, "lot-001", bob)
	assert.NoError(t, err, "revoke error")

	ok, _ = tracker.IsAuthorized("lot-001", bob)
	assert.False(t, ok, "revoked actor must be denied")

	_, err = tracker.AddTrackingEvent(bob, "lot-001", "scanned", hash, "")
	assert.Equal(t, fault.ErrUnauthorized, err, "revoked append must fail")
}

func TestOnlyOwnerManagesGrants(t *testing.T) {
	setup(t)
	defer teardown(t)

	registerTestProduct(t, "lot-001")

	err := tracker.AddAuthorizedActor(mallory, "lot-001", mallory)
	assert.Equal(t, fault.ErrUnauthorized, err, "non-owner grant must fail")

	tracker.AddAuthorizedActor(alice, "lot-001", bob)
	err = tracker.RemoveAuthorizedActor(mallory, "lot-001", bob)
	assert.Equal(t, fault.ErrUnauthorized, err, "non-owner revoke must fail")

	ok, _ := tracker.IsAuthorized("lot-001", bob)
	assert.True(t, ok, "grant must survive the failed revoke")
}

func TestTransferProduct(t *testing.T) {
	setup(t)
	defer teardown(t)

	registerTestProduct(t, "lot-001")
	hash := record.NewDigest([]byte("data"))
	tracker.AddAuthorizedActor(alice, "lot-001", carol)

	err := tracker.TransferProduct(mallory, "lot-001", mallory)
	assert.Equal(t, fault.ErrUnauthorized, err, "non-owner transfer must fail")

	err = tracker.TransferProduct(alice, "lot-001", bob)
	assert.NoError(t, err, "transfer error")

	product, _ := tracker.GetProduct("lot-001")
	assert.Equal(t, bob, product.Owner, "ownership must move")

	// the privilege follows the record: old owner loses it, new
	// owner gains it, explicit grants survive
	ok, _ := tracker.IsAuthorized("lot-001", alice)
	assert.False(t, ok, "old owner must lose authorization")
	ok, _ = tracker.IsAuthorized("lot-001", bob)
	assert.True(t, ok, "new owner must gain authorization")
	ok, _ = tracker.IsAuthorized("lot-001", carol)
	assert.True(t, ok, "explicit grant must survive transfer")

	_, err = tracker.AddTrackingEvent(alice, "lot-001", "scanned", hash, "")
	assert.Equal(t, fault.ErrUnauthorized, err, "old owner append must fail")
	_, err = tracker.AddTrackingEvent(bob, "lot-001", "scanned", hash, "")
	assert.NoError(t, err, "new owner append error")
}

func TestSetProductActive(t *testing.T) {
	setup(t)
	defer teardown(t)

	registerTestProduct(t, "lot-001")
	hash := record.NewDigest([]byte("data"))

	err := tracker.SetProductActive(mallory, "lot-001", false)
	assert.Equal(t, fault.ErrUnauthorized, err, "non-owner deactivate must fail")

	err = tracker.SetProductActive(alice, "lot-001", false)
	assert.NoError(t, err, "deactivate error")

	product, _ := tracker.GetProduct("lot-001")
	assert.False(t, product.Active, "product must be inactive")

	// inactive products reject events but keep their history
	_, err = tracker.AddTrackingEvent(alice, "lot-001", "scanned", hash, "")
	assert.Equal(t, fault.ErrProductInactive, err, "inactive append must fail")

	stats, _ := tracker.GetStats()
	assert.Equal(t, uint64(0), stats.ActiveProducts, "active counter after deactivate")

	// a repeated deactivate must not drive the counter under zero
	err = tracker.SetProductActive(alice, "lot-001", false)
	assert.NoError(t, err, "repeated deactivate error")
	stats, _ = tracker.GetStats()
	assert.Equal(t, uint64(0), stats.ActiveProducts, "counter must not change on no-op")

	// reactivation restores event acceptance
	err = tracker.SetProductActive(alice, "lot-001", true)
	assert.NoError(t, err, "activate error")
	_, err = tracker.AddTrackingEvent(alice, "lot-001", "scanned", hash, "")
	assert.NoError(t, err, "append after reactivate error")

	stats, _ = tracker.GetStats()
	assert.Equal(t, uint64(1), stats.ActiveProducts, "active counter after reactivate")
}

func TestGetAllProducts(t *testing.T) {
	setup(t)
	defer teardown(t)

	lots := []string{"lot-001", "lot-002", "lot-003", "lot-004", "lot-005"}
	for _, productId := range lots {
		registerTestProduct(t, productId)
	}

	collected := []string{}
	for offset := uint64(0); ; offset += 2 {
		page, err := tracker.GetAllProducts(offset, 2)
		assert.NoError(t, err, "page error")
		if 0 == len(page) {
			break
		}
		for _, product := range page {
			collected = append(collected, product.Id)
		}
	}
	assert.Equal(t, lots, collected, "pages must tile the registry in registration order")
}

func TestGetProductsByOwner(t *testing.T) {
	setup(t)
	defer teardown(t)

	// interleaved owners: the per-owner runs are sparse in the
	// global order
	registerTestProduct(t, "lot-001") // alice
	p2, err := tracker.RegisterProduct(bob, "lot-002", "Beans", "", "Huila", "coffee", nil, nil, nil, nil)
	assert.NoError(t, err, "register error")
	registerTestProduct(t, "lot-003") // alice

	products, err := tracker.GetProductsByOwner(alice, 0, 10)
	assert.NoError(t, err, "by owner error")
	assert.Equal(t, 2, len(products), "alice product count")
	assert.Equal(t, "lot-001", products[0].Id, "insertion order")
	assert.Equal(t, "lot-003", products[1].Id, "insertion order")

	products, err = tracker.GetProductsByOwner(bob, 0, 10)
	assert.NoError(t, err, "by owner error")
	assert.Equal(t, 1, len(products), "bob product count")
	assert.Equal(t, p2.Id, products[0].Id, "bob product")

	products, err = tracker.GetProductsByOwner(carol, 0, 10)
	assert.NoError(t, err, "by owner error")
	assert.Empty(t, products, "carol has no products")
}

func TestGetProductsByOrigin(t *testing.T) {
	setup(t)
	defer teardown(t)

	registerTestProduct(t, "lot-001") // Yirgacheffe
	_, err := tracker.RegisterProduct(alice, "lot-002", "Beans", "", "Huila", "coffee", nil, nil, nil, nil)
	assert.NoError(t, err, "register error")
	registerTestProduct(t, "lot-003") // Yirgacheffe

	products, err := tracker.GetProductsByOrigin("Yirgacheffe", 0, 10)
	assert.NoError(t, err, "by origin error")
	assert.Equal(t, 2, len(products), "origin product count")
	assert.Equal(t, "lot-001", products[0].Id, "insertion order")
	assert.Equal(t, "lot-003", products[1].Id, "insertion order")

	products, err = tracker.GetProductsByOrigin("Atlantis", 0, 10)
	assert.NoError(t, err, "by origin error")
	assert.Empty(t, products, "unknown origin")
}

func TestEventsByType(t *testing.T) {
	setup(t)
	defer teardown(t)

	registerTestProduct(t, "lot-001")
	registerTestProduct(t, "lot-002")
	hash := record.NewDigest([]byte("data"))

	tracker.AddTrackingEvent(alice, "lot-001", "scanned", hash, "") // 1
	tracker.AddTrackingEvent(alice, "lot-001", "shipped", hash, "") // 2
	tracker.AddTrackingEvent(alice, "lot-002", "scanned", hash, "") // 3
	tracker.AddTrackingEvent(alice, "lot-001", "scanned", hash, "") // 4

	ids, err := tracker.GetEventIdsByType("lot-001", "scanned", 0, 10)
	assert.NoError(t, err, "by type error")
	assert.Equal(t, []uint64{1, 4}, ids, "typed history for lot-001")

	ids, err = tracker.GetEventIdsByType("lot-002", "scanned", 0, 10)
	assert.NoError(t, err, "by type error")
	assert.Equal(t, []uint64{3}, ids, "typed history for lot-002")

	count, err := tracker.EventCountByType("lot-001", "scanned")
	assert.NoError(t, err, "count error")
	assert.Equal(t, uint64(2), count, "scanned count")

	count, err = tracker.EventCountByType("lot-001", "inspected")
	assert.NoError(t, err, "count error")
	assert.Equal(t, uint64(0), count, "unused type count")
}

func TestStats(t *testing.T) {
	setup(t)
	defer teardown(t)

	stats, err := tracker.GetStats()
	assert.NoError(t, err, "stats error")
	assert.Equal(t, tracker.Stats{}, stats, "fresh registry stats")

	registerTestProduct(t, "lot-001")
	registerTestProduct(t, "lot-002")
	hash := record.NewDigest([]byte("data"))
	tracker.AddTrackingEvent(alice, "lot-001", "scanned", hash, "")
	tracker.SetProductActive(alice, "lot-002", false)

	stats, err = tracker.GetStats()
	assert.NoError(t, err, "stats error")
	assert.Equal(t, uint64(2), stats.TotalProducts, "total products")
	assert.Equal(t, uint64(1), stats.ActiveProducts, "active products")
	assert.Equal(t, uint64(1), stats.TotalEvents, "total events")
}

func TestGetMissingEvent(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := tracker.GetEvent(42)
	assert.Equal(t, fault.ErrEventNotFound, err, "missing event must not resolve")
}
