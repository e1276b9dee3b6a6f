// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/provenanced/fault"
	"github.com/bitmark-inc/provenanced/grant"
	"github.com/bitmark-inc/provenanced/identity"
	"github.com/bitmark-inc/provenanced/index"
	"github.com/bitmark-inc/provenanced/record"
	"github.com/bitmark-inc/provenanced/registry"
	"github.com/bitmark-inc/provenanced/storage"
)

// Stats - registry wide counters
type Stats struct {
	TotalProducts  uint64 `json:"totalProducts"`
	ActiveProducts uint64 `json:"activeProducts"`
	TotalEvents    uint64 `json:"totalEvents"`
}

// timestamps come from the host clock; overridable for testing
var now = func() uint64 {
	return uint64(time.Now().Unix())
}

// run one public operation as a single all-or-nothing unit of work
func withTransaction(operation func(storage.Transaction) error) error {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = operation(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

// fetch a product or fail; shared by every operation taking an id
func readProduct(trx storage.Transaction, productId string) (*record.Product, error) {
	product := registry.GetProduct(trx, productId)
	if nil == product {
		return nil, fault.ErrProductNotFound
	}
	return product, nil
}

// owner-only operations guard
func requireOwner(product *record.Product, caller identity.Identity) error {
	if product.Owner != caller {
		return fault.ErrUnauthorized
	}
	return nil
}

// RegisterProduct - create a product and seed all its indexes
//
// the id is caller-chosen and must be new; validation happens before
// the duplicate check so a malformed request never opens a write
func RegisterProduct(
	owner identity.Identity,
	productId string,
	name string,
	description string,
	originLocation string,
	category string,
	tags []string,
	certifications []record.Digest,
	mediaHashes []record.Digest,
	custom map[record.Symbol]string,
) (*record.Product, error) {

	product := &record.Product{
		Id:             productId,
		Name:           name,
		Description:    description,
		OriginLocation: originLocation,
		Category:       category,
		Owner:          owner,
		CreatedAt:      now(),
		Active:         true,
		Tags:           tags,
		Certifications: certifications,
		MediaHashes:    mediaHashes,
		Custom:         custom,
	}

	// all field ceilings, before any storage access
	if _, err := product.Pack(); nil != err {
		return nil, err
	}

	err := withTransaction(func(trx storage.Transaction) error {
		if registry.HasProduct(trx, productId) {
			return fault.ErrProductAlreadyExists
		}

		if err := registry.PutProduct(trx, product); nil != err {
			return err
		}
		registry.PutProductEventIds(trx, productId, []uint64{})

		// global, owner and origin indexes; exactly once per product
		position := registry.IncrementTotalProducts(trx)
		index.AppendGlobal(trx, position, productId)
		index.Append(trx, storage.Pool.OwnerCount, storage.Pool.OwnerIndex, owner.Bytes(), []byte(productId))
		index.Append(trx, storage.Pool.OriginCount, storage.Pool.OriginIndex, []byte(originLocation), []byte(productId))

		registry.IncrementActiveProducts(trx)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return product, nil
}

// HasProduct - check whether a product id is registered
func HasProduct(productId string) (bool, error) {
	exists := false
	err := withTransaction(func(trx storage.Transaction) error {
		exists = registry.HasProduct(trx, productId)
		return nil
	})
	return exists, err
}

// GetProduct - fetch one product by id
func GetProduct(productId string) (*record.Product, error) {
	var product *record.Product
	err := withTransaction(func(trx storage.Transaction) error {
		p, err := readProduct(trx, productId)
		if nil != err {
			return err
		}
		product = p
		return nil
	})
	return product, err
}

// GetProductEventIds - the full event history of one product, oldest
// first
func GetProductEventIds(productId string) ([]uint64, error) {
	var ids []uint64
	err := withTransaction(func(trx storage.Transaction) error {
		if _, err := readProduct(trx, productId); nil != err {
			return err
		}
		ids = registry.GetProductEventIds(trx, productId)
		return nil
	})
	return ids, err
}

// GetProductEventIdsPaginated - a page of the event history
func GetProductEventIdsPaginated(productId string, offset uint64, limit uint64) ([]uint64, error) {
	var page []uint64
	err := withTransaction(func(trx storage.Transaction) error {
		if _, err := readProduct(trx, productId); nil != err {
			return err
		}
		ids := registry.GetProductEventIds(trx, productId)
		positions := index.Positions(offset, limit, uint64(len(ids)))
		page = make([]uint64, 0, len(positions))
		for _, i := range positions {
			page = append(page, ids[i-1])
		}
		return nil
	})
	return page, err
}

// AddAuthorizedActor - owner grants event-append rights to an actor
func AddAuthorizedActor(owner identity.Identity, productId string, actor identity.Identity) error {
	return withTransaction(func(trx storage.Transaction) error {
		product, err := readProduct(trx, productId)
		if nil != err {
			return err
		}
		if err := requireOwner(product, owner); nil != err {
			return err
		}
		grant.Set(trx, productId, actor)
		return nil
	})
}

// RemoveAuthorizedActor - owner revokes an explicit grant
func RemoveAuthorizedActor(owner identity.Identity, productId string, actor identity.Identity) error {
	return withTransaction(func(trx storage.Transaction) error {
		product, err := readProduct(trx, productId)
		if nil != err {
			return err
		}
		if err := requireOwner(product, owner); nil != err {
			return err
		}
		grant.Revoke(trx, productId, actor)
		return nil
	})
}

// TransferProduct - move ownership to a new party
//
// the owner privilege is derived from the product record, so the
// transfer moves it implicitly; explicit grants are untouched. Both
// identities must have been authenticated by the caller.
func TransferProduct(owner identity.Identity, productId string, newOwner identity.Identity) error {
	return withTransaction(func(trx storage.Transaction) error {
		product, err := readProduct(trx, productId)
		if nil != err {
			return err
		}
		if err := requireOwner(product, owner); nil != err {
			return err
		}
		product.Owner = newOwner
		return registry.PutProduct(trx, product)
	})
}

// SetProductActive - toggle the active state
//
// inactive products keep their history but accept no new events;
// the toggle is free in both directions
func SetProductActive(owner identity.Identity, productId string, active bool) error {
	return withTransaction(func(trx storage.Transaction) error {
		product, err := readProduct(trx, productId)
		if nil != err {
			return err
		}
		if err := requireOwner(product, owner); nil != err {
			return err
		}

		if product.Active == active {
			return nil // no state change, no counter change
		}

		product.Active = active
		if err := registry.PutProduct(trx, product); nil != err {
			return err
		}

		if active {
			registry.IncrementActiveProducts(trx)
		} else {
			registry.DecrementActiveProducts(trx)
		}
		return nil
	})
}

// AddTrackingEvent - append one immutable event to a product history
//
// the product must be active and the actor must be the owner or hold
// an explicit grant; the event id is allocated here and reflects
// global creation order
func AddTrackingEvent(actor identity.Identity, productId string, eventType record.Symbol, dataHash record.Digest, note string) (uint64, error) {
	var eventId uint64

	err := withTransaction(func(trx storage.Transaction) error {
		product, err := readProduct(trx, productId)
		if nil != err {
			return err
		}
		if !product.Active {
			return fault.ErrProductInactive
		}
		if !grant.IsAuthorized(trx, product, actor) {
			return fault.ErrUnauthorized
		}

		eventId = registry.NextEventId(trx)
		event := &record.TrackingEvent{
			EventId:   eventId,
			ProductId: productId,
			Actor:     actor,
			Timestamp: now(),
			EventType: eventType,
			DataHash:  dataHash,
			Note:      note,
		}
		if err := registry.PutEvent(trx, event); nil != err {
			return err
		}

		registry.AppendProductEventId(trx, productId, eventId)

		idBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(idBytes, eventId)
		dimension := index.EventTypeDimension(productId, string(eventType))
		index.Append(trx, storage.Pool.EventTypeCount, storage.Pool.EventTypeIndex, dimension, idBytes)
		return nil
	})
	if nil != err {
		return 0, err
	}
	return eventId, nil
}

// GetEvent - fetch one tracking event by id
func GetEvent(eventId uint64) (*record.TrackingEvent, error) {
	var event *record.TrackingEvent
	err := withTransaction(func(trx storage.Transaction) error {
		event = registry.GetEvent(trx, eventId)
		if nil == event {
			return fault.ErrEventNotFound
		}
		return nil
	})
	return event, err
}

// IsAuthorized - owner rule plus explicit grants
func IsAuthorized(productId string, actor identity.Identity) (bool, error) {
	authorized := false
	err := withTransaction(func(trx storage.Transaction) error {
		product, err := readProduct(trx, productId)
		if nil != err {
			return err
		}
		authorized = grant.IsAuthorized(trx, product, actor)
		return nil
	})
	return authorized, err
}

// GetAllProducts - a page of every registered product in
// registration order
func GetAllProducts(offset uint64, limit uint64) ([]*record.Product, error) {
	var products []*record.Product
	err := withTransaction(func(trx storage.Transaction) error {
		total := registry.TotalProducts(trx)
		products = resolveProducts(trx, index.FetchGlobal(trx, total, offset, limit))
		return nil
	})
	return products, err
}

// GetProductsByOwner - a page of the products registered by an owner
//
// the owner dimension records the owner at registration time; a
// later transfer does not move index entries
func GetProductsByOwner(owner identity.Identity, offset uint64, limit uint64) ([]*record.Product, error) {
	var products []*record.Product
	err := withTransaction(func(trx storage.Transaction) error {
		items := index.Fetch(trx, storage.Pool.OwnerCount, storage.Pool.OwnerIndex, owner.Bytes(), offset, limit)
		products = resolveProductItems(trx, items)
		return nil
	})
	return products, err
}

// GetProductsByOrigin - a page of the products from one origin
func GetProductsByOrigin(originLocation string, offset uint64, limit uint64) ([]*record.Product, error) {
	var products []*record.Product
	err := withTransaction(func(trx storage.Transaction) error {
		items := index.Fetch(trx, storage.Pool.OriginCount, storage.Pool.OriginIndex, []byte(originLocation), offset, limit)
		products = resolveProductItems(trx, items)
		return nil
	})
	return products, err
}

// GetEventIdsByType - a page of one product's events of one type
func GetEventIdsByType(productId string, eventType record.Symbol, offset uint64, limit uint64) ([]uint64, error) {
	var eventIds []uint64
	err := withTransaction(func(trx storage.Transaction) error {
		if _, err := readProduct(trx, productId); nil != err {
			return err
		}
		dimension := index.EventTypeDimension(productId, string(eventType))
		items := index.Fetch(trx, storage.Pool.EventTypeCount, storage.Pool.EventTypeIndex, dimension, offset, limit)

		eventIds = make([]uint64, len(items))
		for i, item := range items {
			eventIds[i] = binary.BigEndian.Uint64(item)
		}
		return nil
	})
	return eventIds, err
}

// EventCountByType - total events of one type for one product
func EventCountByType(productId string, eventType record.Symbol) (uint64, error) {
	var count uint64
	err := withTransaction(func(trx storage.Transaction) error {
		if _, err := readProduct(trx, productId); nil != err {
			return err
		}
		dimension := index.EventTypeDimension(productId, string(eventType))
		count = index.Count(trx, storage.Pool.EventTypeCount, dimension)
		return nil
	})
	return count, err
}

// GetStats - registry wide counters
func GetStats() (Stats, error) {
	var stats Stats
	err := withTransaction(func(trx storage.Transaction) error {
		stats = Stats{
			TotalProducts:  registry.TotalProducts(trx),
			ActiveProducts: registry.ActiveProducts(trx),
			TotalEvents:    registry.EventSequence(trx),
		}
		return nil
	})
	return stats, err
}

// resolve product ids from the global index
func resolveProducts(trx storage.Transaction, productIds []string) []*record.Product {
	products := make([]*record.Product, len(productIds))
	for i, productId := range productIds {
		products[i] = mustProduct(trx, productId)
	}
	return products
}

// resolve product ids from a dimension index
func resolveProductItems(trx storage.Transaction, items [][]byte) []*record.Product {
	products := make([]*record.Product, len(items))
	for i, item := range items {
		products[i] = mustProduct(trx, string(item))
	}
	return products
}

// an indexed product must exist: indexes are append only and only
// written after the record itself
func mustProduct(trx storage.Transaction, productId string) *record.Product {
	product := registry.GetProduct(trx, productId)
	if nil == product {
		panic("tracker: index references missing product: " + productId)
	}
	return product
}
