// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package grant - per-product actor authorizations
//
// a grant is a boolean keyed by (product id, actor): present means
// granted, absent means not granted. Revoking removes the entry
// rather than storing false, to keep the table compact and make
// "revoked" and "never granted" indistinguishable.
//
// the product owner is authorized implicitly and never holds an
// entry for the owner role; transferring a product therefore moves
// the owner privilege without touching any explicit grant
package grant

import (
	"github.com/bitmark-inc/provenanced/identity"
	"github.com/bitmark-inc/provenanced/record"
	"github.com/bitmark-inc/provenanced/storage"
)

// the single stored value; presence is what matters
var grantedValue = []byte{0x01}

// Set - record an explicit grant
func Set(trx storage.Transaction, productId string, actor identity.Identity) {
	trx.Put(storage.Pool.Grants, grantKey(productId, actor), grantedValue)
}

// Revoke - remove an explicit grant
//
// revoking an absent grant is a no-op
func Revoke(trx storage.Transaction, productId string, actor identity.Identity) {
	trx.Delete(storage.Pool.Grants, grantKey(productId, actor))
}

// Has - check for an explicit grant only, ignoring ownership
func Has(trx storage.Transaction, productId string, actor identity.Identity) bool {
	return trx.Has(storage.Pool.Grants, grantKey(productId, actor))
}

// IsAuthorized - owner rule plus explicit grants
func IsAuthorized(trx storage.Transaction, product *record.Product, actor identity.Identity) bool {
	if product.Owner == actor {
		return true
	}
	return Has(trx, product.Id, actor)
}

// key: product id ++ actor
//
// the actor is a fixed 32 byte suffix, so ids of different lengths
// cannot produce the same key
func grantKey(productId string, actor identity.Identity) []byte {
	key := make([]byte, 0, len(productId)+identity.Size)
	key = append(key, productId...)
	return append(key, actor.Bytes()...)
}
