// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/provenanced/fault"
)

func TestErrorClasses(t *testing.T) {
	if !fault.IsErrExists(fault.ErrProductAlreadyExists) {
		t.Error("ErrProductAlreadyExists is not an exists error")
	}
	if !fault.IsErrNotFound(fault.ErrProductNotFound) {
		t.Error("ErrProductNotFound is not a not-found error")
	}
	if !fault.IsErrNotFound(fault.ErrEventNotFound) {
		t.Error("ErrEventNotFound is not a not-found error")
	}
	if !fault.IsErrAccess(fault.ErrUnauthorized) {
		t.Error("ErrUnauthorized is not an access error")
	}
	if !fault.IsErrState(fault.ErrProductInactive) {
		t.Error("ErrProductInactive is not a state error")
	}
	if !fault.IsErrLength(fault.ErrNameTooLong) {
		t.Error("ErrNameTooLong is not a length error")
	}
	if !fault.IsErrInvalid(fault.ErrInvalidProductId) {
		t.Error("ErrInvalidProductId is not an invalid error")
	}

	// classes must not overlap
	if fault.IsErrInvalid(fault.ErrNameTooLong) {
		t.Error("ErrNameTooLong must not be an invalid error")
	}
	if fault.IsErrAccess(fault.ErrProductInactive) {
		t.Error("ErrProductInactive must not be an access error")
	}
}

func TestErrorComparison(t *testing.T) {
	err := func() error { return fault.ErrProductNotFound }()
	if fault.ErrProductNotFound != err {
		t.Error("error instance comparison failed")
	}
}
