// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/provenanced/fault"
)

// symbol size limits
const (
	minSymbolLength = 1
	maxSymbolLength = 32
)

// Symbol - a short tag value
//
// used for event types and custom metadata keys; restricted to
// ASCII letters, digits and underscore, must not start with a digit
type Symbol string

// Validate - check the symbol rules
func (symbol Symbol) Validate() error {
	if len(symbol) < minSymbolLength || len(symbol) > maxSymbolLength {
		return fault.ErrInvalidSymbol
	}
	for i := 0; i < len(symbol); i += 1 {
		c := symbol[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case '_' == c:
		case c >= '0' && c <= '9':
			if 0 == i {
				return fault.ErrInvalidSymbol
			}
		default:
			return fault.ErrInvalidSymbol
		}
	}
	return nil
}

// String - the symbol text
func (symbol Symbol) String() string {
	return string(symbol)
}
