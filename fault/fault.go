// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type AccessError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type StateError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ProcessError("already initialised")
	ErrCannotDecodeIdentity    = InvalidError("cannot decode identity")
	ErrCategoryTooLong         = LengthError("category too long")
	ErrCustomValueTooLong      = LengthError("custom value too long")
	ErrDescriptionTooLong      = LengthError("description too long")
	ErrEventNotFound           = NotFoundError("event not found")
	ErrInvalidCategory         = InvalidError("category is required")
	ErrInvalidCount            = InvalidError("count is invalid")
	ErrInvalidIdentityLength   = InvalidError("identity length is invalid")
	ErrInvalidName             = InvalidError("name is required")
	ErrInvalidOrigin           = InvalidError("origin location is required")
	ErrInvalidProductId        = InvalidError("product id is invalid")
	ErrInvalidStructPointer    = ProcessError("invalid struct pointer")
	ErrInvalidSymbol           = InvalidError("symbol is invalid")
	ErrInvalidTag              = InvalidError("tag is invalid")
	ErrNameTooLong             = LengthError("name too long")
	ErrNotAnEventRecord        = ProcessError("not an event record")
	ErrNotAProductRecord       = ProcessError("not a product record")
	ErrNotInitialised          = ProcessError("not initialised")
	ErrNoteTooLong             = LengthError("note too long")
	ErrOriginTooLong           = LengthError("origin location too long")
	ErrProductAlreadyExists    = ExistsError("product already exists")
	ErrProductIdTooLong        = LengthError("product id too long")
	ErrProductInactive         = StateError("product is inactive")
	ErrProductNotFound         = NotFoundError("product not found")
	ErrTagTooLong              = LengthError("tag too long")
	ErrTooManyCertifications   = LengthError("too many certifications")
	ErrTooManyCustomEntries    = LengthError("too many custom entries")
	ErrTooManyMediaHashes      = LengthError("too many media hashes")
	ErrTooManyTags             = LengthError("too many tags")
	ErrTransactionAlreadyInUse = ProcessError("transaction already in use")
	ErrUnauthorized            = AccessError("caller is not authorized")
	ErrWrongDigestLength       = InvalidError("digest length is invalid")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccessError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e StateError) Error() string    { return string(e) }

// determine the class of an error
func IsErrAccess(e error) bool   { _, ok := e.(AccessError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrState(e error) bool    { _, ok := e.(StateError); return ok }
