package token

import "errors"

var (
	// ErrInsufficientBalance indicates a withdrawal exceeds the store's funds.
	ErrInsufficientBalance = errors.New("token: insufficient balance")

	// ErrUnknownStore indicates the store handle does not exist.
	ErrUnknownStore = errors.New("token: unknown store")

	// ErrBadAuthority indicates the authority does not cover the store.
	ErrBadAuthority = errors.New("token: authority does not match store")

	// ErrTokenMismatch indicates a deposit of tokens into a store of a
	// different token.
	ErrTokenMismatch = errors.New("token: token reference mismatch")

	// ErrWrongOwner indicates the store is not owned by the given address.
	ErrWrongOwner = errors.New("token: store not owned by address")

	// ErrInvalidAddress indicates a malformed address encoding.
	ErrInvalidAddress = errors.New("token: invalid address")
)
