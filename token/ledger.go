// Package token defines the engine's boundary to token custody: addresses,
// balance stores, the withdrawal Authority capability, and the Ledger
// collaborator interface, together with an in-memory Ledger for tests and
// single-node hosts.
package token

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// StoreID is an opaque handle to a single-token balance store.
type StoreID uint64

// Tokens represents funds withdrawn from a store and not yet deposited.
// A Tokens value is produced only by Ledger.Withdraw and consumed by
// Ledger.Deposit; it carries its token reference so a ledger can reject
// deposits into a store of a different token.
type Tokens struct {
	amount   uint64
	tokenRef string
}

// Amount returns the number of token units in flight.
func (t Tokens) Amount() uint64 { return t.amount }

// TokenRef returns the token reference the funds belong to.
func (t Tokens) TokenRef() string { return t.tokenRef }

// Authority is a capability authorizing withdrawals from exactly one store.
// Values are minted by a Ledger when the store is created (escrows) or when
// the owner is established (owner stores); they cannot be constructed from
// a bare StoreID.
type Authority struct {
	store  StoreID
	secret uint64
}

// Store returns the store the authority covers.
func (a Authority) Store() StoreID { return a.store }

const authorityWireSize = 16 // store(8) + secret(8)

// MarshalText encodes the authority for state snapshots.
func (a Authority) MarshalText() ([]byte, error) {
	buf := make([]byte, authorityWireSize)
	binary.BigEndian.PutUint64(buf[0:8], uint64(a.store))
	binary.BigEndian.PutUint64(buf[8:16], a.secret)
	return []byte(hex.EncodeToString(buf)), nil
}

// UnmarshalText decodes an authority from a state snapshot.
func (a *Authority) UnmarshalText(text []byte) error {
	buf, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("token: invalid authority encoding: %w", err)
	}
	if len(buf) != authorityWireSize {
		return fmt.Errorf("token: invalid authority encoding: expected %d bytes, got %d",
			authorityWireSize, len(buf))
	}
	a.store = StoreID(binary.BigEndian.Uint64(buf[0:8]))
	a.secret = binary.BigEndian.Uint64(buf[8:16])
	return nil
}

// GobEncode implements gob encoding for state snapshots.
func (a Authority) GobEncode() ([]byte, error) { return a.MarshalText() }

// GobDecode implements gob decoding for state snapshots.
func (a *Authority) GobDecode(data []byte) error { return a.UnmarshalText(data) }

// Ledger is the external token custody collaborator. The engine moves funds
// exclusively through this interface; balances, stores, and transfer
// atomicity are the ledger's responsibility. A Withdraw either fully debits
// the store or fails with no partial debit.
type Ledger interface {
	// EnsureStore returns the store holding owner's balance of tokenRef,
	// creating an empty one on first use.
	EnsureStore(owner Address, tokenRef string) (StoreID, error)

	// OpenEscrow creates a fresh ownerless store for tokenRef and returns
	// the only Authority that can ever withdraw from it.
	OpenEscrow(tokenRef string) (StoreID, Authority, error)

	// OwnerAuthority mints an authority for a store owned by owner. The
	// host must have authenticated owner before calling.
	OwnerAuthority(owner Address, store StoreID) (Authority, error)

	// Balance returns the store's current balance.
	Balance(store StoreID) (uint64, error)

	// Withdraw debits amount from the store covered by auth. Fails with
	// ErrInsufficientBalance if the store holds less than amount.
	Withdraw(auth Authority, store StoreID, amount uint64) (Tokens, error)

	// Deposit credits previously withdrawn tokens to the store.
	Deposit(store StoreID, t Tokens) error
}
