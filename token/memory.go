package token

import (
	"fmt"
	"sync"
)

// storeRecord is the in-memory state of a single balance store.
type storeRecord struct {
	Owner    Address
	Escrow   bool
	TokenRef string
	Balance  uint64
	Secret   uint64
}

type ownerKey struct {
	owner    Address
	tokenRef string
}

// MemoryLedger is an in-process Ledger used by tests and single-node hosts.
// All methods are safe for concurrent use.
type MemoryLedger struct {
	mu         sync.Mutex
	stores     map[StoreID]*storeRecord
	byOwner    map[ownerKey]StoreID
	nextID     StoreID
	nextSecret uint64
}

// Compile-time interface check.
var _ Ledger = (*MemoryLedger)(nil)

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		stores:  make(map[StoreID]*storeRecord),
		byOwner: make(map[ownerKey]StoreID),
		nextID:  1,
	}
}

// EnsureStore returns the store for owner/tokenRef, creating it on first use.
func (l *MemoryLedger) EnsureStore(owner Address, tokenRef string) (StoreID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := ownerKey{owner: owner, tokenRef: tokenRef}
	if id, ok := l.byOwner[key]; ok {
		return id, nil
	}

	id := l.newStoreLocked(&storeRecord{Owner: owner, TokenRef: tokenRef})
	l.byOwner[key] = id
	return id, nil
}

// OpenEscrow creates a fresh ownerless store and mints its sole authority.
func (l *MemoryLedger) OpenEscrow(tokenRef string) (StoreID, Authority, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.newStoreLocked(&storeRecord{Escrow: true, TokenRef: tokenRef})
	return id, Authority{store: id, secret: l.stores[id].Secret}, nil
}

// OwnerAuthority mints an authority for a store owned by owner.
func (l *MemoryLedger) OwnerAuthority(owner Address, store StoreID) (Authority, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.stores[store]
	if !ok {
		return Authority{}, fmt.Errorf("%w: %d", ErrUnknownStore, store)
	}
	if rec.Escrow || rec.Owner != owner {
		return Authority{}, fmt.Errorf("%w: store %d", ErrWrongOwner, store)
	}
	return Authority{store: store, secret: rec.Secret}, nil
}

// Balance returns the store's current balance.
func (l *MemoryLedger) Balance(store StoreID) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.stores[store]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStore, store)
	}
	return rec.Balance, nil
}

// Withdraw atomically debits amount from the store covered by auth.
func (l *MemoryLedger) Withdraw(auth Authority, store StoreID, amount uint64) (Tokens, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.stores[store]
	if !ok {
		return Tokens{}, fmt.Errorf("%w: %d", ErrUnknownStore, store)
	}
	if auth.store != store || auth.secret != rec.Secret {
		return Tokens{}, fmt.Errorf("%w: store %d", ErrBadAuthority, store)
	}
	if rec.Balance < amount {
		return Tokens{}, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, rec.Balance, amount)
	}

	rec.Balance -= amount
	return Tokens{amount: amount, tokenRef: rec.TokenRef}, nil
}

// Deposit credits previously withdrawn tokens to the store.
func (l *MemoryLedger) Deposit(store StoreID, t Tokens) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.stores[store]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownStore, store)
	}
	if rec.TokenRef != t.tokenRef {
		return fmt.Errorf("%w: store holds %q, tokens are %q", ErrTokenMismatch, rec.TokenRef, t.tokenRef)
	}

	rec.Balance += t.amount
	return nil
}

// Mint credits amount to the store out of thin air. Hosts use it to seed
// balances; there is no corresponding burn.
func (l *MemoryLedger) Mint(store StoreID, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.stores[store]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownStore, store)
	}
	rec.Balance += amount
	return nil
}

func (l *MemoryLedger) newStoreLocked(rec *storeRecord) StoreID {
	id := l.nextID
	l.nextID++
	l.nextSecret++
	rec.Secret = l.nextSecret
	l.stores[id] = rec
	return id
}
