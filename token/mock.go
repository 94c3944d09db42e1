package token

// MockLedger is a test double for Ledger.
// All function fields must be set before the corresponding method is called.
type MockLedger struct {
	EnsureStoreFn    func(owner Address, tokenRef string) (StoreID, error)
	OpenEscrowFn     func(tokenRef string) (StoreID, Authority, error)
	OwnerAuthorityFn func(owner Address, store StoreID) (Authority, error)
	BalanceFn        func(store StoreID) (uint64, error)
	WithdrawFn       func(auth Authority, store StoreID, amount uint64) (Tokens, error)
	DepositFn        func(store StoreID, t Tokens) error
}

func (m *MockLedger) EnsureStore(owner Address, tokenRef string) (StoreID, error) {
	return m.EnsureStoreFn(owner, tokenRef)
}
func (m *MockLedger) OpenEscrow(tokenRef string) (StoreID, Authority, error) {
	return m.OpenEscrowFn(tokenRef)
}
func (m *MockLedger) OwnerAuthority(owner Address, store StoreID) (Authority, error) {
	return m.OwnerAuthorityFn(owner, store)
}
func (m *MockLedger) Balance(store StoreID) (uint64, error) {
	return m.BalanceFn(store)
}
func (m *MockLedger) Withdraw(auth Authority, store StoreID, amount uint64) (Tokens, error) {
	return m.WithdrawFn(auth, store, amount)
}
func (m *MockLedger) Deposit(store StoreID, t Tokens) error {
	return m.DepositFn(store, t)
}
