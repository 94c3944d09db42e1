package token

import (
	"encoding/json"
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAddr(seed byte) Address {
	var addr Address
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

func TestAddressFromPublicKey(t *testing.T) {
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)

	addr := AddressFromPublicKey(priv.PubKey())
	assert.False(t, addr.IsZero())

	// Derivation is deterministic.
	assert.Equal(t, addr, AddressFromPublicKey(priv.PubKey()))
}

func TestAddressHexRoundTrip(t *testing.T) {
	addr := makeAddr(0xAB)
	parsed, err := AddressFromHex(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)
}

func TestAddressFromHex_Invalid(t *testing.T) {
	_, err := AddressFromHex("zzzz")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = AddressFromHex("abcd")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestMemoryLedger_EnsureStoreIdempotent(t *testing.T) {
	l := NewMemoryLedger()
	owner := makeAddr(0x01)

	s1, err := l.EnsureStore(owner, "NPAY")
	require.NoError(t, err)
	s2, err := l.EnsureStore(owner, "NPAY")
	require.NoError(t, err)
	assert.Equal(t, s1, s2)

	// Different token gets a different store.
	s3, err := l.EnsureStore(owner, "OTHER")
	require.NoError(t, err)
	assert.NotEqual(t, s1, s3)
}

func TestMemoryLedger_WithdrawDeposit(t *testing.T) {
	l := NewMemoryLedger()
	owner := makeAddr(0x01)

	store, err := l.EnsureStore(owner, "NPAY")
	require.NoError(t, err)
	require.NoError(t, l.Mint(store, 100))

	auth, err := l.OwnerAuthority(owner, store)
	require.NoError(t, err)

	funds, err := l.Withdraw(auth, store, 40)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), funds.Amount())
	assert.Equal(t, "NPAY", funds.TokenRef())

	bal, err := l.Balance(store)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), bal)

	esc, escAuth, err := l.OpenEscrow("NPAY")
	require.NoError(t, err)
	require.NoError(t, l.Deposit(esc, funds))

	bal, err = l.Balance(esc)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), bal)

	// Escrow authority withdraws from the escrow only.
	_, err = l.Withdraw(escAuth, store, 1)
	assert.ErrorIs(t, err, ErrBadAuthority)
}

func TestMemoryLedger_InsufficientBalance(t *testing.T) {
	l := NewMemoryLedger()
	owner := makeAddr(0x02)

	store, err := l.EnsureStore(owner, "NPAY")
	require.NoError(t, err)
	require.NoError(t, l.Mint(store, 10))

	auth, err := l.OwnerAuthority(owner, store)
	require.NoError(t, err)

	_, err = l.Withdraw(auth, store, 11)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// The failed withdrawal left no partial debit.
	bal, err := l.Balance(store)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), bal)
}

func TestMemoryLedger_OwnerAuthority_WrongOwner(t *testing.T) {
	l := NewMemoryLedger()

	store, err := l.EnsureStore(makeAddr(0x01), "NPAY")
	require.NoError(t, err)

	_, err = l.OwnerAuthority(makeAddr(0x02), store)
	assert.ErrorIs(t, err, ErrWrongOwner)

	// Escrow stores have no owner authority at all.
	esc, _, err := l.OpenEscrow("NPAY")
	require.NoError(t, err)
	_, err = l.OwnerAuthority(makeAddr(0x01), esc)
	assert.ErrorIs(t, err, ErrWrongOwner)
}

func TestMemoryLedger_DepositTokenMismatch(t *testing.T) {
	l := NewMemoryLedger()
	owner := makeAddr(0x03)

	store, err := l.EnsureStore(owner, "NPAY")
	require.NoError(t, err)
	require.NoError(t, l.Mint(store, 5))

	auth, err := l.OwnerAuthority(owner, store)
	require.NoError(t, err)
	funds, err := l.Withdraw(auth, store, 5)
	require.NoError(t, err)

	other, err := l.EnsureStore(owner, "OTHER")
	require.NoError(t, err)
	assert.ErrorIs(t, l.Deposit(other, funds), ErrTokenMismatch)
}

func TestAuthorityTextRoundTrip(t *testing.T) {
	l := NewMemoryLedger()
	_, auth, err := l.OpenEscrow("NPAY")
	require.NoError(t, err)

	data, err := json.Marshal(auth)
	require.NoError(t, err)

	var decoded Authority
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, auth, decoded)
}
