package notice

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/noticepay/libnoticepay-go/token"
)

// BoardState is a serializable snapshot of a board: admin configuration,
// every notice with its escrow custody, and the per-user action ledgers.
// The token ledger collaborator persists its own state separately.
type BoardState struct {
	Initialized bool                            `json:"initialized"`
	Admin       token.Address                   `json:"admin"`
	NextID      uint64                          `json:"next_id"`
	Notices     []*NoticeState                  `json:"notices"`
	Actions     map[token.Address]*ActionLedger `json:"actions"`
}

// NoticeState is the serializable form of a Notice.
type NoticeState struct {
	ID       uint64          `json:"id"`
	Creator  token.Address   `json:"creator"`
	Title    string          `json:"title"`
	Contents string          `json:"contents"`
	TokenRef string          `json:"token_ref"`
	Plan     RewardPlan      `json:"plan"`
	Views    []token.Address `json:"views"`
	Likes    []token.Address `json:"likes"`
	Comments []Comment       `json:"comments"`

	EscrowStore token.StoreID   `json:"escrow_store"`
	EscrowAuth  token.Authority `json:"escrow_auth"`
}

// State returns a deep-copy snapshot of the board.
func (b *Board) State() *BoardState {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := &BoardState{
		Initialized: b.initialized,
		Admin:       b.admin,
		NextID:      b.registry.NextID(),
		Notices:     make([]*NoticeState, 0, b.registry.Len()),
		Actions:     make(map[token.Address]*ActionLedger, len(b.actions)),
	}

	for _, n := range b.registry.notices {
		ns := &NoticeState{
			ID:          n.ID,
			Creator:     n.Creator,
			Title:       n.Title,
			Contents:    n.Contents,
			TokenRef:    n.TokenRef,
			Plan:        n.Plan,
			Views:       copyAddrs(n.Views),
			Likes:       copyAddrs(n.Likes),
			Comments:    make([]Comment, len(n.Comments)),
			EscrowStore: n.escrowStore,
			EscrowAuth:  n.escrowAuth,
		}
		copy(ns.Comments, n.Comments)
		state.Notices = append(state.Notices, ns)
	}

	for user, ldg := range b.actions {
		state.Actions[user] = &ActionLedger{
			RewardedViews:    copySet(ldg.RewardedViews),
			RewardedLikes:    copySet(ldg.RewardedLikes),
			RewardedComments: copySet(ldg.RewardedComments),
		}
	}
	return state
}

// Restore replaces the board's state with a snapshot. The token ledger the
// board was constructed with must be the one the snapshot's store handles
// refer to.
func (b *Board) Restore(state *BoardState) error {
	if err := validateState(state); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.initialized = state.Initialized
	b.admin = state.Admin
	b.registry = Registry{nextID: state.NextID}
	b.actions = make(map[token.Address]*ActionLedger, len(state.Actions))

	for _, ns := range state.Notices {
		n := &Notice{
			ID:          ns.ID,
			Creator:     ns.Creator,
			Title:       ns.Title,
			Contents:    ns.Contents,
			TokenRef:    ns.TokenRef,
			Plan:        ns.Plan,
			Views:       copyAddrs(ns.Views),
			Likes:       copyAddrs(ns.Likes),
			Comments:    make([]Comment, len(ns.Comments)),
			escrowStore: ns.EscrowStore,
			escrowAuth:  ns.EscrowAuth,
		}
		copy(n.Comments, ns.Comments)
		b.registry.notices = append(b.registry.notices, n)
	}

	for user, ldg := range state.Actions {
		restored := newActionLedger()
		for id := range ldg.RewardedViews {
			restored.RewardedViews[id] = true
		}
		for id := range ldg.RewardedLikes {
			restored.RewardedLikes[id] = true
		}
		for id := range ldg.RewardedComments {
			restored.RewardedComments[id] = true
		}
		b.actions[user] = restored
	}
	return nil
}

// SaveState persists the board snapshot as JSON at path.
func (b *Board) SaveState(path string) error {
	data, err := json.MarshalIndent(b.State(), "", "  ")
	if err != nil {
		return fmt.Errorf("notice: marshal state: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// LoadState restores the board from a JSON snapshot at path.
func (b *Board) LoadState(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("notice: read state: %w", err)
	}
	var state BoardState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return b.Restore(&state)
}

// validateState checks snapshot consistency: ids are the arena indexes and
// the next id continues the sequence.
func validateState(state *BoardState) error {
	if state == nil {
		return fmt.Errorf("%w: nil snapshot", ErrInvalidState)
	}
	if state.NextID != uint64(len(state.Notices)) {
		return fmt.Errorf("%w: next id %d does not match %d notices",
			ErrInvalidState, state.NextID, len(state.Notices))
	}
	for i, ns := range state.Notices {
		if ns == nil {
			return fmt.Errorf("%w: nil notice at index %d", ErrInvalidState, i)
		}
		if ns.ID != uint64(i) {
			return fmt.Errorf("%w: notice id %d at index %d", ErrInvalidState, ns.ID, i)
		}
	}
	for user, ldg := range state.Actions {
		if ldg == nil {
			return fmt.Errorf("%w: nil action ledger for user %s", ErrInvalidState, user)
		}
	}
	return nil
}

func copySet(src map[uint64]bool) map[uint64]bool {
	out := make(map[uint64]bool, len(src))
	for id := range src {
		out[id] = true
	}
	return out
}
