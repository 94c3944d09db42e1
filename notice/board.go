// Package notice implements the reward-escrow engine for notices:
// creator-funded posts whose viewers, likers, and commenters earn a share of
// a pre-funded token pool under per-action FIFO or interval rules.
package notice

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/noticepay/libnoticepay-go/rule"
	"github.com/noticepay/libnoticepay-go/token"
)

// Board is the engine root: it owns the admin configuration, the notice
// registry, and the per-user action ledgers, and moves funds through the
// token ledger collaborator. Every public operation runs under one lock, so
// operations are atomic and serialized; ledger transfers happen before state
// mutation, which means a failed operation leaves no partial state.
type Board struct {
	mu     sync.Mutex
	ledger token.Ledger
	logger *slog.Logger
	system token.Address

	initialized bool
	admin       token.Address
	registry    Registry
	actions     map[token.Address]*ActionLedger
}

// ActionLedger records, per user, the notices for which each action type has
// already paid a reward. It is created lazily on the user's first action.
// The sets gate repeat payouts only; repeat actions themselves still append
// to the notice's lists.
type ActionLedger struct {
	RewardedViews    map[uint64]bool `json:"rewarded_views"`
	RewardedLikes    map[uint64]bool `json:"rewarded_likes"`
	RewardedComments map[uint64]bool `json:"rewarded_comments"`
}

func newActionLedger() *ActionLedger {
	return &ActionLedger{
		RewardedViews:    make(map[uint64]bool),
		RewardedLikes:    make(map[uint64]bool),
		RewardedComments: make(map[uint64]bool),
	}
}

// NoticeParams carries the caller-supplied notice configuration for create
// and edit. Rule fields are wire codes (0 = FIFO, 1 = interval); unknown
// codes abort the operation before any funds move.
type NoticeParams struct {
	Title    string
	Contents string

	ViewRuleCode    uint8
	LikeRuleCode    uint8
	CommentRuleCode uint8

	IntervalN uint64

	ViewReward    uint64
	LikeReward    uint64
	CommentReward uint64

	ViewMaxWinners    uint64
	LikeMaxWinners    uint64
	CommentMaxWinners uint64
}

// Info is a read-only snapshot of a notice, with defensive copies of the
// action lists and the live escrow balance.
type Info struct {
	ID             uint64
	Creator        token.Address
	Title          string
	Contents       string
	TokenRef       string
	Plan           RewardPlan
	Viewers        []token.Address
	Likers         []token.Address
	CommentAuthors []token.Address
	CommentTexts   []string
	EscrowBalance  uint64
}

// NewBoard creates a board backed by the given token ledger. system is the
// only address allowed to bootstrap the board and becomes its first admin.
// A nil logger falls back to slog.Default().
func NewBoard(ledger token.Ledger, system token.Address, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		ledger:  ledger,
		logger:  logger,
		system:  system,
		actions: make(map[token.Address]*ActionLedger),
	}
}

// Bootstrap initializes the admin configuration and the notice registry.
// Only the system address may call it, and only once.
func (b *Board) Bootstrap(caller token.Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return ErrAlreadyInitialized
	}
	if caller != b.system {
		return fmt.Errorf("%w: bootstrap requires the system address", ErrPermissionDenied)
	}

	b.admin = b.system
	b.initialized = true
	b.logger.Info("board bootstrapped", "admin", b.admin.String())
	return nil
}

// SetAdmin replaces the admin address. Only the current admin may call it.
func (b *Board) SetAdmin(caller, newAdmin token.Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireInit(); err != nil {
		return err
	}
	if caller != b.admin {
		return fmt.Errorf("%w: only the admin can set a new admin", ErrPermissionDenied)
	}

	b.admin = newAdmin
	b.logger.Info("admin changed", "admin", newAdmin.String())
	return nil
}

// Admin returns the current admin address.
func (b *Board) Admin() token.Address {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.admin
}

// NextNoticeID returns the id the next successful CreateNotice will assign.
// Callers pass it back as expectedID.
func (b *Board) NextNoticeID() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registry.NextID()
}

// NoticeCount returns the number of notices ever created.
func (b *Board) NoticeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registry.Len()
}

// CreateNotice registers a new notice and escrows its full promised reward
// pool from the caller's store. expectedID must equal the board's next id;
// a mismatch aborts before any funds move.
func (b *Board) CreateNotice(caller token.Address, expectedID uint64, tokenRef string, params *NoticeParams) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireInit(); err != nil {
		return 0, err
	}
	if expectedID != b.registry.NextID() {
		return 0, fmt.Errorf("%w: expected id %d, next id is %d",
			ErrInvalidRequest, expectedID, b.registry.NextID())
	}

	plan, err := decodePlan(params)
	if err != nil {
		return 0, err
	}
	required, err := plan.RequiredFunding()
	if err != nil {
		return 0, err
	}

	escrowStore, escrowAuth, err := b.fundEscrow(caller, tokenRef, required)
	if err != nil {
		return 0, err
	}

	n := &Notice{
		Creator:     caller,
		Title:       params.Title,
		Contents:    params.Contents,
		TokenRef:    tokenRef,
		Plan:        plan,
		escrowStore: escrowStore,
		escrowAuth:  escrowAuth,
	}
	id, err := b.registry.Create(expectedID, n)
	if err != nil {
		return 0, err
	}

	b.logger.Info("notice created",
		"id", id, "creator", caller.String(), "escrowed", required)
	return id, nil
}

// EditNotice replaces a notice's title, contents, and reward plan, and
// settles the escrow difference with the editor: a larger promise tops the
// escrow up from the editor's store, a smaller one refunds the editor.
// Permitted for the notice's creator and for the admin.
func (b *Board) EditNotice(caller token.Address, id uint64, params *NoticeParams) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireInit(); err != nil {
		return err
	}
	n, err := b.registry.Get(id)
	if err != nil {
		return err
	}
	if caller != n.Creator && caller != b.admin {
		return fmt.Errorf("%w: only the creator or the admin can edit notice %d", ErrPermissionDenied, id)
	}

	plan, err := decodePlan(params)
	if err != nil {
		return err
	}
	oldTotal, err := n.Plan.RequiredFunding()
	if err != nil {
		return err
	}
	newTotal, err := plan.RequiredFunding()
	if err != nil {
		return err
	}

	if err := b.rebalanceEscrow(caller, n, oldTotal, newTotal); err != nil {
		return err
	}

	n.Title = params.Title
	n.Contents = params.Contents
	n.Plan = plan

	b.logger.Info("notice edited",
		"id", id, "editor", caller.String(), "old_total", oldTotal, "new_total", newTotal)
	return nil
}

// ForceFinalize drains the notice's remaining escrow back to its creator.
// Only the creator may call it; the admin may not. The notice itself stays
// in the registry and remains queryable. Finalizing an already drained
// notice is a no-op.
func (b *Board) ForceFinalize(caller token.Address, id uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireInit(); err != nil {
		return err
	}
	n, err := b.registry.Get(id)
	if err != nil {
		return err
	}
	if caller != n.Creator {
		return fmt.Errorf("%w: only the creator can finalize notice %d", ErrPermissionDenied, id)
	}

	refunded, err := b.drainEscrow(n)
	if err != nil {
		return err
	}

	b.logger.Info("notice finalized", "id", id, "refunded", refunded)
	return nil
}

// NoticeInfo returns a snapshot of the notice, including its current escrow
// balance.
func (b *Board) NoticeInfo(id uint64) (*Info, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, err := b.registry.Get(id)
	if err != nil {
		return nil, err
	}
	balance, err := b.ledger.Balance(n.escrowStore)
	if err != nil {
		return nil, fmt.Errorf("notice: escrow balance: %w", err)
	}

	info := &Info{
		ID:             n.ID,
		Creator:        n.Creator,
		Title:          n.Title,
		Contents:       n.Contents,
		TokenRef:       n.TokenRef,
		Plan:           n.Plan,
		Viewers:        copyAddrs(n.Views),
		Likers:         copyAddrs(n.Likes),
		CommentAuthors: make([]token.Address, len(n.Comments)),
		CommentTexts:   make([]string, len(n.Comments)),
		EscrowBalance:  balance,
	}
	for i, c := range n.Comments {
		info.CommentAuthors[i] = c.Author
		info.CommentTexts[i] = c.Text
	}
	return info, nil
}

// Viewers returns a copy of the notice's view list, repeats included.
func (b *Board) Viewers(id uint64) ([]token.Address, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, err := b.registry.Get(id)
	if err != nil {
		return nil, err
	}
	return copyAddrs(n.Views), nil
}

// Likers returns a copy of the notice's like list, repeats included.
func (b *Board) Likers(id uint64) ([]token.Address, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, err := b.registry.Get(id)
	if err != nil {
		return nil, err
	}
	return copyAddrs(n.Likes), nil
}

// Comments returns a copy of the notice's comment list in posting order.
// Comments past the reward cap are retained like any other.
func (b *Board) Comments(id uint64) ([]Comment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, err := b.registry.Get(id)
	if err != nil {
		return nil, err
	}
	out := make([]Comment, len(n.Comments))
	copy(out, n.Comments)
	return out, nil
}

func (b *Board) requireInit() error {
	if !b.initialized {
		return ErrNotInitialized
	}
	return nil
}

// ledgerFor returns the user's action ledger, creating it on first touch.
func (b *Board) ledgerFor(user token.Address) *ActionLedger {
	ldg, ok := b.actions[user]
	if !ok {
		ldg = newActionLedger()
		b.actions[user] = ldg
	}
	return ldg
}

// decodePlan validates the wire rule codes and builds the internal plan.
func decodePlan(params *NoticeParams) (RewardPlan, error) {
	viewRule, err := rule.Decode(params.ViewRuleCode)
	if err != nil {
		return RewardPlan{}, err
	}
	likeRule, err := rule.Decode(params.LikeRuleCode)
	if err != nil {
		return RewardPlan{}, err
	}
	commentRule, err := rule.Decode(params.CommentRuleCode)
	if err != nil {
		return RewardPlan{}, err
	}

	return RewardPlan{
		ViewReward:        params.ViewReward,
		LikeReward:        params.LikeReward,
		CommentReward:     params.CommentReward,
		ViewRule:          viewRule,
		LikeRule:          likeRule,
		CommentRule:       commentRule,
		ViewMaxWinners:    params.ViewMaxWinners,
		LikeMaxWinners:    params.LikeMaxWinners,
		CommentMaxWinners: params.CommentMaxWinners,
		IntervalN:         params.IntervalN,
	}, nil
}

func copyAddrs(src []token.Address) []token.Address {
	out := make([]token.Address, len(src))
	copy(out, src)
	return out
}
