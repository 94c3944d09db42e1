package notice

import (
	"fmt"

	"github.com/noticepay/libnoticepay-go/rule"
	"github.com/noticepay/libnoticepay-go/token"
)

type actionKind int

const (
	actionView actionKind = iota
	actionLike
	actionComment
)

func (k actionKind) String() string {
	switch k {
	case actionView:
		return "view"
	case actionLike:
		return "like"
	case actionComment:
		return "comment"
	default:
		return "unknown"
	}
}

// ViewNotice records a view by caller and pays the view reward if the view's
// position qualifies under the notice's view rule. Anyone may call it.
func (b *Board) ViewNotice(caller token.Address, id uint64) error {
	return b.act(caller, id, actionView, "")
}

// LikeNotice records a like by caller and pays the like reward if the like's
// position qualifies under the notice's like rule. Anyone may call it.
func (b *Board) LikeNotice(caller token.Address, id uint64) error {
	return b.act(caller, id, actionLike, "")
}

// CommentNotice records a comment by caller and pays the comment reward if
// the comment's position qualifies under the notice's comment rule. The
// comment is retained regardless of reward eligibility. Anyone may call it.
func (b *Board) CommentNotice(caller token.Address, id uint64, text string) error {
	return b.act(caller, id, actionComment, text)
}

// act is the single dispatch path for all three action types:
//
//  1. A user already rewarded for this (notice, action) pair is never
//     re-evaluated; the action still appends to the list.
//  2. Otherwise eligibility is computed from the 1-indexed position the
//     action will occupy once appended.
//  3. An eligible action pays the fixed per-action reward from the escrow
//     into the user's store and marks the pair rewarded.
//
// The reward transfer runs before the append so a ledger failure leaves no
// partial state. Repeat actions keep consuming list positions without
// re-qualifying their author, which is deliberate: eligibility counts
// positions, not distinct users.
func (b *Board) act(user token.Address, id uint64, kind actionKind, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireInit(); err != nil {
		return err
	}
	n, err := b.registry.Get(id)
	if err != nil {
		return err
	}

	ldg := b.ledgerFor(user)
	rewarded := ldg.rewardedSet(kind)
	if rewarded[id] {
		b.appendAction(n, kind, user, text)
		b.logger.Debug("repeat action by rewarded user",
			"id", id, "user", user.String(), "action", kind.String())
		return nil
	}

	reward, actionRule, maxWinners := planFor(&n.Plan, kind)
	runningCount := b.actionCount(n, kind) + 1
	eligible := rule.Eligible(actionRule, runningCount, maxWinners, n.Plan.IntervalN)

	if eligible {
		if err := b.payReward(user, n, reward); err != nil {
			return err
		}
	}

	b.appendAction(n, kind, user, text)
	if eligible {
		rewarded[id] = true
		b.logger.Debug("reward paid",
			"id", id, "user", user.String(), "action", kind.String(),
			"position", runningCount, "amount", reward)
	}
	return nil
}

// payReward moves the fixed reward amount from the notice's escrow into the
// user's store, creating the store on first use.
func (b *Board) payReward(user token.Address, n *Notice, amount uint64) error {
	userStore, err := b.ledger.EnsureStore(user, n.TokenRef)
	if err != nil {
		return fmt.Errorf("notice: reward store: %w", err)
	}
	funds, err := b.ledger.Withdraw(n.escrowAuth, n.escrowStore, amount)
	if err != nil {
		return fmt.Errorf("notice: reward withdrawal: %w", err)
	}
	if err := b.ledger.Deposit(userStore, funds); err != nil {
		return fmt.Errorf("notice: reward deposit: %w", err)
	}
	return nil
}

func (b *Board) appendAction(n *Notice, kind actionKind, user token.Address, text string) {
	switch kind {
	case actionView:
		n.Views = append(n.Views, user)
	case actionLike:
		n.Likes = append(n.Likes, user)
	case actionComment:
		n.Comments = append(n.Comments, Comment{Author: user, Text: text})
	}
}

func (b *Board) actionCount(n *Notice, kind actionKind) uint64 {
	switch kind {
	case actionView:
		return uint64(len(n.Views))
	case actionLike:
		return uint64(len(n.Likes))
	default:
		return uint64(len(n.Comments))
	}
}

// rewardedSet returns the ledger's rewarded-id set for the action type.
func (l *ActionLedger) rewardedSet(kind actionKind) map[uint64]bool {
	switch kind {
	case actionView:
		return l.RewardedViews
	case actionLike:
		return l.RewardedLikes
	default:
		return l.RewardedComments
	}
}

// planFor extracts the (reward, rule, maxWinners) triple for the action type.
func planFor(p *RewardPlan, kind actionKind) (uint64, rule.Rule, uint64) {
	switch kind {
	case actionView:
		return p.ViewReward, p.ViewRule, p.ViewMaxWinners
	case actionLike:
		return p.LikeReward, p.LikeRule, p.LikeMaxWinners
	default:
		return p.CommentReward, p.CommentRule, p.CommentMaxWinners
	}
}
