package notice

import (
	"fmt"
	"math"

	"github.com/noticepay/libnoticepay-go/rule"
	"github.com/noticepay/libnoticepay-go/token"
)

// Comment is a single comment on a notice.
type Comment struct {
	Author token.Address `json:"author"`
	Text   string        `json:"text"`
}

// RewardPlan holds a notice's per-action reward configuration. IntervalN is
// shared by every action type whose rule is Interval.
type RewardPlan struct {
	ViewReward    uint64 `json:"view_reward"`
	LikeReward    uint64 `json:"like_reward"`
	CommentReward uint64 `json:"comment_reward"`

	ViewRule    rule.Rule `json:"view_rule"`
	LikeRule    rule.Rule `json:"like_rule"`
	CommentRule rule.Rule `json:"comment_rule"`

	ViewMaxWinners    uint64 `json:"view_max_winners"`
	LikeMaxWinners    uint64 `json:"like_max_winners"`
	CommentMaxWinners uint64 `json:"comment_max_winners"`

	IntervalN uint64 `json:"interval_n"`
}

// RequiredFunding returns the escrow amount the plan promises:
// per-view reward times view winners, plus the like and comment equivalents.
func (p RewardPlan) RequiredFunding() (uint64, error) {
	views, err := mulCheck(p.ViewReward, p.ViewMaxWinners)
	if err != nil {
		return 0, err
	}
	likes, err := mulCheck(p.LikeReward, p.LikeMaxWinners)
	if err != nil {
		return 0, err
	}
	comments, err := mulCheck(p.CommentReward, p.CommentMaxWinners)
	if err != nil {
		return 0, err
	}

	total, err := addCheck(views, likes)
	if err != nil {
		return 0, err
	}
	return addCheck(total, comments)
}

// Notice is a creator-funded post whose viewers, likers, and commenters may
// earn a share of its escrowed reward pool. Action lists are append-only and
// may contain the same address more than once; entries are never dropped,
// even past the reward cap.
type Notice struct {
	ID       uint64
	Creator  token.Address
	Title    string
	Contents string
	TokenRef string
	Plan     RewardPlan

	Views    []token.Address
	Likes    []token.Address
	Comments []Comment

	// Escrow custody: the store and the only authority able to draw on it.
	escrowStore token.StoreID
	escrowAuth  token.Authority
}

// EscrowStore returns the notice's escrow store handle. The withdrawal
// authority stays private to the notice.
func (n *Notice) EscrowStore() token.StoreID { return n.escrowStore }

func mulCheck(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, fmt.Errorf("%w: funding amount overflow", ErrInvalidRequest)
	}
	return a * b, nil
}

func addCheck(a, b uint64) (uint64, error) {
	if b > math.MaxUint64-a {
		return 0, fmt.Errorf("%w: funding amount overflow", ErrInvalidRequest)
	}
	return a + b, nil
}
