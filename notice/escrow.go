package notice

import (
	"fmt"

	"github.com/noticepay/libnoticepay-go/token"
)

// fundEscrow opens a fresh escrow store for tokenRef, moves amount into it
// from the creator's store, and returns the escrow handle with its sole
// withdrawal authority. The creator withdrawal happens first so a short
// balance aborts before any escrow exists.
func (b *Board) fundEscrow(creator token.Address, tokenRef string, amount uint64) (token.StoreID, token.Authority, error) {
	creatorStore, err := b.ledger.EnsureStore(creator, tokenRef)
	if err != nil {
		return 0, token.Authority{}, fmt.Errorf("notice: creator store: %w", err)
	}
	creatorAuth, err := b.ledger.OwnerAuthority(creator, creatorStore)
	if err != nil {
		return 0, token.Authority{}, fmt.Errorf("notice: creator authority: %w", err)
	}

	funds, err := b.ledger.Withdraw(creatorAuth, creatorStore, amount)
	if err != nil {
		return 0, token.Authority{}, fmt.Errorf("notice: fund escrow: %w", err)
	}

	escrowStore, escrowAuth, err := b.ledger.OpenEscrow(tokenRef)
	if err != nil {
		return 0, token.Authority{}, fmt.Errorf("notice: open escrow: %w", err)
	}
	if err := b.ledger.Deposit(escrowStore, funds); err != nil {
		return 0, token.Authority{}, fmt.Errorf("notice: fund escrow: %w", err)
	}
	return escrowStore, escrowAuth, nil
}

// rebalanceEscrow settles the funding difference after an edit: the editor
// tops up the escrow when the new plan promises more, and is refunded from
// the escrow when it promises less. Equal totals move nothing.
func (b *Board) rebalanceEscrow(editor token.Address, n *Notice, oldTotal, newTotal uint64) error {
	switch {
	case newTotal > oldTotal:
		diff := newTotal - oldTotal
		editorStore, err := b.ledger.EnsureStore(editor, n.TokenRef)
		if err != nil {
			return fmt.Errorf("notice: editor store: %w", err)
		}
		editorAuth, err := b.ledger.OwnerAuthority(editor, editorStore)
		if err != nil {
			return fmt.Errorf("notice: editor authority: %w", err)
		}
		funds, err := b.ledger.Withdraw(editorAuth, editorStore, diff)
		if err != nil {
			return fmt.Errorf("notice: escrow top-up: %w", err)
		}
		if err := b.ledger.Deposit(n.escrowStore, funds); err != nil {
			return fmt.Errorf("notice: escrow top-up: %w", err)
		}

	case newTotal < oldTotal:
		diff := oldTotal - newTotal
		editorStore, err := b.ledger.EnsureStore(editor, n.TokenRef)
		if err != nil {
			return fmt.Errorf("notice: editor store: %w", err)
		}
		funds, err := b.ledger.Withdraw(n.escrowAuth, n.escrowStore, diff)
		if err != nil {
			return fmt.Errorf("notice: escrow refund: %w", err)
		}
		if err := b.ledger.Deposit(editorStore, funds); err != nil {
			return fmt.Errorf("notice: escrow refund: %w", err)
		}
	}
	return nil
}

// drainEscrow moves the escrow's full remaining balance to the creator's
// store and returns the amount moved. A drained escrow is a no-op, so the
// call is idempotent.
func (b *Board) drainEscrow(n *Notice) (uint64, error) {
	balance, err := b.ledger.Balance(n.escrowStore)
	if err != nil {
		return 0, fmt.Errorf("notice: escrow balance: %w", err)
	}
	if balance == 0 {
		return 0, nil
	}

	creatorStore, err := b.ledger.EnsureStore(n.Creator, n.TokenRef)
	if err != nil {
		return 0, fmt.Errorf("notice: creator store: %w", err)
	}
	funds, err := b.ledger.Withdraw(n.escrowAuth, n.escrowStore, balance)
	if err != nil {
		return 0, fmt.Errorf("notice: drain escrow: %w", err)
	}
	if err := b.ledger.Deposit(creatorStore, funds); err != nil {
		return 0, fmt.Errorf("notice: drain escrow: %w", err)
	}
	return balance, nil
}
