// Package memory is an in-memory stand-in for the token rail, used in
// development and tests. It models a mintable 6-decimal stablecoin with
// per-payer allowances, the way the rail's mock token behaves.
package memory

import (
	"context"
	"fmt"
	"sync"

	"splitsum/internal/core"
)

// Rail holds balances and allowances keyed by normalized address.
type Rail struct {
	mu         sync.Mutex
	balances   map[string]core.Amount
	allowances map[string]core.Amount
	custody    core.Amount
}

func New() *Rail {
	return &Rail{
		balances:   make(map[string]core.Amount),
		allowances: make(map[string]core.Amount),
	}
}

// Mint credits freshly-created tokens to addr. Test helper, not part of
// the ledger's contract.
func (r *Rail) Mint(addr string, amount core.Amount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[core.NormalizeAddress(addr)] += amount
}

// Approve authorizes the ledger to pull up to amount from addr.
func (r *Rail) Approve(addr string, amount core.Amount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allowances[core.NormalizeAddress(addr)] = amount
}

// TransferFrom moves amount from payer into custody, enforcing balance
// and allowance the way the real rail does.
func (r *Rail) TransferFrom(ctx context.Context, payer string, amount core.Amount) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	addr := core.NormalizeAddress(payer)
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive")
	}
	if r.allowances[addr] < amount {
		return fmt.Errorf("allowance exceeded for %s", addr)
	}
	if r.balances[addr] < amount {
		return fmt.Errorf("insufficient balance for %s", addr)
	}

	r.allowances[addr] -= amount
	r.balances[addr] -= amount
	r.custody += amount
	return nil
}

// BalanceOf reports addr's token balance.
func (r *Rail) BalanceOf(addr string) core.Amount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[core.NormalizeAddress(addr)]
}

// Custody reports the total held by the ledger.
func (r *Rail) Custody() core.Amount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.custody
}
