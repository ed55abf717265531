// Package token defines the ledger's view of the external value-transfer
// rail. The ledger only needs one capability: pull the settlement amount
// from the payer into custody before balances move. Custody mechanics
// live on the rail side.
package token

import (
	"context"

	"splitsum/internal/core"
)

// Transferrer pulls amount from the payer's account into the ledger's
// custody. A non-nil error means the transfer did not happen and no
// ledger state may change.
type Transferrer interface {
	TransferFrom(ctx context.Context, payer string, amount core.Amount) error
}
