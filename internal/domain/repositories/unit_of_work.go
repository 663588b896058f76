package repositories

import (
	"context"
)

// UnitOfWork groups repository writes into one atomic scope. Money movements
// span several aggregates (a balance debit, a capacity reservation, a ledger
// row); either all of them land or none do.
type UnitOfWork interface {
	// Do runs fn inside a transaction carried through the context, so every
	// repository call inside fn joins the same transaction. fn returning an
	// error rolls everything back; nested Do calls join the outer scope
	// rather than opening a new one.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
