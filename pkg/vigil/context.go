// context.go propagates the current transaction name through
// context.Context so Send can attach it to events that lack one.

package vigil

import "context"

// Context key type (unexported to avoid collisions)
type transactionKey struct{}

// WithTransaction returns a context carrying the transaction name, e.g.
// the HTTP route or job name currently executing.
func WithTransaction(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, transactionKey{}, name)
}

// TransactionFromContext extracts the transaction name from context.
// Returns empty string and false if not set or empty.
func TransactionFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(transactionKey{})
	name, ok := v.(string)
	return name, ok && name != ""
}
