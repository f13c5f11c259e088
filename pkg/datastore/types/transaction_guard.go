package types

// TransactionGuard aborts a transaction on Done unless it was marked successful.
type TransactionGuard struct {
	cleanup func()
}

// NewTransactionGuard initializes the guard. Callers defer Done right away.
func NewTransactionGuard(cleanup func()) *TransactionGuard {
	return &TransactionGuard{cleanup: cleanup}
}

// Success prevents the cleanup function from being called.
func (tg *TransactionGuard) Success() {
	tg.cleanup = nil
}

// Done runs the cleanup, at most once.
func (tg *TransactionGuard) Done() {
	if tg.cleanup != nil {
		f := tg.cleanup
		tg.cleanup = nil
		f()
	}
}
