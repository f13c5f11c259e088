package types

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/ofc-server/pkg/backend"
)

type Transaction struct {
	transactionId      string              // ID that identifies the Transaction
	start              time.Time           // time the transaction was opened
	transactionManager *TransactionManager // referernce to the TransactionManager this transaction is registered with
	txn                backend.Txn         // the backing store transaction
	staged             int                 // number of staged changes
	done               bool                // committed or aborted
}

func NewTransaction(id string, tm *TransactionManager, txn backend.Txn) *Transaction {
	return &Transaction{
		transactionId:      id,
		start:              time.Now(),
		transactionManager: tm,
		txn:                txn,
	}
}

func (t *Transaction) GetTransactionId() string {
	return t.transactionId
}

// Stage records a change in the backing store transaction.
func (t *Transaction) Stage(ctx context.Context, c *backend.Change) error {
	if t.done {
		return ErrNoTransaction
	}
	err := t.txn.Stage(ctx, c)
	if err != nil {
		return err
	}
	t.staged++
	return nil
}

// Commit commits the backing store transaction. The transaction is closed
// afterwards whatever the outcome.
func (t *Transaction) Commit(ctx context.Context) error {
	if t.done {
		return ErrNoTransaction
	}
	defer t.close()
	err := t.txn.Commit(ctx)
	if err != nil {
		return err
	}
	log.Debugf("Transaction: %s - committed %d change(s) in %s", t.transactionId, t.staged, time.Since(t.start))
	return nil
}

// Abort discards all staged changes and closes the transaction.
func (t *Transaction) Abort(ctx context.Context) error {
	if t.done {
		return ErrNoTransaction
	}
	defer t.close()
	return t.txn.Abort(ctx)
}

func (t *Transaction) close() {
	t.done = true
	if err := t.transactionManager.cleanupTransaction(t.transactionId); err != nil {
		log.Error(err)
	}
}
