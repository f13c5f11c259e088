package types

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/ofc-server/pkg/backend"
)

var (
	ErrTransactionOngoing error = errors.New("transaction ongoing")
	ErrNoTransaction      error = errors.New("no ongoing transaction")
)

// TransactionManager is the gate towards the backing store: at most one
// transaction is open at any time.
type TransactionManager struct {
	tmMutex     *sync.Mutex
	transaction *Transaction
	store       backend.Store
}

func NewTransactionManager(store backend.Store) *TransactionManager {
	return &TransactionManager{
		tmMutex: &sync.Mutex{},
		store:   store,
	}
}

// Begin opens a transaction on the backing store. The returned guard aborts
// the transaction on Done unless Success was called.
func (t *TransactionManager) Begin(ctx context.Context) (*Transaction, *TransactionGuard, error) {
	t.tmMutex.Lock()
	defer t.tmMutex.Unlock()
	if t.transactionOngoing() {
		return nil, nil, ErrTransactionOngoing
	}

	txn, err := t.store.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed opening transaction: %w", err)
	}
	trans := NewTransaction(uuid.New().String(), t, txn)
	t.transaction = trans
	log.Debugf("Transaction: %s - started", trans.transactionId)

	return trans, NewTransactionGuard(func() {
		log.Infof("Transaction: %s - aborting due to error", trans.transactionId)
		err := trans.Abort(ctx)
		if err != nil && !errors.Is(err, ErrNoTransaction) {
			log.Error(err)
		}
	}), nil
}

// Ongoing reports whether a transaction is open.
func (t *TransactionManager) Ongoing() bool {
	t.tmMutex.Lock()
	defer t.tmMutex.Unlock()
	return t.transactionOngoing()
}

// transactionIsOngoing requires caller to acquire lock before calling
func (t *TransactionManager) transactionOngoing() bool {
	return t.transaction != nil
}

// getTransaction requires caller to acquire lock before calling
func (t *TransactionManager) getTransaction(id string) (*Transaction, error) {
	if t.transaction == nil {
		return nil, ErrNoTransaction
	}
	if t.transaction.transactionId != id {
		return nil, fmt.Errorf("transaction id %s is invalid", id)
	}
	return t.transaction, nil
}

// cleanupTransaction frees the slot held by the transaction with the given id.
func (t *TransactionManager) cleanupTransaction(id string) error {
	t.tmMutex.Lock()
	defer t.tmMutex.Unlock()
	// Perform checks by calling getTransaction
	_, err := t.getTransaction(id)
	if err != nil {
		return err
	}
	t.transaction = nil
	return nil
}
