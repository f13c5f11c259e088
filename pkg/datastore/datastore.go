// Copyright 2024 Nokia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package datastore implements the running, startup and candidate datastores
// of the OF-Config server: locking, get-config, edit-config, copy-config,
// delete-config and the single level rollback.
package datastore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlekSi/pointer"
	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/ofc-server/pkg/backend"
	"github.com/iptecharch/ofc-server/pkg/config"
	"github.com/iptecharch/ofc-server/pkg/datastore/types"
)

// Type identifies a datastore.
type Type int

const (
	Unknown Type = iota
	Running
	Startup
	Candidate
	// InlineConfig is the configuration carried by the request itself.
	// It is only valid as a copy-config source.
	InlineConfig
)

func (t Type) String() string {
	switch t {
	case Running:
		return "running"
	case Startup:
		return "startup"
	case Candidate:
		return "candidate"
	case InlineConfig:
		return "config"
	}
	return "unknown"
}

// ParseType parses a datastore name.
func ParseType(s string) (Type, error) {
	switch s {
	case "running":
		return Running, nil
	case "startup":
		return Startup, nil
	case "candidate":
		return Candidate, nil
	case "config":
		return InlineConfig, nil
	}
	return Unknown, fmt.Errorf("unknown datastore %q", s)
}

// Datastore orchestrates the three datastores. All operations are serialized.
type Datastore struct {
	m *sync.Mutex

	config *config.DatastoreConfig

	// backing store of the running datastore
	store backend.Store
	// transaction gate towards store
	tm *types.TransactionManager

	locks    *lockTable
	snapshot *snapshotStore
	docs     *documentCache
}

func New(cfg *config.DatastoreConfig, store backend.Store) *Datastore {
	return &Datastore{
		m:        &sync.Mutex{},
		config:   cfg,
		store:    store,
		tm:       types.NewTransactionManager(store),
		locks:    newLockTable(),
		snapshot: &snapshotStore{},
		docs:     &documentCache{},
	}
}

// Init loads the startup datastore. The candidate datastore starts empty.
func (d *Datastore) Init(ctx context.Context) error {
	d.m.Lock()
	defer d.m.Unlock()

	doc, err := loadStartup(d.config.StartupFile)
	if err != nil {
		return err
	}
	d.docs.set(Startup, doc)
	d.docs.set(Candidate, nil)

	if pointer.GetBool(d.config.CopyStartupToRunning) && doc != nil {
		log.Infof("applying startup configuration to running")
		if err := d.copyConfig(ctx, Running, Startup, "", false); err != nil {
			return fmt.Errorf("failed applying startup configuration: %w", err)
		}
		// nothing to roll back to right after start
		d.snapshot.clear()
	}
	log.Infof("OF-Config datastore initialized")
	return nil
}

// Teardown writes the startup datastore back to its file, closes the backing
// store and drops locks and rollback data.
func (d *Datastore) Teardown(_ context.Context) error {
	d.m.Lock()
	defer d.m.Unlock()

	var errs []error
	if err := storeStartup(d.config.StartupFile, d.docs.get(Startup)); err != nil {
		errs = append(errs, err)
	}
	if err := d.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed closing backend: %w", err))
	}
	d.locks.reset()
	d.snapshot.clear()
	d.docs.set(Startup, nil)
	d.docs.set(Candidate, nil)
	return errors.Join(errs...)
}

// WasChanged always reports false: the running datastore is read from the
// backing store on every access, so there is nothing to resynchronize.
func (d *Datastore) WasChanged() bool {
	return false
}
