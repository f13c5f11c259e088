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

// Package backend defines the transactional store holding the live (running)
// configuration of the switch, and its implementations.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/iptecharch/ofc-server/pkg/config"
	"github.com/iptecharch/ofc-server/pkg/utils"
)

var ErrTxnClosed = errors.New("transaction already committed or aborted")

// Store is the backing store of the running datastore.
type Store interface {
	// GetConfig returns the serialization of the live configuration.
	// It is empty if the device has no identity configured yet.
	GetConfig(ctx context.Context) (string, error)
	// Begin opens a transaction against the store.
	Begin(ctx context.Context) (Txn, error)
	Close() error
}

// Txn is an all-or-nothing unit of mutation of the store.
type Txn interface {
	// Stage records a mutation, nothing is visible before Commit.
	Stage(ctx context.Context, c *Change) error
	Commit(ctx context.Context) error
	Abort(ctx context.Context) error
}

// PortConfigurer is implemented by stores that apply the configuration of
// newly created ports in a separate step, once the port exists.
type PortConfigurer interface {
	SetPortConfig(ctx context.Context, port, leaf, value string) error
}

// Change is a staged mutation of the running configuration.
type Change struct {
	// Edit is the compacted edit fragment that produced Result.
	Edit *etree.Document
	// DefaultOperation applies to the nodes of Edit without operation attribute.
	DefaultOperation utils.XMLOperation
	// Result is the complete configuration once the change is applied.
	// A document without root represents an empty configuration.
	Result *etree.Document
}

func New(ctx context.Context, cfg *config.BackendConfig) (Store, error) {
	switch cfg.Type {
	case config.BackendTypeMemory, "":
		return NewMemoryStore(), nil
	case config.BackendTypeNetconf:
		return newNCStore(ctx, cfg.Netconf)
	case config.BackendTypeRedis:
		return newRedisStore(ctx, cfg.Redis)
	}
	return nil, fmt.Errorf("unknown backend type %q", cfg.Type)
}
