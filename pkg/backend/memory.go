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

package backend

import (
	"context"
	"sync"

	"github.com/beevik/etree"
	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/ofc-server/pkg/utils"
)

// MemoryStore keeps the running configuration in memory.
type MemoryStore struct {
	m       *sync.RWMutex
	running *etree.Document
	// port name -> leaf -> value
	ports map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m:     &sync.RWMutex{},
		ports: map[string]map[string]string{},
	}
}

// NewMemoryStoreFrom creates a MemoryStore holding the given configuration.
func NewMemoryStoreFrom(running string) (*MemoryStore, error) {
	doc, err := utils.ParseDocument(running)
	if err != nil {
		return nil, err
	}
	s := NewMemoryStore()
	if utils.HasContent(doc) {
		s.running = doc
	}
	return s, nil
}

func (s *MemoryStore) GetConfig(_ context.Context) (string, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	return utils.SerializeDocument(s.running)
}

func (s *MemoryStore) Begin(_ context.Context) (Txn, error) {
	return &memoryTxn{store: s}, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) SetPortConfig(_ context.Context, port, leaf, value string) error {
	s.m.Lock()
	defer s.m.Unlock()
	if _, ok := s.ports[port]; !ok {
		s.ports[port] = map[string]string{}
	}
	s.ports[port][leaf] = value
	log.Debugf("memory store: port %s %s=%s", port, leaf, value)
	return nil
}

// PortConfig returns a copy of the configuration applied to port.
func (s *MemoryStore) PortConfig(port string) map[string]string {
	s.m.RLock()
	defer s.m.RUnlock()
	result := map[string]string{}
	for k, v := range s.ports[port] {
		result[k] = v
	}
	return result
}

type memoryTxn struct {
	store  *MemoryStore
	staged *etree.Document
	closed bool
}

func (t *memoryTxn) Stage(_ context.Context, c *Change) error {
	if t.closed {
		return ErrTxnClosed
	}
	if c.Result == nil {
		t.staged = etree.NewDocument()
		return nil
	}
	t.staged = utils.CopyDocument(c.Result)
	return nil
}

func (t *memoryTxn) Commit(_ context.Context) error {
	if t.closed {
		return ErrTxnClosed
	}
	t.closed = true
	if t.staged == nil {
		return nil
	}
	t.store.m.Lock()
	defer t.store.m.Unlock()
	if utils.HasContent(t.staged) {
		t.store.running = t.staged
	} else {
		t.store.running = nil
	}
	return nil
}

func (t *memoryTxn) Abort(_ context.Context) error {
	if t.closed {
		return ErrTxnClosed
	}
	t.closed = true
	t.staged = nil
	return nil
}
