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

package datastore

import (
	"github.com/beevik/etree"

	"github.com/iptecharch/ofc-server/pkg/utils"
)

// snapshot is the state of a datastore before the last modifying operation.
// A nil doc stands for an empty datastore.
type snapshot struct {
	doc *etree.Document
	ds  Type
}

// snapshotStore holds at most one snapshot.
type snapshotStore struct {
	current *snapshot
}

// capture replaces any previous snapshot. doc is owned by the store afterwards.
func (s *snapshotStore) capture(doc *etree.Document, ds Type) {
	if !utils.HasContent(doc) {
		doc = nil
	}
	s.current = &snapshot{doc: doc, ds: ds}
}

// peek returns the snapshot without clearing it.
func (s *snapshotStore) peek() (*snapshot, bool) {
	return s.current, s.current != nil
}

func (s *snapshotStore) has() bool {
	return s.current != nil
}

func (s *snapshotStore) clear() {
	s.current = nil
}
