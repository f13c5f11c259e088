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

// documentCache owns the startup and candidate documents. The running
// datastore is never cached. A nil document is an empty datastore.
type documentCache struct {
	startup   *etree.Document
	candidate *etree.Document
}

func (c *documentCache) slot(ds Type) **etree.Document {
	switch ds {
	case Startup:
		return &c.startup
	case Candidate:
		return &c.candidate
	}
	return nil
}

func (c *documentCache) get(ds Type) *etree.Document {
	if s := c.slot(ds); s != nil {
		return *s
	}
	return nil
}

// set installs doc, a document without root is stored as nil.
func (c *documentCache) set(ds Type, doc *etree.Document) {
	c.swap(ds, doc)
}

// swap installs doc and hands the previous document over to the caller.
func (c *documentCache) swap(ds Type, doc *etree.Document) *etree.Document {
	s := c.slot(ds)
	if s == nil {
		return nil
	}
	if !utils.HasContent(doc) {
		doc = nil
	}
	old := *s
	*s = doc
	return old
}
