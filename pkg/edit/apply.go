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

package edit

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/iptecharch/ofc-server/pkg/ncerr"
	"github.com/iptecharch/ofc-server/pkg/utils"
)

var ErrNoTarget = errors.New("no target document")

// Change records a single node level modification performed by Apply.
type Change struct {
	Operation utils.XMLOperation
	Path      string
}

func (c *Change) String() string {
	return fmt.Sprintf("%s %s", c.Operation, c.Path)
}

type applier struct {
	changes []*Change
}

func (a *applier) record(op utils.XMLOperation, elem *etree.Element) {
	a.changes = append(a.changes, &Change{Operation: op, Path: instancePath(elem)})
}

// Apply applies the fragment onto base, which is modified in place. base may
// be an empty envelope (a document without root element).
// The changes are returned in the order they were applied.
func Apply(base *etree.Document, edit *etree.Document, defop utils.XMLOperation) ([]*Change, error) {
	if base == nil {
		return nil, ErrNoTarget
	}
	if edit == nil || edit.Root() == nil {
		return nil, nil
	}
	a := &applier{}
	err := a.apply(&base.Element, edit.Root(), defop, "/")
	if err != nil {
		return nil, err
	}
	return a.changes, nil
}

func (a *applier) apply(parent *etree.Element, elem *etree.Element, inherited utils.XMLOperation, parentPath string) error {
	path := nodePath(parentPath, elem)
	op, _, err := effectiveOperation(elem, inherited)
	if err != nil {
		return err
	}
	match := findMatch(parent, elem, path)

	switch op {
	case utils.XMLOperationDelete:
		if match == nil {
			return ncerr.DataMissing(instancePath(elem))
		}
		parent.RemoveChild(match)
		a.record(op, elem)
	case utils.XMLOperationRemove:
		if match != nil {
			parent.RemoveChild(match)
			a.record(op, elem)
		}
	case utils.XMLOperationCreate:
		if match != nil {
			return ncerr.DataExists(instancePath(elem))
		}
		parent.AddChild(cleanCopy(elem))
		a.record(op, elem)
	case utils.XMLOperationReplace:
		if match != nil {
			idx := match.Index()
			parent.RemoveChildAt(idx)
			parent.InsertChildAt(idx, cleanCopy(elem))
		} else {
			parent.AddChild(cleanCopy(elem))
		}
		a.record(op, elem)
	case utils.XMLOperationMerge:
		if match == nil {
			parent.AddChild(cleanCopy(elem))
			a.record(op, elem)
			return nil
		}
		if isLeaf(elem) {
			if isLeaf(match) && match.Text() != elem.Text() {
				match.SetText(elem.Text())
				a.record(op, elem)
			}
			return nil
		}
		for _, c := range elem.ChildElements() {
			if err := a.apply(match, c, op, path); err != nil {
				return err
			}
		}
	case utils.XMLOperationNone:
		if match != nil {
			for _, c := range elem.ChildElements() {
				if err := a.apply(match, c, op, path); err != nil {
					return err
				}
			}
			return nil
		}
		// missing ancestors are created only when something below gets added
		shell := shellOf(elem, path)
		parent.AddChild(shell)
		keys := len(shell.ChildElements())
		for _, c := range elem.ChildElements() {
			if err := a.apply(shell, c, op, path); err != nil {
				return err
			}
		}
		if len(shell.ChildElements()) == keys {
			parent.RemoveChild(shell)
		}
	default:
		return ncerr.BadAttribute(elem.Tag, fmt.Sprintf("invalid operation %q", op))
	}
	return nil
}

// shellOf creates an empty element with the tag and non operation attributes
// of elem, carrying the list key when elem is a list entry.
func shellOf(elem *etree.Element, path string) *etree.Element {
	shell := etree.NewElement(elem.Tag)
	shell.Space = elem.Space
	for _, attr := range elem.Attr {
		shell.CreateAttr(attr.FullKey(), attr.Value)
	}
	utils.RemoveXMLOperation(shell)
	if key, ok := listKey(path); ok {
		if k := elem.SelectElement(key); k != nil {
			shell.AddChild(cleanCopy(k))
		}
	}
	return shell
}

// Replace replaces the content of base with a copy of root. A nil root leaves
// an empty envelope.
func Replace(base *etree.Document, root *etree.Element) error {
	if base == nil {
		return ErrNoTarget
	}
	for i := len(base.Child) - 1; i >= 0; i-- {
		if _, ok := base.Child[i].(*etree.Element); ok {
			base.RemoveChildAt(i)
		}
	}
	if root != nil {
		base.SetRoot(cleanCopy(root))
	}
	return nil
}
