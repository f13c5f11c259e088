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

package utils

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/beevik/etree"
)

const (
	NcBase1_0 = "urn:ietf:params:xml:ns:netconf:base:1.0"
	// OFConfigNS is the namespace of the OF-Config capable-switch model
	OFConfigNS = "urn:onf:config:yang"
	// RootElement is the tag every configuration document is rooted at
	RootElement = "capable-switch"

	OperationAttr = "operation"
)

type XMLOperation string

const (
	XMLOperationMerge   XMLOperation = "merge"
	XMLOperationReplace XMLOperation = "replace"
	XMLOperationCreate  XMLOperation = "create"
	XMLOperationDelete  XMLOperation = "delete"
	XMLOperationRemove  XMLOperation = "remove"
	XMLOperationNone    XMLOperation = "none"
)

var ErrNoRoot = errors.New("document has no root element")

// ParseDocument parses s into an etree.Document.
// Whitespace-only text between elements is dropped. Text content outside the
// root element or a second root element is rejected.
// An empty (or whitespace only) input yields a document without root.
func ParseDocument(s string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if strings.TrimSpace(s) == "" {
		return doc, nil
	}
	err := doc.ReadFromString(s)
	if err != nil {
		return nil, err
	}
	roots := 0
	for _, t := range doc.Child {
		switch t := t.(type) {
		case *etree.Element:
			roots++
		case *etree.CharData:
			if !t.IsWhitespace() {
				return nil, fmt.Errorf("unexpected text content %q outside of the root element", t.Data)
			}
		}
	}
	switch roots {
	case 0:
		return nil, ErrNoRoot
	case 1:
	default:
		return nil, fmt.Errorf("expected a single root element, found %d", roots)
	}
	trimBlanks(&doc.Element)
	return doc, nil
}

// trimBlanks removes whitespace-only text tokens from elements that have element children.
func trimBlanks(e *etree.Element) {
	hasElems := false
	for _, t := range e.Child {
		if _, ok := t.(*etree.Element); ok {
			hasElems = true
			break
		}
	}
	if hasElems {
		for i := len(e.Child) - 1; i >= 0; i-- {
			if cd, ok := e.Child[i].(*etree.CharData); ok && cd.IsWhitespace() {
				e.RemoveChildAt(i)
			}
		}
	}
	for _, c := range e.ChildElements() {
		trimBlanks(c)
	}
}

// SerializeDocument returns the root element of doc as a string, without XML declaration.
// A nil document or a document without root serializes to "".
func SerializeDocument(doc *etree.Document) (string, error) {
	if doc == nil || doc.Root() == nil {
		return "", nil
	}
	out := etree.NewDocument()
	out.SetRoot(doc.Root().Copy())
	return out.WriteToString()
}

// CopyDocument deep copies doc. A nil doc copies to nil.
func CopyDocument(doc *etree.Document) *etree.Document {
	if doc == nil {
		return nil
	}
	return doc.Copy()
}

// HasContent reports whether doc is non-nil and has a root element.
func HasContent(doc *etree.Document) bool {
	return doc != nil && doc.Root() != nil
}

// IsConfigRoot reports whether e is the configuration root element.
func IsConfigRoot(e *etree.Element) bool {
	return e != nil && e.Tag == RootElement
}

// GetXMLOperation returns the operation attribute of elem, if present.
func GetXMLOperation(elem *etree.Element) (XMLOperation, bool) {
	for _, a := range elem.Attr {
		if isOperationAttr(a) {
			return XMLOperation(a.Value), true
		}
	}
	return "", false
}

// isOperationAttr matches operation, nc:operation or any other prefixed form.
func isOperationAttr(a etree.Attr) bool {
	return a.Key == OperationAttr && a.Space != "xmlns"
}

// RemoveXMLOperation removes the operation attribute and the netconf base
// namespace declaration from elem.
func RemoveXMLOperation(elem *etree.Element) {
	removeAttrs(elem, func(a etree.Attr) bool {
		return isOperationAttr(a) || (a.Space == "xmlns" && a.Value == NcBase1_0)
	})
}

// DropXMLOperation removes only the operation attribute from elem. Namespace
// declarations stay, descendants may still use the prefix.
func DropXMLOperation(elem *etree.Element) {
	removeAttrs(elem, isOperationAttr)
}

func removeAttrs(elem *etree.Element, drop func(etree.Attr) bool) {
	kept := elem.Attr[:0]
	for _, a := range elem.Attr {
		if drop(a) {
			continue
		}
		kept = append(kept, a)
	}
	elem.Attr = kept
}

// StripXMLOperations removes all operation attributes in the subtree rooted at elem.
func StripXMLOperations(elem *etree.Element) {
	RemoveXMLOperation(elem)
	for _, c := range elem.ChildElements() {
		StripXMLOperations(c)
	}
}

// AddXMLOperation adds the operation Attribute to the given etree.Element
// if the operation is XMLOperationDelete or XMLOperationRemove, the useOperationRemove parameter defines which operation of these is finally used.
// Any previously set operation attribute is replaced.
func AddXMLOperation(elem *etree.Element, operation XMLOperation, operationWithNamespace bool, useOperationRemove bool) {
	operName := operation
	switch operation {
	case XMLOperationDelete, XMLOperationRemove:
		operName = XMLOperationDelete
		if useOperationRemove {
			operName = XMLOperationRemove
		}
	}

	RemoveXMLOperation(elem)
	operKey := OperationAttr
	// add base1.0 as xmlns:nc attr
	if operationWithNamespace {
		elem.CreateAttr("xmlns:nc", NcBase1_0)
		operKey = "nc:" + operKey
	}
	elem.CreateAttr(operKey, string(operName))
}

// XmlRecursiveSortElementsByTagName recursively sorts the child elements of element by tag name,
// list entries by their key leaf.
func XmlRecursiveSortElementsByTagName(element *etree.Element) {
	// Sort the child elements by their tag name
	slices.SortStableFunc(element.Child, func(i, j etree.Token) int {
		ci, oki := i.(*etree.Element)
		cj, okj := j.(*etree.Element)

		if oki && okj {
			comp := strings.Compare(ci.Tag, cj.Tag)
			if comp != 0 {
				return comp
			}
			attributes := []string{"id", "name", "resource-id", "table-id"}
			for _, a := range attributes {
				if cic := ci.SelectElement(a); cic != nil {
					cjc := cj.SelectElement(a)
					if cjc == nil {
						return 1
					}
					return strings.Compare(cic.Text(), cjc.Text())
				}
			}
			return strings.Compare(ci.Text(), cj.Text())
		}
		return 0
	})

	// Recurse into each child element to sort their children
	for _, child := range element.Child {
		if celem, ok := child.(*etree.Element); ok {
			XmlRecursiveSortElementsByTagName(celem)
		}
	}
}
