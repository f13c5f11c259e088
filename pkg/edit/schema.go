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
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/iptecharch/ofc-server/pkg/utils"
)

// listKeys maps the path of every OF-Config list to the name of its key leaf.
var listKeys = map[string]string{
	"/capable-switch/configuration-points/configuration-point":       "id",
	"/capable-switch/resources/port":                                 "name",
	"/capable-switch/resources/queue":                                "resource-id",
	"/capable-switch/resources/owned-certificate":                    "resource-id",
	"/capable-switch/resources/external-certificate":                 "resource-id",
	"/capable-switch/resources/flow-table":                           "table-id",
	"/capable-switch/logical-switches/switch":                        "id",
	"/capable-switch/logical-switches/switch/controllers/controller": "id",
}

// leafLists holds the paths of leaf-lists, entries are identified by their value.
var leafLists = map[string]struct{}{
	"/capable-switch/logical-switches/switch/resources/port":        {},
	"/capable-switch/logical-switches/switch/resources/queue":       {},
	"/capable-switch/logical-switches/switch/resources/certificate": {},
	"/capable-switch/logical-switches/switch/resources/flow-table":  {},
}

// nodePath returns the schema path of elem, which is parentPath/tag.
func nodePath(parentPath string, elem *etree.Element) string {
	if parentPath == "/" {
		return "/" + elem.Tag
	}
	return parentPath + "/" + elem.Tag
}

func listKey(path string) (string, bool) {
	k, ok := listKeys[path]
	return k, ok
}

func isLeafList(path string) bool {
	_, ok := leafLists[path]
	return ok
}

func keyValue(elem *etree.Element, key string) (string, bool) {
	k := elem.SelectElement(key)
	if k == nil {
		return "", false
	}
	return strings.TrimSpace(k.Text()), true
}

// findMatch returns the child of parent that represents the same data node as elem.
// path is the schema path of elem.
func findMatch(parent *etree.Element, elem *etree.Element, path string) *etree.Element {
	if parent == nil {
		return nil
	}
	key, isList := listKey(path)
	leafList := isLeafList(path)
	var want string
	switch {
	case isList:
		var ok bool
		want, ok = keyValue(elem, key)
		if !ok {
			return nil
		}
	case leafList:
		want = strings.TrimSpace(elem.Text())
	}

	for _, c := range parent.ChildElements() {
		if c.Tag != elem.Tag {
			continue
		}
		switch {
		case isList:
			if v, ok := keyValue(c, key); ok && v == want {
				return c
			}
		case leafList:
			if strings.TrimSpace(c.Text()) == want {
				return c
			}
		default:
			return c
		}
	}
	return nil
}

// instancePath renders the path of elem including list keys, e.g.
// /capable-switch/resources/port[name=p1]. Used in errors and change records.
func instancePath(elem *etree.Element) string {
	segments := []*etree.Element{}
	for e := elem; e != nil && e.Tag != ""; e = e.Parent() {
		segments = append([]*etree.Element{e}, segments...)
	}
	sb := &strings.Builder{}
	path := "/"
	for _, s := range segments {
		path = nodePath(path, s)
		sb.WriteString("/")
		sb.WriteString(s.Tag)
		if key, ok := listKey(path); ok {
			v, _ := keyValue(s, key)
			fmt.Fprintf(sb, "[%s=%s]", key, v)
		} else if isLeafList(path) {
			fmt.Fprintf(sb, "[.=%s]", strings.TrimSpace(s.Text()))
		}
	}
	return sb.String()
}

// isLeaf reports whether elem has no child elements.
func isLeaf(elem *etree.Element) bool {
	return len(elem.ChildElements()) == 0
}

// cleanCopy returns a deep copy of elem without operation attributes.
func cleanCopy(elem *etree.Element) *etree.Element {
	c := elem.Copy()
	utils.StripXMLOperations(c)
	return c
}
