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
	"strings"

	"github.com/beevik/etree"

	"github.com/iptecharch/ofc-server/pkg/ncerr"
)

// CheckKeys verifies that every list entry of the fragment carries a non-empty
// key leaf and that every leaf-list entry has a value.
func CheckKeys(edit *etree.Document) error {
	if edit == nil || edit.Root() == nil {
		return nil
	}
	return checkKeys(edit.Root(), nodePath("/", edit.Root()))
}

func checkKeys(elem *etree.Element, path string) error {
	if key, ok := listKey(path); ok {
		v, exists := keyValue(elem, key)
		if !exists {
			e := ncerr.MissingElement(key)
			e.Message = "missing key of " + instancePath(elem)
			return e
		}
		if v == "" {
			return ncerr.InvalidValue(key, "empty key of "+instancePath(elem))
		}
	}
	if isLeafList(path) && strings.TrimSpace(elem.Text()) == "" {
		return ncerr.InvalidValue(elem.Tag, "empty leaf-list entry "+path)
	}
	for _, c := range elem.ChildElements() {
		if err := checkKeys(c, nodePath(path, c)); err != nil {
			return err
		}
	}
	return nil
}
