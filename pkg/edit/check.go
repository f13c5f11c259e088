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

	"github.com/beevik/etree"

	"github.com/iptecharch/ofc-server/pkg/ncerr"
	"github.com/iptecharch/ofc-server/pkg/utils"
)

// CheckEditOps validates the operations of kind (delete or create) found in the
// fragment against base. Nodes explicitly deleted must exist in base, nodes
// explicitly created must not. Nodes without operation attribute inherit the
// operation of their parent, the root inherits defop.
// base may be nil, representing an empty datastore.
func CheckEditOps(kind utils.XMLOperation, defop utils.XMLOperation, base *etree.Document, edit *etree.Document) error {
	switch kind {
	case utils.XMLOperationDelete, utils.XMLOperationCreate:
	default:
		return fmt.Errorf("unsupported check kind %q", kind)
	}
	if edit == nil || edit.Root() == nil {
		return nil
	}
	var baseParent *etree.Element
	if base != nil {
		baseParent = &base.Element
	}
	return checkOps(kind, defop, baseParent, edit.Root(), "/")
}

func checkOps(kind utils.XMLOperation, inherited utils.XMLOperation, baseParent *etree.Element, elem *etree.Element, parentPath string) error {
	path := nodePath(parentPath, elem)
	op, explicit, err := effectiveOperation(elem, inherited)
	if err != nil {
		return err
	}
	match := findMatch(baseParent, elem, path)

	if explicit && op == kind {
		switch kind {
		case utils.XMLOperationDelete:
			if match == nil {
				return ncerr.DataMissing(instancePath(elem))
			}
		case utils.XMLOperationCreate:
			if match != nil {
				return ncerr.DataExists(instancePath(elem))
			}
		}
	}
	// nothing below a deleted node is looked at
	if isDeletion(op) {
		return nil
	}
	for _, c := range elem.ChildElements() {
		if err := checkOps(kind, op, match, c, path); err != nil {
			return err
		}
	}
	return nil
}
