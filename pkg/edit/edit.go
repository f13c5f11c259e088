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

// Package edit interprets the per-node operation attributes of an
// edit-config fragment against a configuration document.
//
// The pipeline is: CheckKeys, CheckEditOps (once for delete, once for
// create), Compact and finally Apply (or Replace for copy-config).
package edit

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/iptecharch/ofc-server/pkg/ncerr"
	"github.com/iptecharch/ofc-server/pkg/utils"
)

// ParseDefaultOperation parses the default-operation parameter.
// An empty value defaults to merge.
func ParseDefaultOperation(s string) (utils.XMLOperation, error) {
	switch op := utils.XMLOperation(s); op {
	case "":
		return utils.XMLOperationMerge, nil
	case utils.XMLOperationMerge, utils.XMLOperationReplace, utils.XMLOperationNone:
		return op, nil
	default:
		return "", ncerr.BadElement("default-operation")
	}
}

func validOperation(op utils.XMLOperation) bool {
	switch op {
	case utils.XMLOperationMerge,
		utils.XMLOperationReplace,
		utils.XMLOperationCreate,
		utils.XMLOperationDelete,
		utils.XMLOperationRemove:
		return true
	}
	return false
}

func isDeletion(op utils.XMLOperation) bool {
	return op == utils.XMLOperationDelete || op == utils.XMLOperationRemove
}

// effectiveOperation returns the operation that applies to elem: its own
// operation attribute, otherwise the inherited one. explicit is true when
// elem carries the attribute itself.
func effectiveOperation(elem *etree.Element, inherited utils.XMLOperation) (op utils.XMLOperation, explicit bool, err error) {
	op, explicit = utils.GetXMLOperation(elem)
	if !explicit {
		return inherited, false, nil
	}
	if !validOperation(op) {
		return "", true, ncerr.BadAttribute(elem.Tag, fmt.Sprintf("invalid operation %q", op))
	}
	return op, true, nil
}

// ReplaceFragment builds the edit fragment equivalent to replacing the whole
// configuration with root. A nil root yields a fragment removing the
// configuration root.
func ReplaceFragment(root *etree.Element) *etree.Document {
	doc := etree.NewDocument()
	if root == nil {
		r := doc.CreateElement(utils.RootElement)
		r.CreateAttr("xmlns", utils.OFConfigNS)
		utils.AddXMLOperation(r, utils.XMLOperationRemove, true, true)
		return doc
	}
	r := cleanCopy(root)
	utils.AddXMLOperation(r, utils.XMLOperationReplace, true, false)
	doc.SetRoot(r)
	return doc
}
