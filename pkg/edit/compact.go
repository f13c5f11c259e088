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

	"github.com/iptecharch/ofc-server/pkg/utils"
)

// Compact rewrites the operation attributes of the fragment in place into a
// minimal set: an attribute is kept only where the operation differs from the
// one inherited from the parent (the root inherits defop).
// Below a delete or remove only further deletions are accepted, and they are
// dropped as redundant.
func Compact(edit *etree.Document, defop utils.XMLOperation) error {
	if edit == nil || edit.Root() == nil {
		return nil
	}
	return compact(edit.Root(), defop)
}

func compact(elem *etree.Element, inherited utils.XMLOperation) error {
	op, explicit, err := effectiveOperation(elem, inherited)
	if err != nil {
		return err
	}

	switch {
	case explicit && isDeletion(inherited):
		if !isDeletion(op) {
			return fmt.Errorf("%s: operation %q below a %q operation", instancePath(elem), op, inherited)
		}
		utils.DropXMLOperation(elem)
		op = inherited
	case explicit && op == inherited:
		utils.DropXMLOperation(elem)
	}

	for _, c := range elem.ChildElements() {
		if err := compact(c, op); err != nil {
			return err
		}
	}
	return nil
}
