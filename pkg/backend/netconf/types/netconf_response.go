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

package types

import "github.com/beevik/etree"

// NetconfResponse holds the payload of an rpc-reply. For get-config replies
// Doc is rooted at the first element below <data>, and has no root if the
// device returned no data.
type NetconfResponse struct {
	Doc *etree.Document
}

func NewNetconfResponse(doc *etree.Document) *NetconfResponse {
	return &NetconfResponse{
		Doc: doc,
	}
}

// Empty reports whether the reply carries no element.
func (nr *NetconfResponse) Empty() bool {
	return nr == nil || nr.Doc == nil || nr.Doc.Root() == nil
}

// DocAsString serializes the reply payload without declaration. An empty
// reply serializes to "".
func (nr *NetconfResponse) DocAsString() (string, error) {
	if nr.Empty() {
		return "", nil
	}
	out := etree.NewDocument()
	out.SetRoot(nr.Doc.Root().Copy())
	out.Unindent()
	return out.WriteToString()
}
