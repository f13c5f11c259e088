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

	"github.com/iptecharch/ofc-server/pkg/utils"
)

const portsPath = "/capable-switch/resources/port"

// PortSetting is a single leaf of a port's configuration container.
type PortSetting struct {
	Port  string
	Leaf  string
	Value string
}

// CreatedPortSettings returns the configuration leaves (admin-state,
// no-receive, no-forward, no-packet-in) of the ports the fragment adds to base.
// The port configuration is applied to the device only once the port exists,
// which is after the transaction creating it got committed.
func CreatedPortSettings(fragment *etree.Document, base *etree.Document, defop utils.XMLOperation) []*PortSetting {
	if fragment == nil || !utils.IsConfigRoot(fragment.Root()) {
		return nil
	}
	root := fragment.Root()
	rootOp, _, err := effectiveOperation(root, defop)
	if err != nil || isDeletion(rootOp) {
		return nil
	}
	resources := root.SelectElement("resources")
	if resources == nil {
		return nil
	}
	resOp, _, err := effectiveOperation(resources, rootOp)
	if err != nil || isDeletion(resOp) {
		return nil
	}

	var baseResources *etree.Element
	if base != nil && utils.IsConfigRoot(base.Root()) {
		baseResources = base.Root().SelectElement("resources")
	}

	result := []*PortSetting{}
	for _, port := range resources.SelectElements("port") {
		op, _, err := effectiveOperation(port, resOp)
		if err != nil || isDeletion(op) || op == utils.XMLOperationNone {
			continue
		}
		name, ok := keyValue(port, "name")
		if !ok || name == "" {
			continue
		}
		if findMatch(baseResources, port, portsPath) != nil {
			continue
		}
		cfg := port.SelectElement("configuration")
		if cfg == nil {
			continue
		}
		for _, leaf := range cfg.ChildElements() {
			result = append(result, &PortSetting{
				Port:  name,
				Leaf:  leaf.Tag,
				Value: strings.TrimSpace(leaf.Text()),
			})
		}
	}
	return result
}
