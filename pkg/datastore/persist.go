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
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/beevik/etree"
	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/ofc-server/pkg/utils"
)

// loadStartup reads the startup document from file. A missing or empty file,
// or one that does not parse, yields no document.
func loadStartup(file string) (*etree.Document, error) {
	b, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		log.Infof("startup file %s does not exist, starting with an empty startup datastore", file)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed reading startup file: %w", err)
	}
	doc, err := utils.ParseDocument(string(b))
	if err != nil {
		log.Warnf("ignoring startup file %s: %v", file, err)
		return nil, nil
	}
	if !utils.HasContent(doc) {
		return nil, nil
	}
	return doc, nil
}

// storeStartup writes doc to file, or truncates file if doc is nil.
func storeStartup(file string, doc *etree.Document) error {
	if !utils.HasContent(doc) {
		if err := os.WriteFile(file, nil, 0o644); err != nil {
			return fmt.Errorf("failed truncating startup file: %w", err)
		}
		return nil
	}
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	out.SetRoot(doc.Root().Copy())
	out.Indent(2)
	if err := out.WriteToFile(file); err != nil {
		return fmt.Errorf("failed writing startup file: %w", err)
	}
	return nil
}
