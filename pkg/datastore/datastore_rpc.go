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
	"context"
	"errors"
	"fmt"

	"github.com/beevik/etree"
	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/ofc-server/pkg/backend"
	"github.com/iptecharch/ofc-server/pkg/config"
	"github.com/iptecharch/ofc-server/pkg/datastore/types"
	"github.com/iptecharch/ofc-server/pkg/edit"
	"github.com/iptecharch/ofc-server/pkg/ncerr"
	"github.com/iptecharch/ofc-server/pkg/utils"
)

// GetConfig returns the serialization of ds. Empty datastores serialize to "".
func (d *Datastore) GetConfig(ctx context.Context, ds Type) (string, error) {
	d.m.Lock()
	defer d.m.Unlock()

	switch ds {
	case Running:
		s, err := d.store.GetConfig(ctx)
		if err != nil {
			return "", ncerr.OperationFailedErr(err, "failed retrieving running configuration")
		}
		return s, nil
	case Startup, Candidate:
		s, err := utils.SerializeDocument(d.docs.get(ds))
		if err != nil {
			return "", ncerr.OperationFailedErr(err, "failed serializing configuration")
		}
		return s, nil
	}
	return "", ncerr.BadElement("source")
}

// EditConfig applies the configuration fragment onto target.
func (d *Datastore) EditConfig(ctx context.Context, target Type, defaultOperation string, fragment string) error {
	d.m.Lock()
	defer d.m.Unlock()

	if err := d.checkLock(ctx, target); err != nil {
		return err
	}
	if target != Running && target != Startup && target != Candidate {
		return ncerr.BadElement("target")
	}
	defop, err := edit.ParseDefaultOperation(defaultOperation)
	if err != nil {
		return err
	}

	editDoc, err := parseConfig(fragment)
	if err != nil {
		return err
	}
	if !utils.HasContent(editDoc) {
		return ncerr.BadElement("config")
	}

	var base *etree.Document
	if target == Running {
		base, err = d.fetchRunning(ctx)
		if err != nil {
			return ncerr.OperationFailedErr(err, "failed retrieving running configuration")
		}
	} else {
		base = utils.CopyDocument(d.docs.get(target))
		if base == nil {
			base = etree.NewDocument()
		}
	}

	d.snapshot.capture(utils.CopyDocument(base), target)

	if err := edit.CheckKeys(editDoc); err != nil {
		return err
	}
	if err := edit.CheckEditOps(utils.XMLOperationDelete, defop, base, editDoc); err != nil {
		return err
	}
	if err := edit.CheckEditOps(utils.XMLOperationCreate, defop, base, editDoc); err != nil {
		return err
	}

	if d.config.WithDefaults == config.WithDefaultsTrim {
		log.Debugf("with-defaults %s: default values are kept as received", d.config.WithDefaults)
	}

	if target != Running {
		if err := edit.Compact(editDoc, defop); err != nil {
			return ncerr.OperationFailedErr(err, "")
		}
		if _, err := edit.Apply(base, editDoc, defop); err != nil {
			return ncerr.From(err)
		}
		d.docs.set(target, base)
		return nil
	}

	// port configuration can only be set once the ports exist
	portSettings := edit.CreatedPortSettings(editDoc, base, defop)

	trans, guard, err := d.beginTransaction(ctx)
	if err != nil {
		return err
	}
	defer guard.Done()

	if err := edit.Compact(editDoc, defop); err != nil {
		return ncerr.OperationFailedErr(err, "")
	}
	changes, err := edit.Apply(base, editDoc, defop)
	if err != nil {
		return ncerr.From(err)
	}
	err = trans.Stage(ctx, &backend.Change{
		Edit:             editDoc,
		DefaultOperation: defop,
		Result:           base,
	})
	if err != nil {
		return ncerr.OperationFailedErr(err, "failed staging configuration")
	}
	if err := trans.Commit(ctx); err != nil {
		// Commit closed the transaction, there is nothing left to abort
		guard.Success()
		log.Errorf("Transaction: %s - commit failed: %v", trans.GetTransactionId(), err)
		return ncerr.OperationFailedErr(err, "failed committing configuration")
	}
	guard.Success()
	log.Debugf("Transaction: %s - edit-config on %s: %d change(s) committed", trans.GetTransactionId(), target, len(changes))

	return d.configurePorts(ctx, portSettings)
}

// CopyConfig replaces target with the content of source. content holds the
// configuration when source is InlineConfig.
func (d *Datastore) CopyConfig(ctx context.Context, target Type, source Type, content string) error {
	d.m.Lock()
	defer d.m.Unlock()
	if err := d.checkLock(ctx, target); err != nil {
		return err
	}
	return d.copyConfig(ctx, target, source, content, false)
}

// copyConfig takes no snapshot when invokedByRollback is set, a snapshot is
// never captured while one is being consumed.
func (d *Datastore) copyConfig(ctx context.Context, target Type, source Type, content string, invokedByRollback bool) error {
	var src *etree.Document
	switch source {
	case Running:
		doc, err := d.fetchRunning(ctx)
		if err != nil {
			return ncerr.OperationFailedErr(err, "failed retrieving running configuration")
		}
		src = doc
	case Startup, Candidate:
		src = utils.CopyDocument(d.docs.get(source))
	case InlineConfig:
		doc, err := parseConfig(content)
		if err != nil {
			return err
		}
		src = doc
	default:
		return ncerr.BadElement("source")
	}
	if !utils.HasContent(src) {
		src = nil
	}

	switch target {
	case Running:
		return d.replaceRunning(ctx, src, invokedByRollback)
	case Startup, Candidate:
		old := d.docs.swap(target, src)
		if !invokedByRollback {
			d.snapshot.capture(old, target)
		}
		return nil
	}
	return ncerr.BadElement("target")
}

func (d *Datastore) replaceRunning(ctx context.Context, src *etree.Document, invokedByRollback bool) error {
	s, err := d.store.GetConfig(ctx)
	if err != nil {
		return ncerr.OperationFailedErr(err, "failed retrieving running configuration")
	}
	base, err := utils.ParseDocument(s)
	if err != nil {
		log.Debugf("running configuration does not parse, replacing it as a whole: %v", err)
		base = etree.NewDocument()
	}
	if !invokedByRollback {
		d.snapshot.capture(utils.CopyDocument(base), Running)
	}

	var root *etree.Element
	if src != nil {
		root = src.Root()
	}

	trans, guard, err := d.beginTransaction(ctx)
	if err != nil {
		return err
	}
	defer guard.Done()

	if err := edit.Replace(base, root); err != nil {
		return ncerr.From(err)
	}
	err = trans.Stage(ctx, &backend.Change{
		Edit:             edit.ReplaceFragment(root),
		DefaultOperation: utils.XMLOperationMerge,
		Result:           base,
	})
	if err != nil {
		return ncerr.OperationFailedErr(err, "failed staging configuration")
	}
	if err := trans.Commit(ctx); err != nil {
		// Commit closed the transaction, there is nothing left to abort
		guard.Success()
		log.Errorf("Transaction: %s - commit failed: %v", trans.GetTransactionId(), err)
		return ncerr.OperationFailedErr(err, "failed committing configuration")
	}
	guard.Success()
	return nil
}

// DeleteConfig empties target. The running datastore cannot be deleted.
func (d *Datastore) DeleteConfig(ctx context.Context, target Type) error {
	d.m.Lock()
	defer d.m.Unlock()

	if err := d.checkLock(ctx, target); err != nil {
		return err
	}
	switch target {
	case Running:
		return ncerr.OperationFailed("Cannot delete a running datastore.")
	case Startup, Candidate:
		old := d.docs.swap(target, nil)
		d.snapshot.capture(old, target)
		return nil
	}
	return ncerr.BadElement("target")
}

// Rollback restores the datastore modified by the last edit-config,
// copy-config or delete-config to its previous content. The rollback data is
// cleared once restored, so a second rollback fails. A failed restore keeps it.
func (d *Datastore) Rollback(ctx context.Context) error {
	d.m.Lock()
	defer d.m.Unlock()

	snap, ok := d.snapshot.peek()
	if !ok {
		return ncerr.OperationFailed("No data to rollback")
	}
	content, err := utils.SerializeDocument(snap.doc)
	if err != nil {
		return ncerr.OperationFailedErr(err, "failed serializing rollback data")
	}
	log.Debugf("rolling back %s datastore", snap.ds)
	if err := d.copyConfig(ctx, snap.ds, InlineConfig, content, true); err != nil {
		// the snapshot stays for a retry
		return err
	}
	d.snapshot.clear()
	return nil
}

// parseConfig parses a configuration received in a request. An empty text is
// an empty document, anything else must be rooted at the configuration root.
func parseConfig(s string) (*etree.Document, error) {
	doc, err := utils.ParseDocument(s)
	if err != nil {
		return nil, ncerr.BadElement("config")
	}
	if utils.HasContent(doc) && !utils.IsConfigRoot(doc.Root()) {
		return nil, ncerr.BadElement("config")
	}
	return doc, nil
}

// fetchRunning returns the parsed running configuration, a document without
// root when the device has no configuration.
func (d *Datastore) fetchRunning(ctx context.Context) (*etree.Document, error) {
	s, err := d.store.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := utils.ParseDocument(s)
	if err != nil {
		return nil, fmt.Errorf("failed parsing running configuration: %w", err)
	}
	return doc, nil
}

func (d *Datastore) beginTransaction(ctx context.Context) (*types.Transaction, *types.TransactionGuard, error) {
	trans, guard, err := d.tm.Begin(ctx)
	if errors.Is(err, types.ErrTransactionOngoing) {
		// operations are serialized, a dangling transaction is a bug
		panic(fmt.Sprintf("datastore: %v", err))
	}
	if err != nil {
		return nil, nil, ncerr.OperationFailedErr(err, "failed opening transaction")
	}
	return trans, guard, nil
}

// configurePorts applies the configuration of newly created ports through the
// backing store, if it supports it.
func (d *Datastore) configurePorts(ctx context.Context, settings []*edit.PortSetting) error {
	if len(settings) == 0 {
		return nil
	}
	pc, ok := d.store.(backend.PortConfigurer)
	if !ok {
		log.Debugf("backend does not support port configuration, skipping %d setting(s)", len(settings))
		return nil
	}
	for _, s := range settings {
		if err := pc.SetPortConfig(ctx, s.Port, s.Leaf, s.Value); err != nil {
			return ncerr.OperationFailedErr(err, fmt.Sprintf("failed configuring port %s", s.Port))
		}
	}
	return nil
}
