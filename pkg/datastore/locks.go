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

	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/ofc-server/pkg/ncerr"
)

// holder is set iff held
type lockRecord struct {
	held   bool
	holder string
}

type lockTable struct {
	records map[Type]*lockRecord
}

func newLockTable() *lockTable {
	lt := &lockTable{}
	lt.reset()
	return lt
}

func (lt *lockTable) reset() {
	lt.records = map[Type]*lockRecord{
		Running:   {},
		Startup:   {},
		Candidate: {},
	}
}

func (lt *lockTable) record(ds Type) (*lockRecord, error) {
	r, ok := lt.records[ds]
	if !ok {
		return nil, ncerr.BadElement("target")
	}
	return r, nil
}

// lock is denied whenever the datastore is locked, including by session itself.
func (lt *lockTable) lock(ds Type, session string) error {
	r, err := lt.record(ds)
	if err != nil {
		return err
	}
	if r.held {
		return ncerr.LockDenied(r.holder)
	}
	r.held = true
	r.holder = session
	log.Debugf("datastore %s locked by session %s", ds, session)
	return nil
}

func (lt *lockTable) unlock(ds Type, session string) error {
	r, err := lt.record(ds)
	if err != nil {
		return err
	}
	if !r.held {
		return ncerr.OperationFailed("Target datastore is not locked.")
	}
	if r.holder != session {
		e := ncerr.LockDenied(r.holder)
		e.Message = "Target datastore is locked by another session."
		return e
	}
	r.held = false
	r.holder = ""
	log.Debugf("datastore %s unlocked by session %s", ds, session)
	return nil
}

func (lt *lockTable) lockedBy(ds Type) (string, bool) {
	r, ok := lt.records[ds]
	if !ok || !r.held {
		return "", false
	}
	return r.holder, true
}

// releaseSession drops all locks held by session and returns the datastores
// that got unlocked.
func (lt *lockTable) releaseSession(session string) []Type {
	released := []Type{}
	for _, ds := range []Type{Running, Startup, Candidate} {
		r := lt.records[ds]
		if r.held && r.holder == session {
			r.held = false
			r.holder = ""
			released = append(released, ds)
		}
	}
	return released
}

// Lock locks ds for session.
func (d *Datastore) Lock(ds Type, session string) error {
	d.m.Lock()
	defer d.m.Unlock()
	if session == "" {
		return ncerr.MissingElement("session-id")
	}
	return d.locks.lock(ds, session)
}

// Unlock releases the lock session holds on ds.
func (d *Datastore) Unlock(ds Type, session string) error {
	d.m.Lock()
	defer d.m.Unlock()
	return d.locks.unlock(ds, session)
}

// LockedBy returns the session holding the lock on ds, if any.
func (d *Datastore) LockedBy(ds Type) (string, bool) {
	d.m.Lock()
	defer d.m.Unlock()
	return d.locks.lockedBy(ds)
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying the session issuing an
// operation. Modifying operations run with such a context fail with
// lock-denied when their target is locked by another session. The check and
// the operation happen under the same datastore mutex.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func sessionFrom(ctx context.Context) (string, bool) {
	session, ok := ctx.Value(sessionKey{}).(string)
	return session, ok
}

// checkLock fails with lock-denied if ds is locked by a session other than
// the one carried by ctx. Contexts without a session are not checked.
// d.m must be held.
func (d *Datastore) checkLock(ctx context.Context, ds Type) error {
	session, ok := sessionFrom(ctx)
	if !ok {
		return nil
	}
	holder, locked := d.locks.lockedBy(ds)
	if locked && holder != session {
		return ncerr.LockDenied(holder)
	}
	return nil
}

// ReleaseSession drops every lock held by session, as done when a session
// is closed or killed.
func (d *Datastore) ReleaseSession(session string) []Type {
	d.m.Lock()
	defer d.m.Unlock()
	released := d.locks.releaseSession(session)
	if len(released) > 0 {
		log.Debugf("session %s closed, released locks on %v", session, released)
	}
	return released
}
