package datastore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlekSi/pointer"
	"github.com/google/go-cmp/cmp"
	"github.com/kylelemons/godebug/diff"
	"go.uber.org/mock/gomock"

	"github.com/iptecharch/ofc-server/mocks/mockbackend"
	"github.com/iptecharch/ofc-server/pkg/backend"
	"github.com/iptecharch/ofc-server/pkg/config"
	"github.com/iptecharch/ofc-server/pkg/ncerr"
	"github.com/iptecharch/ofc-server/pkg/utils"
)

const (
	ncNS = `xmlns:nc="urn:ietf:params:xml:ns:netconf:base:1.0"`

	sw1 = `<capable-switch><id>sw1</id></capable-switch>`
	sw2 = `<capable-switch><id>sw2</id></capable-switch>`
)

func newTestDatastore(t *testing.T, running string) (*Datastore, *backend.MemoryStore) {
	t.Helper()
	store, err := backend.NewMemoryStoreFrom(running)
	if err != nil {
		t.Fatalf("failed creating memory store: %v", err)
	}
	cfg := &config.DatastoreConfig{
		StartupFile:          filepath.Join(t.TempDir(), "startup.xml"),
		WithDefaults:         config.WithDefaultsExplicit,
		CopyStartupToRunning: pointer.ToBool(false),
	}
	ds := New(cfg, store)
	if err := ds.Init(context.Background()); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return ds, store
}

func mustGetConfig(t *testing.T, ds *Datastore, target Type) string {
	t.Helper()
	s, err := ds.GetConfig(context.Background(), target)
	if err != nil {
		t.Fatalf("GetConfig(%s) failed: %v", target, err)
	}
	return s
}

func assertConfig(t *testing.T, ds *Datastore, target Type, want string) {
	t.Helper()
	got := mustGetConfig(t, ds, target)
	if got != want {
		t.Errorf("GetConfig(%s) mismatch (-want +got):\n%s", target, diff.Diff(want, got))
	}
}

func assertTag(t *testing.T, err error, tag ncerr.Tag) {
	t.Helper()
	if !ncerr.HasTag(err, tag) {
		t.Fatalf("expected %s error, got %v", tag, err)
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{Running, Startup, Candidate, InlineConfig} {
		got, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%q) failed: %v", typ.String(), err)
		}
		if got != typ {
			t.Errorf("ParseType(%q) = %v, want %v", typ.String(), got, typ)
		}
	}
	if _, err := ParseType("intended"); err == nil {
		t.Errorf("ParseType(intended) expected an error")
	}
}

func TestLocking(t *testing.T) {
	type step struct {
		unlock  bool
		ds      Type
		session string
		wantTag ncerr.Tag
		wantMsg string
	}
	tests := []struct {
		name  string
		steps []step
	}{
		{
			name: "lock unlock",
			steps: []step{
				{ds: Running, session: "1"},
				{unlock: true, ds: Running, session: "1"},
				{ds: Running, session: "2"},
			},
		},
		{
			name: "lock held by same session",
			steps: []step{
				{ds: Candidate, session: "1"},
				{ds: Candidate, session: "1", wantTag: ncerr.TagLockDenied},
			},
		},
		{
			name: "lock held by other session",
			steps: []step{
				{ds: Startup, session: "1"},
				{ds: Startup, session: "2", wantTag: ncerr.TagLockDenied},
			},
		},
		{
			name: "unlock by other session",
			steps: []step{
				{ds: Running, session: "1"},
				{unlock: true, ds: Running, session: "2", wantTag: ncerr.TagLockDenied, wantMsg: "Target datastore is locked by another session."},
			},
		},
		{
			name: "unlock not locked",
			steps: []step{
				{unlock: true, ds: Running, session: "1", wantTag: ncerr.TagOperationFailed, wantMsg: "Target datastore is not locked."},
			},
		},
		{
			name: "independent datastores",
			steps: []step{
				{ds: Running, session: "1"},
				{ds: Startup, session: "2"},
				{ds: Candidate, session: "3"},
			},
		},
		{
			name: "config is not lockable",
			steps: []step{
				{ds: InlineConfig, session: "1", wantTag: ncerr.TagBadElement},
			},
		},
		{
			name: "missing session",
			steps: []step{
				{ds: Running, wantTag: ncerr.TagMissingElement},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, _ := newTestDatastore(t, "")
			for i, s := range tt.steps {
				var err error
				if s.unlock {
					err = ds.Unlock(s.ds, s.session)
				} else {
					err = ds.Lock(s.ds, s.session)
				}
				if tt.steps[i].wantTag == "" {
					if err != nil {
						t.Fatalf("step %d: unexpected error: %v", i, err)
					}
					continue
				}
				assertTag(t, err, s.wantTag)
				if s.wantMsg != "" {
					var ne *ncerr.Error
					if !errors.As(err, &ne) || ne.Message != s.wantMsg {
						t.Errorf("step %d: got message %q, want %q", i, ne.Message, s.wantMsg)
					}
				}
			}
		})
	}
}

func TestLockDeniedReportsHolder(t *testing.T) {
	ds, _ := newTestDatastore(t, "")
	if err := ds.Lock(Running, "7"); err != nil {
		t.Fatal(err)
	}
	err := ds.Lock(Running, "8")
	var ne *ncerr.Error
	if !errors.As(err, &ne) {
		t.Fatalf("expected *ncerr.Error, got %v", err)
	}
	if ne.SessionID != "7" {
		t.Errorf("lock-denied session-id = %q, want %q", ne.SessionID, "7")
	}
	holder, locked := ds.LockedBy(Running)
	if !locked || holder != "7" {
		t.Errorf("LockedBy() = %q, %v; want 7, true", holder, locked)
	}
}

func TestReleaseSession(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDatastore(t, "")
	for _, typ := range []Type{Running, Candidate} {
		if err := ds.Lock(typ, "1"); err != nil {
			t.Fatal(err)
		}
	}
	if err := ds.Lock(Startup, "2"); err != nil {
		t.Fatal(err)
	}
	assertTag(t, ds.EditConfig(WithSession(ctx, "2"), Candidate, "", sw1), ncerr.TagLockDenied)

	released := ds.ReleaseSession("1")
	if diff := cmp.Diff([]Type{Running, Candidate}, released); diff != "" {
		t.Errorf("ReleaseSession() mismatch (-want +got):\n%s", diff)
	}
	if err := ds.EditConfig(WithSession(ctx, "2"), Candidate, "", sw1); err != nil {
		t.Errorf("EditConfig() after release: %v", err)
	}
	if _, locked := ds.LockedBy(Startup); !locked {
		t.Errorf("lock of session 2 was released")
	}
}

func TestSessionLockCheck(t *testing.T) {
	ops := map[string]func(ctx context.Context, ds *Datastore, target Type) error{
		"edit-config": func(ctx context.Context, ds *Datastore, target Type) error {
			return ds.EditConfig(ctx, target, "merge", sw2)
		},
		"copy-config": func(ctx context.Context, ds *Datastore, target Type) error {
			return ds.CopyConfig(ctx, target, InlineConfig, sw2)
		},
		"delete-config": func(ctx context.Context, ds *Datastore, target Type) error {
			return ds.DeleteConfig(ctx, target)
		},
	}
	tests := []struct {
		name    string
		ctx     context.Context
		target  Type
		wantTag ncerr.Tag
	}{
		{
			name:    "other session",
			ctx:     WithSession(context.Background(), "2"),
			target:  Candidate,
			wantTag: ncerr.TagLockDenied,
		},
		{
			name:    "no session id",
			ctx:     WithSession(context.Background(), ""),
			target:  Candidate,
			wantTag: ncerr.TagLockDenied,
		},
		{
			name:   "lock holder",
			ctx:    WithSession(context.Background(), "1"),
			target: Candidate,
		},
		{
			name:   "unlocked datastore",
			ctx:    WithSession(context.Background(), "2"),
			target: Startup,
		},
		{
			name:   "internal caller",
			ctx:    context.Background(),
			target: Candidate,
		},
		{
			// checked before the running datastore is refused
			name:    "delete of locked running",
			ctx:     WithSession(context.Background(), "2"),
			target:  Running,
			wantTag: ncerr.TagLockDenied,
		},
	}
	for _, tt := range tests {
		for opName, op := range ops {
			if tt.target == Running && opName != "delete-config" {
				continue
			}
			t.Run(tt.name+"/"+opName, func(t *testing.T) {
				ds, _ := newTestDatastore(t, sw1)
				for _, typ := range []Type{Running, Candidate} {
					if err := ds.Lock(typ, "1"); err != nil {
						t.Fatal(err)
					}
				}
				err := op(tt.ctx, ds, tt.target)
				if tt.wantTag != "" {
					assertTag(t, err, tt.wantTag)
					var ne *ncerr.Error
					if errors.As(err, &ne) && ne.SessionID != "1" {
						t.Errorf("lock-denied session-id = %q, want 1", ne.SessionID)
					}
					return
				}
				if err != nil {
					t.Errorf("%s failed: %v", opName, err)
				}
			})
		}
	}
}

func TestGetConfig(t *testing.T) {
	ds, _ := newTestDatastore(t, sw1)
	assertConfig(t, ds, Running, sw1)
	assertConfig(t, ds, Startup, "")
	assertConfig(t, ds, Candidate, "")
	_, err := ds.GetConfig(context.Background(), InlineConfig)
	assertTag(t, err, ncerr.TagBadElement)
}

func TestEditConfig_Candidate(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDatastore(t, "")

	if err := ds.EditConfig(ctx, Candidate, "merge", sw1); err != nil {
		t.Fatalf("EditConfig() failed: %v", err)
	}
	assertConfig(t, ds, Candidate, sw1)
	if ds.docs.get(Candidate) == nil {
		t.Errorf("candidate document was not installed")
	}

	// the applied document is a copy, the snapshot holds the previous state
	if err := ds.EditConfig(ctx, Candidate, "", sw2); err != nil {
		t.Fatalf("EditConfig() failed: %v", err)
	}
	assertConfig(t, ds, Candidate, sw2)
	if err := ds.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}
	assertConfig(t, ds, Candidate, sw1)
}

func TestEditConfig_RemoveAll(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDatastore(t, "")
	if err := ds.CopyConfig(ctx, Startup, InlineConfig, sw1); err != nil {
		t.Fatal(err)
	}
	err := ds.EditConfig(ctx, Startup, "", `<capable-switch `+ncNS+` nc:operation="delete"/>`)
	if err != nil {
		t.Fatalf("EditConfig() failed: %v", err)
	}
	assertConfig(t, ds, Startup, "")
	if ds.docs.get(Startup) != nil {
		t.Errorf("empty startup document was kept")
	}
}

func TestEditConfig_Errors(t *testing.T) {
	tests := []struct {
		name        string
		target      Type
		defop       string
		fragment    string
		wantTag     ncerr.Tag
		wantElement string
	}{
		{
			name:        "invalid target",
			target:      InlineConfig,
			fragment:    sw1,
			wantTag:     ncerr.TagBadElement,
			wantElement: "target",
		},
		{
			name:        "invalid default operation",
			target:      Candidate,
			defop:       "create",
			fragment:    sw1,
			wantTag:     ncerr.TagBadElement,
			wantElement: "default-operation",
		},
		{
			name:        "empty fragment",
			target:      Candidate,
			wantTag:     ncerr.TagBadElement,
			wantElement: "config",
		},
		{
			name:        "unparseable fragment",
			target:      Running,
			fragment:    `<capable-switch><id>`,
			wantTag:     ncerr.TagBadElement,
			wantElement: "config",
		},
		{
			name:        "foreign root",
			target:      Startup,
			fragment:    `<interfaces/>`,
			wantTag:     ncerr.TagBadElement,
			wantElement: "config",
		},
		{
			name:     "missing list key",
			target:   Candidate,
			fragment: `<capable-switch><resources><port><requested-number>1</requested-number></port></resources></capable-switch>`,
			wantTag:  ncerr.TagMissingElement,
		},
		{
			name:     "delete missing node",
			target:   Running,
			fragment: `<capable-switch ` + ncNS + `><resources><port nc:operation="delete"><name>p9</name></port></resources></capable-switch>`,
			wantTag:  ncerr.TagDataMissing,
		},
		{
			name:     "create existing node",
			target:   Running,
			fragment: `<capable-switch ` + ncNS + `><id nc:operation="create">sw3</id></capable-switch>`,
			wantTag:  ncerr.TagDataExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, _ := newTestDatastore(t, sw1)
			err := ds.EditConfig(context.Background(), tt.target, tt.defop, tt.fragment)
			assertTag(t, err, tt.wantTag)
			if tt.wantElement != "" {
				var ne *ncerr.Error
				if !errors.As(err, &ne) || ne.BadElement != tt.wantElement {
					t.Errorf("bad-element = %q, want %q", ne.BadElement, tt.wantElement)
				}
			}
			assertConfig(t, ds, Running, sw1)
			if ds.tm.Ongoing() {
				t.Errorf("transaction left open")
			}
		})
	}
}

func TestEditConfig_Running(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDatastore(t, "")

	if err := ds.EditConfig(ctx, Running, "merge", sw1); err != nil {
		t.Fatalf("EditConfig() failed: %v", err)
	}
	assertConfig(t, ds, Running, sw1)

	err := ds.EditConfig(ctx, Running, "merge", `<capable-switch><resources><port><name>p1</name></port></resources></capable-switch>`)
	if err != nil {
		t.Fatalf("EditConfig() failed: %v", err)
	}
	assertConfig(t, ds, Running, `<capable-switch><id>sw1</id><resources><port><name>p1</name></port></resources></capable-switch>`)

	if err := ds.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}
	assertConfig(t, ds, Running, sw1)
	if ds.tm.Ongoing() {
		t.Errorf("transaction left open")
	}
}

func TestEditConfig_RunningCompactFailureIsAtomic(t *testing.T) {
	running := `<capable-switch><id>sw1</id><resources><port><name>p1</name></port></resources></capable-switch>`
	ds, _ := newTestDatastore(t, running)

	// merge below delete is contradictory
	fragment := `<capable-switch ` + ncNS + `><resources><port nc:operation="delete"><name>p1</name>` +
		`<configuration nc:operation="merge"><admin-state>up</admin-state></configuration></port></resources></capable-switch>`
	err := ds.EditConfig(context.Background(), Running, "merge", fragment)
	assertTag(t, err, ncerr.TagOperationFailed)

	assertConfig(t, ds, Running, running)
	if ds.tm.Ongoing() {
		t.Errorf("transaction left open")
	}
	// the pre-edit state is kept for rollback
	if ds.snapshot.current == nil || ds.snapshot.current.ds != Running {
		t.Fatalf("no running snapshot taken")
	}
}

func TestEditConfig_RunningTransactions(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		setup    func(store *mockbackend.MockStore, txn *mockbackend.MockTxn)
		wantErr  bool
	}{
		{
			name:     "commit",
			fragment: sw2,
			setup: func(store *mockbackend.MockStore, txn *mockbackend.MockTxn) {
				gomock.InOrder(
					store.EXPECT().GetConfig(gomock.Any()).Return(sw1, nil),
					store.EXPECT().Begin(gomock.Any()).Return(txn, nil),
					txn.EXPECT().Stage(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, c *backend.Change) error {
							s, err := utils.SerializeDocument(c.Result)
							if err != nil || s != sw2 {
								t.Errorf("unexpected staged result %q", s)
							}
							return nil
						}),
					txn.EXPECT().Commit(gomock.Any()).Return(nil),
				)
			},
		},
		{
			name:     "commit failure",
			fragment: sw2,
			setup: func(store *mockbackend.MockStore, txn *mockbackend.MockTxn) {
				gomock.InOrder(
					store.EXPECT().GetConfig(gomock.Any()).Return(sw1, nil),
					store.EXPECT().Begin(gomock.Any()).Return(txn, nil),
					txn.EXPECT().Stage(gomock.Any(), gomock.Any()).Return(nil),
					txn.EXPECT().Commit(gomock.Any()).Return(errors.New("device refused")),
				)
			},
			wantErr: true,
		},
		{
			name:     "stage failure aborts",
			fragment: sw2,
			setup: func(store *mockbackend.MockStore, txn *mockbackend.MockTxn) {
				gomock.InOrder(
					store.EXPECT().GetConfig(gomock.Any()).Return(sw1, nil),
					store.EXPECT().Begin(gomock.Any()).Return(txn, nil),
					txn.EXPECT().Stage(gomock.Any(), gomock.Any()).Return(errors.New("connection reset")),
					txn.EXPECT().Abort(gomock.Any()).Return(nil),
				)
			},
			wantErr: true,
		},
		{
			name:     "compact failure aborts",
			fragment: `<capable-switch ` + ncNS + `><id nc:operation="remove"><x nc:operation="merge"/></id></capable-switch>`,
			setup: func(store *mockbackend.MockStore, txn *mockbackend.MockTxn) {
				gomock.InOrder(
					store.EXPECT().GetConfig(gomock.Any()).Return(sw1, nil),
					store.EXPECT().Begin(gomock.Any()).Return(txn, nil),
					txn.EXPECT().Abort(gomock.Any()).Return(nil),
				)
			},
			wantErr: true,
		},
		{
			name:     "begin failure",
			fragment: sw2,
			setup: func(store *mockbackend.MockStore, txn *mockbackend.MockTxn) {
				gomock.InOrder(
					store.EXPECT().GetConfig(gomock.Any()).Return(sw1, nil),
					store.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("locked")),
				)
			},
			wantErr: true,
		},
		{
			name:     "fetch failure",
			fragment: sw2,
			setup: func(store *mockbackend.MockStore, txn *mockbackend.MockTxn) {
				store.EXPECT().GetConfig(gomock.Any()).Return("", errors.New("unreachable"))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCtrl := gomock.NewController(t)
			defer mockCtrl.Finish()

			store := mockbackend.NewMockStore(mockCtrl)
			txn := mockbackend.NewMockTxn(mockCtrl)
			tt.setup(store, txn)

			ds := New(&config.DatastoreConfig{}, store)
			err := ds.EditConfig(context.Background(), Running, "merge", tt.fragment)
			if tt.wantErr {
				assertTag(t, err, ncerr.TagOperationFailed)
			} else if err != nil {
				t.Fatalf("EditConfig() failed: %v", err)
			}
			if ds.tm.Ongoing() {
				t.Errorf("transaction left open")
			}
		})
	}
}

func TestEditConfig_PortConfiguration(t *testing.T) {
	ds, store := newTestDatastore(t, `<capable-switch><id>sw1</id><resources><port><name>p1</name></port></resources></capable-switch>`)

	fragment := `<capable-switch><resources>` +
		`<port><name>p1</name><configuration><admin-state>up</admin-state></configuration></port>` +
		`<port><name>p2</name><configuration><admin-state>down</admin-state><no-receive>true</no-receive></configuration></port>` +
		`</resources></capable-switch>`
	if err := ds.EditConfig(context.Background(), Running, "merge", fragment); err != nil {
		t.Fatalf("EditConfig() failed: %v", err)
	}

	if got := store.PortConfig("p1"); len(got) != 0 {
		t.Errorf("existing port p1 got configured: %v", got)
	}
	want := map[string]string{"admin-state": "down", "no-receive": "true"}
	if diff := cmp.Diff(want, store.PortConfig("p2")); diff != "" {
		t.Errorf("port p2 configuration mismatch (-want +got):\n%s", diff)
	}
}

func TestEditConfig_PortConfigurationFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	txn := mockbackend.NewMockTxn(mockCtrl)
	store := struct {
		*mockbackend.MockStore
		*mockbackend.MockPortConfigurer
	}{
		mockbackend.NewMockStore(mockCtrl),
		mockbackend.NewMockPortConfigurer(mockCtrl),
	}
	gomock.InOrder(
		store.MockStore.EXPECT().GetConfig(gomock.Any()).Return(sw1, nil),
		store.MockStore.EXPECT().Begin(gomock.Any()).Return(txn, nil),
		txn.EXPECT().Stage(gomock.Any(), gomock.Any()).Return(nil),
		txn.EXPECT().Commit(gomock.Any()).Return(nil),
		store.MockPortConfigurer.EXPECT().SetPortConfig(gomock.Any(), "p5", "admin-state", "up").Return(errors.New("no such port")),
	)

	ds := New(&config.DatastoreConfig{}, store)
	fragment := `<capable-switch><resources><port><name>p5</name><configuration><admin-state>up</admin-state></configuration></port></resources></capable-switch>`
	err := ds.EditConfig(context.Background(), Running, "merge", fragment)
	assertTag(t, err, ncerr.TagOperationFailed)
}

func TestCopyConfig(t *testing.T) {
	tests := []struct {
		name    string
		target  Type
		source  Type
		content string
		// datastore -> expected content after the copy
		want    map[Type]string
		wantTag ncerr.Tag
	}{
		{
			name:    "inline to startup",
			target:  Startup,
			source:  InlineConfig,
			content: sw2,
			want:    map[Type]string{Startup: sw2, Running: sw1},
		},
		{
			name:    "empty inline to candidate",
			target:  Candidate,
			source:  InlineConfig,
			content: "",
			want:    map[Type]string{Candidate: ""},
		},
		{
			name:   "running to candidate",
			target: Candidate,
			source: Running,
			want:   map[Type]string{Candidate: sw1, Running: sw1},
		},
		{
			name:    "inline to running",
			target:  Running,
			source:  InlineConfig,
			content: sw2,
			want:    map[Type]string{Running: sw2},
		},
		{
			name:   "empty startup to running",
			target: Running,
			source: Startup,
			want:   map[Type]string{Running: ""},
		},
		{
			name:    "unparseable inline",
			target:  Startup,
			source:  InlineConfig,
			content: `<capable-switch>`,
			wantTag: ncerr.TagBadElement,
		},
		{
			name:    "foreign inline root",
			target:  Running,
			source:  InlineConfig,
			content: `<interfaces/>`,
			wantTag: ncerr.TagBadElement,
		},
		{
			name:    "inline target",
			target:  InlineConfig,
			source:  Running,
			wantTag: ncerr.TagBadElement,
		},
		{
			name:    "unknown source",
			target:  Startup,
			source:  Unknown,
			wantTag: ncerr.TagBadElement,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, _ := newTestDatastore(t, sw1)
			err := ds.CopyConfig(context.Background(), tt.target, tt.source, tt.content)
			if tt.wantTag != "" {
				assertTag(t, err, tt.wantTag)
				return
			}
			if err != nil {
				t.Fatalf("CopyConfig() failed: %v", err)
			}
			for typ, want := range tt.want {
				assertConfig(t, ds, typ, want)
			}
		})
	}
}

func TestCopyConfig_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDatastore(t, "")
	content := `<capable-switch xmlns="urn:onf:config:yang"><id>sw1</id><resources><port><name>p1</name></port></resources></capable-switch>`
	if err := ds.CopyConfig(ctx, Startup, InlineConfig, content); err != nil {
		t.Fatal(err)
	}
	assertConfig(t, ds, Startup, content)

	// same source and target
	if err := ds.CopyConfig(ctx, Startup, Startup, ""); err != nil {
		t.Fatal(err)
	}
	assertConfig(t, ds, Startup, content)

	if err := ds.CopyConfig(ctx, Running, Startup, ""); err != nil {
		t.Fatal(err)
	}
	assertConfig(t, ds, Running, content)
}

func TestDeleteConfig(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDatastore(t, sw1)
	if err := ds.CopyConfig(ctx, Startup, InlineConfig, sw2); err != nil {
		t.Fatal(err)
	}

	if err := ds.DeleteConfig(ctx, Startup); err != nil {
		t.Fatalf("DeleteConfig() failed: %v", err)
	}
	assertConfig(t, ds, Startup, "")
	// absent stays absent
	if err := ds.DeleteConfig(ctx, Startup); err != nil {
		t.Fatalf("second DeleteConfig() failed: %v", err)
	}
	assertConfig(t, ds, Startup, "")

	err := ds.DeleteConfig(ctx, Running)
	assertTag(t, err, ncerr.TagOperationFailed)
	var ne *ncerr.Error
	if errors.As(err, &ne) && ne.Message != "Cannot delete a running datastore." {
		t.Errorf("unexpected message %q", ne.Message)
	}
	assertConfig(t, ds, Running, sw1)

	assertTag(t, ds.DeleteConfig(ctx, InlineConfig), ncerr.TagBadElement)
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		ops    func(ds *Datastore) error
		target Type
		want   string
	}{
		{
			name: "copy-config on candidate",
			ops: func(ds *Datastore) error {
				if err := ds.CopyConfig(ctx, Candidate, InlineConfig, sw1); err != nil {
					return err
				}
				return ds.CopyConfig(ctx, Candidate, InlineConfig, sw2)
			},
			target: Candidate,
			want:   sw1,
		},
		{
			name: "copy-config onto empty candidate",
			ops: func(ds *Datastore) error {
				return ds.CopyConfig(ctx, Candidate, InlineConfig, sw2)
			},
			target: Candidate,
			want:   "",
		},
		{
			name: "delete-config",
			ops: func(ds *Datastore) error {
				if err := ds.CopyConfig(ctx, Startup, InlineConfig, sw2); err != nil {
					return err
				}
				return ds.DeleteConfig(ctx, Startup)
			},
			target: Startup,
			want:   sw2,
		},
		{
			name: "copy-config on running",
			ops: func(ds *Datastore) error {
				return ds.CopyConfig(ctx, Running, InlineConfig, sw2)
			},
			target: Running,
			want:   sw1,
		},
		{
			name: "only the last operation",
			ops: func(ds *Datastore) error {
				if err := ds.CopyConfig(ctx, Candidate, InlineConfig, sw2); err != nil {
					return err
				}
				return ds.CopyConfig(ctx, Running, InlineConfig, sw2)
			},
			target: Running,
			want:   sw1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, _ := newTestDatastore(t, sw1)
			if err := tt.ops(ds); err != nil {
				t.Fatal(err)
			}
			if err := ds.Rollback(ctx); err != nil {
				t.Fatalf("Rollback() failed: %v", err)
			}
			assertConfig(t, ds, tt.target, tt.want)

			err := ds.Rollback(ctx)
			assertTag(t, err, ncerr.TagOperationFailed)
		})
	}
}

func TestRollback_FailedRestoreKeepsData(t *testing.T) {
	ctx := context.Background()
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	store := mockbackend.NewMockStore(mockCtrl)
	txn := mockbackend.NewMockTxn(mockCtrl)
	var restored []string
	gomock.InOrder(
		// copy-config
		store.EXPECT().GetConfig(gomock.Any()).Return(sw1, nil),
		store.EXPECT().Begin(gomock.Any()).Return(txn, nil),
		txn.EXPECT().Stage(gomock.Any(), gomock.Any()).Return(nil),
		txn.EXPECT().Commit(gomock.Any()).Return(nil),
		// failing rollback
		store.EXPECT().GetConfig(gomock.Any()).Return(sw2, nil),
		store.EXPECT().Begin(gomock.Any()).Return(txn, nil),
		txn.EXPECT().Stage(gomock.Any(), gomock.Any()).Return(nil),
		txn.EXPECT().Commit(gomock.Any()).Return(errors.New("device busy")),
		// retried rollback
		store.EXPECT().GetConfig(gomock.Any()).Return(sw2, nil),
		store.EXPECT().Begin(gomock.Any()).Return(txn, nil),
		txn.EXPECT().Stage(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c *backend.Change) error {
				s, err := utils.SerializeDocument(c.Result)
				if err != nil {
					return err
				}
				restored = append(restored, s)
				return nil
			}),
		txn.EXPECT().Commit(gomock.Any()).Return(nil),
	)

	ds := New(&config.DatastoreConfig{}, store)
	if err := ds.CopyConfig(ctx, Running, InlineConfig, sw2); err != nil {
		t.Fatalf("CopyConfig() failed: %v", err)
	}

	err := ds.Rollback(ctx)
	assertTag(t, err, ncerr.TagOperationFailed)
	if !ds.snapshot.has() {
		t.Fatalf("rollback data dropped by a failed rollback")
	}

	if err := ds.Rollback(ctx); err != nil {
		t.Fatalf("retried Rollback() failed: %v", err)
	}
	if diff := cmp.Diff([]string{sw1}, restored); diff != "" {
		t.Errorf("restored running mismatch (-want +got):\n%s", diff)
	}
	if ds.snapshot.has() {
		t.Errorf("rollback data kept after a successful rollback")
	}
	if ds.tm.Ongoing() {
		t.Errorf("transaction left open")
	}
}

func TestRollback_NoData(t *testing.T) {
	ds, _ := newTestDatastore(t, sw1)
	err := ds.Rollback(context.Background())
	assertTag(t, err, ncerr.TagOperationFailed)
	var ne *ncerr.Error
	if errors.As(err, &ne) && ne.Message != "No data to rollback" {
		t.Errorf("unexpected message %q", ne.Message)
	}
}

func TestInitTeardown(t *testing.T) {
	tests := []struct {
		name         string
		startup      *string
		copyToRun    bool
		wantStartup  string
		wantRunning  string
		editStartup  string
		wantFileRoot string
	}{
		{
			name:         "no startup file",
			wantFileRoot: "",
		},
		{
			name:         "startup file",
			startup:      pointer.ToString("<?xml version=\"1.0\"?>\n<capable-switch>\n  <id>sw1</id>\n</capable-switch>\n"),
			wantStartup:  sw1,
			wantFileRoot: sw1,
		},
		{
			name:         "startup file edited",
			startup:      pointer.ToString(sw1),
			wantStartup:  sw1,
			editStartup:  sw2,
			wantFileRoot: sw2,
		},
		{
			name:         "unparseable startup file",
			startup:      pointer.ToString("<capable-switch"),
			wantFileRoot: "",
		},
		{
			name:         "copy startup to running",
			startup:      pointer.ToString(sw2),
			copyToRun:    true,
			wantStartup:  sw2,
			wantRunning:  sw2,
			wantFileRoot: sw2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			file := filepath.Join(t.TempDir(), "startup.xml")
			if tt.startup != nil {
				if err := os.WriteFile(file, []byte(*tt.startup), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			cfg := &config.DatastoreConfig{
				StartupFile:          file,
				CopyStartupToRunning: pointer.ToBool(tt.copyToRun),
			}
			ds := New(cfg, backend.NewMemoryStore())
			if err := ds.Init(ctx); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			assertConfig(t, ds, Startup, tt.wantStartup)
			assertConfig(t, ds, Candidate, "")
			assertConfig(t, ds, Running, tt.wantRunning)
			if ds.snapshot.has() {
				t.Errorf("snapshot available right after Init()")
			}
			if ds.WasChanged() {
				t.Errorf("WasChanged() = true")
			}

			if tt.editStartup != "" {
				if err := ds.EditConfig(ctx, Startup, "merge", tt.editStartup); err != nil {
					t.Fatal(err)
				}
			}
			if err := ds.Teardown(ctx); err != nil {
				t.Fatalf("Teardown() failed: %v", err)
			}

			// reload what got written
			reloaded := New(&config.DatastoreConfig{StartupFile: file, CopyStartupToRunning: pointer.ToBool(false)}, backend.NewMemoryStore())
			if err := reloaded.Init(ctx); err != nil {
				t.Fatalf("Init() of written file failed: %v", err)
			}
			assertConfig(t, reloaded, Startup, tt.wantFileRoot)

			b, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			if tt.wantFileRoot == "" && len(b) != 0 {
				t.Errorf("startup file not truncated: %q", b)
			}
			if tt.wantFileRoot != "" && !strings.HasPrefix(string(b), "<?xml") {
				t.Errorf("startup file lacks the xml declaration: %q", b)
			}
		})
	}
}

func TestTeardown_ReleasesState(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDatastore(t, sw1)
	if err := ds.Lock(Running, "1"); err != nil {
		t.Fatal(err)
	}
	if err := ds.CopyConfig(ctx, Candidate, InlineConfig, sw2); err != nil {
		t.Fatal(err)
	}
	if err := ds.Teardown(ctx); err != nil {
		t.Fatal(err)
	}
	if _, locked := ds.LockedBy(Running); locked {
		t.Errorf("lock survived teardown")
	}
	if ds.snapshot.has() {
		t.Errorf("snapshot survived teardown")
	}
	assertConfig(t, ds, Candidate, "")
}
