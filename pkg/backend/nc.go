package backend

import (
	"context"
	"fmt"

	"github.com/AlekSi/pointer"
	"github.com/beevik/etree"
	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/ofc-server/pkg/backend/netconf"
	"github.com/iptecharch/ofc-server/pkg/backend/netconf/driver/scrapligo"
	"github.com/iptecharch/ofc-server/pkg/config"
	"github.com/iptecharch/ofc-server/pkg/utils"
)

const ncSourceRunning = "running"

// ncStore keeps the running configuration on a NETCONF speaking switch.
type ncStore struct {
	driver netconf.Driver
	cfg    *config.NetconfConfig
}

func newNCStore(ctx context.Context, cfg *config.NetconfConfig) (*ncStore, error) {
	d, err := scrapligo.NewScrapligoNetconfTarget(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newNCStoreWithDriver(d, cfg), nil
}

func newNCStoreWithDriver(d netconf.Driver, cfg *config.NetconfConfig) *ncStore {
	return &ncStore{
		driver: d,
		cfg:    cfg,
	}
}

func (s *ncStore) filter() string {
	doc := etree.NewDocument()
	root := doc.CreateElement(utils.RootElement)
	root.CreateAttr("xmlns", utils.OFConfigNS)
	f, _ := doc.WriteToString()
	return f
}

func (s *ncStore) GetConfig(_ context.Context) (string, error) {
	resp, err := s.driver.GetConfig(ncSourceRunning, s.filter())
	if err != nil {
		return "", err
	}
	return resp.DocAsString()
}

// Begin locks the datastore changes are committed to.
func (s *ncStore) Begin(_ context.Context) (Txn, error) {
	_, err := s.driver.Lock(s.cfg.CommitDatastore)
	if err != nil {
		return nil, fmt.Errorf("failed locking %s: %w", s.cfg.CommitDatastore, err)
	}
	return &ncTxn{store: s}, nil
}

func (s *ncStore) Close() error {
	return s.driver.Close()
}

type ncTxn struct {
	store  *ncStore
	staged bool
	closed bool
}

// payload builds the edit-config content for c. The NETCONF default-operation
// is carried by the root element: merge is the protocol default, replace is
// set as root operation, none is sent as a replace of the resulting
// configuration since unmarked nodes would otherwise be merged.
func (t *ncTxn) payload(c *Change) (string, error) {
	var doc *etree.Document
	switch {
	case c.DefaultOperation == utils.XMLOperationNone || !utils.HasContent(c.Edit):
		var root *etree.Element
		if c.Result != nil {
			root = c.Result.Root()
		}
		doc = replaceDocument(root)
	default:
		doc = utils.CopyDocument(c.Edit)
		if _, explicit := utils.GetXMLOperation(doc.Root()); !explicit && c.DefaultOperation == utils.XMLOperationReplace {
			utils.AddXMLOperation(doc.Root(), utils.XMLOperationReplace, true, false)
		}
	}
	if pointer.GetBool(t.store.cfg.IncludeNS) && doc.Root().SelectAttr("xmlns") == nil {
		doc.Root().CreateAttr("xmlns", utils.OFConfigNS)
	}
	return utils.SerializeDocument(doc)
}

// replaceDocument builds the fragment replacing the configuration with root,
// or removing it if root is nil.
func replaceDocument(root *etree.Element) *etree.Document {
	doc := etree.NewDocument()
	if root == nil {
		r := doc.CreateElement(utils.RootElement)
		utils.AddXMLOperation(r, utils.XMLOperationRemove, true, true)
		return doc
	}
	r := root.Copy()
	utils.StripXMLOperations(r)
	utils.AddXMLOperation(r, utils.XMLOperationReplace, true, false)
	doc.SetRoot(r)
	return doc
}

func (t *ncTxn) Stage(_ context.Context, c *Change) error {
	if t.closed {
		return ErrTxnClosed
	}
	xdoc, err := t.payload(c)
	if err != nil {
		return err
	}
	log.Debugf("netconf edit-config %s:\n%s", t.store.cfg.CommitDatastore, xdoc)
	_, err = t.store.driver.EditConfig(t.store.cfg.CommitDatastore, xdoc)
	if err != nil {
		return err
	}
	t.staged = true
	return nil
}

func (t *ncTxn) Commit(ctx context.Context) error {
	if t.closed {
		return ErrTxnClosed
	}
	if t.store.cfg.CommitDatastore == ncSourceRunning || !t.staged {
		t.closed = true
		return t.unlock()
	}
	log.Infof("committing changes on %s", t.store.cfg.Address)
	err := t.store.driver.Commit()
	if err != nil {
		log.Errorf("failed commit: %v", err)
		t.closed = true
		if err2 := t.store.driver.Discard(); err2 != nil {
			log.Errorf("failed with %v while discarding pending changes after error %v", err2, err)
		}
		if err2 := t.unlock(); err2 != nil {
			log.Error(err2)
		}
		return err
	}
	t.closed = true
	return t.unlock()
}

func (t *ncTxn) Abort(_ context.Context) error {
	if t.closed {
		return ErrTxnClosed
	}
	t.closed = true
	if t.store.cfg.CommitDatastore != ncSourceRunning {
		if err := t.store.driver.Discard(); err != nil {
			log.Errorf("failed discarding pending changes: %v", err)
		}
	}
	return t.unlock()
}

func (t *ncTxn) unlock() error {
	_, err := t.store.driver.Unlock(t.store.cfg.CommitDatastore)
	if err != nil {
		return fmt.Errorf("failed unlocking %s: %w", t.store.cfg.CommitDatastore, err)
	}
	return nil
}
