package scrapligo

import (
	"context"
	"fmt"

	"github.com/beevik/etree"
	scraplinetconf "github.com/scrapli/scrapligo/driver/netconf"
	"github.com/scrapli/scrapligo/driver/options"
	"github.com/scrapli/scrapligo/util"
	"github.com/sethvargo/go-retry"
	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/ofc-server/pkg/backend/netconf/types"
	"github.com/iptecharch/ofc-server/pkg/config"
)

const dataXpath = "/rpc-reply/data"

type ScrapligoNetconfTarget struct {
	driver *scraplinetconf.Driver
}

// NewScrapligoNetconfTarget inits a new ScrapligoNetconfTarget which is already connected to the target node.
// Opening the session is retried with a fibonacci backoff starting at cfg.ConnectRetry.
func NewScrapligoNetconfTarget(ctx context.Context, cfg *config.NetconfConfig) (*ScrapligoNetconfTarget, error) {
	opts := []util.Option{
		options.WithAuthNoStrictKey(),
		options.WithNetconfForceSelfClosingTags(),
		options.WithTransportType("standard"),
		options.WithPort(cfg.Port),
		options.WithTimeoutOps(cfg.Timeout),
	}

	if cfg.Credentials != nil {
		opts = append(opts,
			options.WithAuthUsername(cfg.Credentials.Username),
			options.WithAuthPassword(cfg.Credentials.Password),
		)
	}
	if cfg.PreferredNCVersion != "" {
		opts = append(opts,
			options.WithNetconfPreferredVersion(cfg.PreferredNCVersion),
		)
	}
	// init the netconf driver
	d, err := scraplinetconf.NewDriver(cfg.Address, opts...)
	if err != nil {
		return nil, err
	}

	b := retry.WithMaxRetries(cfg.ConnectMaxAttempts-1, retry.NewFibonacci(cfg.ConnectRetry))
	err = retry.Do(ctx, b, func(_ context.Context) error {
		if err := d.Open(); err != nil {
			log.Warnf("failed connecting to %s:%d: %v", cfg.Address, cfg.Port, err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Infof("connected to %s:%d", cfg.Address, cfg.Port)

	return &ScrapligoNetconfTarget{
		driver: d,
	}, nil
}

func (snt *ScrapligoNetconfTarget) Close() error {
	return snt.driver.Close()
}

// EditConfig transforms the generalized EditConfig into the scrapligo implementation
func (snt *ScrapligoNetconfTarget) EditConfig(target string, config string) (*types.NetconfResponse, error) {
	// add the <config/> tag to the provided config data
	xdoc := fmt.Sprintf("<config>%s</config>", config)

	resp, err := snt.driver.EditConfig(target, xdoc)
	if err != nil {
		return nil, err
	}
	if resp.Failed != nil {
		return nil, resp.Failed
	}
	return parseReply(resp.Result)
}

// GetConfig returns the first element below <data>. The response document has
// no root when the device returned no data.
func (snt *ScrapligoNetconfTarget) GetConfig(source string, filter string) (*types.NetconfResponse, error) {
	resp, err := snt.driver.GetConfig(source, createFilterOption(filter), options.WithNetconfForceSelfClosingTags())
	if err != nil {
		return nil, err
	}
	if resp.Failed != nil {
		return nil, resp.Failed
	}

	x := etree.NewDocument()
	err = x.ReadFromString(resp.Result)
	if err != nil {
		return nil, err
	}

	data := x.FindElement(dataXpath)
	if data == nil {
		return nil, fmt.Errorf("unable to find %q in %s", dataXpath, resp.Result)
	}
	result := etree.NewDocument()
	if children := data.ChildElements(); len(children) > 0 {
		result.SetRoot(children[0].Copy())
	}
	return types.NewNetconfResponse(result), nil
}

func (snt *ScrapligoNetconfTarget) Commit() error {
	resp, err := snt.driver.Commit()
	if err != nil {
		return err
	}
	if resp.Failed != nil {
		return resp.Failed
	}
	return nil
}

func (snt *ScrapligoNetconfTarget) Discard() error {
	resp, err := snt.driver.Discard()
	if err != nil {
		return err
	}
	if resp.Failed != nil {
		return resp.Failed
	}
	return nil
}

func (snt *ScrapligoNetconfTarget) Lock(target string) (*types.NetconfResponse, error) {
	resp, err := snt.driver.Lock(target)
	if err != nil {
		return nil, err
	}
	if resp.Failed != nil {
		return nil, resp.Failed
	}
	return parseReply(resp.Result)
}

func (snt *ScrapligoNetconfTarget) Unlock(target string) (*types.NetconfResponse, error) {
	resp, err := snt.driver.Unlock(target)
	if err != nil {
		return nil, err
	}
	if resp.Failed != nil {
		return nil, resp.Failed
	}
	return parseReply(resp.Result)
}

func parseReply(s string) (*types.NetconfResponse, error) {
	x := etree.NewDocument()
	err := x.ReadFromString(s)
	if err != nil {
		return nil, err
	}
	return types.NewNetconfResponse(x), nil
}

// createFilterOption is a helper function that populates the Filter field for the internal Scrapligo RPC instantiation
func createFilterOption(filter string) util.Option {
	return func(x interface{}) error {
		oo, ok := x.(*scraplinetconf.OperationOptions)

		if !ok {
			return util.ErrIgnoredOption
		}
		oo.Filter = filter
		return nil
	}
}
