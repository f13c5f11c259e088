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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/iptecharch/ofc-server/pkg/backend"
	"github.com/iptecharch/ofc-server/pkg/config"
	"github.com/iptecharch/ofc-server/pkg/datastore"
	"github.com/iptecharch/ofc-server/pkg/server"
)

var configFile string
var debug bool
var trace bool
var jsonLog bool
var stop bool

var versionFlag bool
var version = "dev"
var commit = ""

func main() {
	pflag.StringVarP(&configFile, "config", "c", "", "config file path")
	pflag.BoolVarP(&debug, "debug", "d", false, "set log level to DEBUG")
	pflag.BoolVarP(&trace, "trace", "t", false, "set log level to TRACE")
	pflag.BoolVarP(&jsonLog, "json", "j", false, "log in JSON format")
	pflag.BoolVarP(&versionFlag, "version", "v", false, "print version")
	pflag.Parse()

	if versionFlag {
		fmt.Println(version + "-" + commit)
		return
	}

	if jsonLog {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	log.SetLevel(log.InfoLevel)
	if debug {
		log.SetLevel(log.DebugLevel)
	}
	if trace {
		log.SetLevel(log.TraceLevel)
		log.SetReportCaller(true)
	}
	log.Infof("ofc-server bootstrap version=%s commit=%s log-level=%s", version, commit, log.GetLevel())

	ctx := context.Background()
START:
	cfg, err := config.New(configFile)
	if err != nil {
		log.Errorf("failed to read config: %v", err)
		os.Exit(1)
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.Errorf("failed to marshal config: %v", err)
		os.Exit(1)
	}
	log.Infof("read config:\n%s", string(b))

	ctx, cancel := context.WithCancel(ctx)
	setupCloseHandler(cancel)

	err = run(ctx, cfg)
	if err != nil {
		if stop {
			return
		}
		log.Errorf("failed to run server: %v", err)
		cancel()
		time.Sleep(time.Second)
		goto START
	}
}

// run serves until ctx is canceled. The startup datastore is written back
// whatever the outcome.
func run(ctx context.Context, cfg *config.Config) error {
	store, err := backend.New(ctx, cfg.Backend)
	if err != nil {
		return fmt.Errorf("failed to create %s backend: %w", cfg.Backend.Type, err)
	}
	ds := datastore.New(cfg.Datastore, store)
	if err := ds.Init(ctx); err != nil {
		store.Close()
		return err
	}
	defer func() {
		if err := ds.Teardown(context.Background()); err != nil {
			log.Errorf("datastore teardown: %v", err)
		}
	}()

	s, err := server.New(ctx, cfg, ds)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer s.Stop()
	return s.Serve(ctx)
}

func setupCloseHandler(cancelFn context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-c
		fmt.Fprintf(os.Stderr, "\nreceived signal '%s'. terminating...\n", sig.String())
		stop = true
		cancelFn()
	}()
}
