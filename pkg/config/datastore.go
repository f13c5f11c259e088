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

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/mitchellh/go-homedir"
)

const (
	WithDefaultsExplicit  = "explicit"
	WithDefaultsTrim      = "trim"
	WithDefaultsReportAll = "report-all"
)

type DatastoreConfig struct {
	// file the startup datastore is read from at init and written to at teardown
	StartupFile string `yaml:"startup-file,omitempty" json:"startup-file,omitempty"`
	// with-defaults basic mode: explicit, trim or report-all
	WithDefaults string `yaml:"with-defaults,omitempty" json:"with-defaults,omitempty"`
	// apply the startup datastore to running at init
	CopyStartupToRunning *bool `yaml:"copy-startup-to-running,omitempty" json:"copy-startup-to-running,omitempty"`
}

func (d *DatastoreConfig) validateSetDefaults() error {
	if d.StartupFile == "" {
		d.StartupFile = defaultStartupFile
	}
	f, err := homedir.Expand(d.StartupFile)
	if err != nil {
		return err
	}
	d.StartupFile = f

	switch d.WithDefaults {
	case "":
		d.WithDefaults = defaultWithDefaults
	case WithDefaultsExplicit, WithDefaultsTrim, WithDefaultsReportAll:
	default:
		return fmt.Errorf("unknown with-defaults mode %q", d.WithDefaults)
	}

	if d.CopyStartupToRunning == nil {
		d.CopyStartupToRunning = pointer.ToBool(false)
	}
	return nil
}

const (
	BackendTypeMemory  = "memory"
	BackendTypeNetconf = "netconf"
	BackendTypeRedis   = "redis"

	ncCommitDatastoreRunning   = "running"
	ncCommitDatastoreCandidate = "candidate"
)

type BackendConfig struct {
	// one of: memory, netconf, redis
	Type    string         `yaml:"type,omitempty" json:"type,omitempty"`
	Netconf *NetconfConfig `yaml:"netconf,omitempty" json:"netconf,omitempty"`
	Redis   *RedisConfig   `yaml:"redis,omitempty" json:"redis,omitempty"`
}

type NetconfConfig struct {
	Address     string `yaml:"address,omitempty" json:"address,omitempty"`
	Port        int    `yaml:"port,omitempty" json:"port,omitempty"`
	Credentials *Creds `yaml:"credentials,omitempty" json:"credentials,omitempty"`
	// sets the preferred NC version: 1.0 or 1.1
	PreferredNCVersion string `yaml:"preferred-nc-version,omitempty" json:"preferred-nc-version,omitempty"`
	// defines whether to commit to running or use a candidate.
	CommitDatastore string `yaml:"commit-datastore,omitempty" json:"commit-datastore,omitempty"`
	// if true, the OF-Config namespace is set on the edit-config payloads
	IncludeNS *bool `yaml:"include-ns,omitempty" json:"include-ns,omitempty"`
	// ConnectRetry is the initial backoff between connection attempts
	ConnectRetry time.Duration `yaml:"connect-retry,omitempty" json:"connect-retry,omitempty"`
	// ConnectMaxAttempts bounds the number of connection attempts
	ConnectMaxAttempts uint64 `yaml:"connect-max-attempts,omitempty" json:"connect-max-attempts,omitempty"`
	// Timeout
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

type Creds struct {
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
}

type RedisConfig struct {
	Address  string `yaml:"address,omitempty" json:"address,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
	DB       int    `yaml:"db,omitempty" json:"db,omitempty"`
	// key holding the running configuration
	Key string `yaml:"key,omitempty" json:"key,omitempty"`
}

func (b *BackendConfig) validateSetDefaults() error {
	switch b.Type {
	case "":
		b.Type = defaultBackendType
		return nil
	case BackendTypeMemory:
		return nil
	case BackendTypeNetconf:
		if b.Netconf == nil {
			return errors.New("missing netconf backend config")
		}
		return b.Netconf.validateSetDefaults()
	case BackendTypeRedis:
		if b.Redis == nil {
			b.Redis = &RedisConfig{}
		}
		return b.Redis.validateSetDefaults()
	default:
		return fmt.Errorf("unknown backend type: %q", b.Type)
	}
}

func (n *NetconfConfig) validateSetDefaults() error {
	if n.Address == "" {
		return errors.New("missing netconf backend address")
	}
	if n.Port == 0 {
		n.Port = defaultNetconfPort
	}
	switch n.CommitDatastore {
	case "":
		n.CommitDatastore = ncCommitDatastoreCandidate
	case ncCommitDatastoreRunning:
	case ncCommitDatastoreCandidate:
	default:
		return fmt.Errorf("unknown commit-datastore: %s. Must be one of %s, %s",
			n.CommitDatastore, ncCommitDatastoreCandidate, ncCommitDatastoreRunning)
	}
	if n.IncludeNS == nil {
		n.IncludeNS = pointer.ToBool(true)
	}
	if n.ConnectRetry < defaultConnectRetry {
		n.ConnectRetry = defaultConnectRetry
	}
	if n.ConnectMaxAttempts == 0 {
		n.ConnectMaxAttempts = defaultConnectMaxAttempts
	}
	if n.Timeout <= 0 {
		n.Timeout = defaultTimeout
	}
	return nil
}

func (r *RedisConfig) validateSetDefaults() error {
	if r.Address == "" {
		r.Address = defaultRedisAddress
	}
	if r.Key == "" {
		r.Key = defaultRedisKey
	}
	if r.DB < 0 {
		return fmt.Errorf("invalid redis db %d", r.DB)
	}
	return nil
}
