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
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
	"sigs.k8s.io/controller-runtime/pkg/certwatcher"
)

type Config struct {
	GRPCServer *GRPCServer      `yaml:"grpc-server,omitempty" json:"grpc-server,omitempty"`
	RESTServer *RESTServer      `yaml:"rest-server,omitempty" json:"rest-server,omitempty"`
	Prometheus *PromConfig      `yaml:"prometheus,omitempty" json:"prometheus,omitempty"`
	Datastore  *DatastoreConfig `yaml:"datastore,omitempty" json:"datastore,omitempty"`
	Backend    *BackendConfig   `yaml:"backend,omitempty" json:"backend,omitempty"`
}

type TLS struct {
	CA         string `yaml:"ca,omitempty" json:"ca,omitempty"`
	Cert       string `yaml:"cert,omitempty" json:"cert,omitempty"`
	Key        string `yaml:"key,omitempty" json:"key,omitempty"`
	SkipVerify bool   `yaml:"skip-verify,omitempty" json:"skip-verify,omitempty"`
}

func New(file string) (*Config, error) {
	c := new(Config)
	if file != "" {
		file, err := homedir.Expand(file)
		if err != nil {
			return nil, err
		}
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}

		err = yaml.Unmarshal(b, c)
		if err != nil {
			return nil, err
		}
	}
	err := c.validateSetDefaults()
	return c, err
}

func (c *Config) validateSetDefaults() error {
	if c.GRPCServer == nil {
		c.GRPCServer = &GRPCServer{}
	}
	err := c.GRPCServer.validateSetDefaults()
	if err != nil {
		return err
	}
	if c.RESTServer != nil {
		if err = c.RESTServer.validateSetDefaults(); err != nil {
			return err
		}
	}
	if c.Prometheus != nil {
		if err = c.Prometheus.validateSetDefaults(); err != nil {
			return err
		}
	}
	if c.Datastore == nil {
		c.Datastore = &DatastoreConfig{}
	}
	if err = c.Datastore.validateSetDefaults(); err != nil {
		return err
	}
	if c.Backend == nil {
		c.Backend = &BackendConfig{}
	}
	return c.Backend.validateSetDefaults()
}

type GRPCServer struct {
	Address        string        `yaml:"address,omitempty" json:"address,omitempty"`
	TLS            *TLS          `yaml:"tls,omitempty" json:"tls,omitempty"`
	MaxRecvMsgSize int           `yaml:"max-recv-msg-size,omitempty" json:"max-recv-msg-size,omitempty"`
	RPCTimeout     time.Duration `yaml:"rpc-timeout,omitempty" json:"rpc-timeout,omitempty"`
}

func (g *GRPCServer) validateSetDefaults() error {
	if g.Address == "" {
		g.Address = defaultGRPCAddress
	}
	if g.MaxRecvMsgSize <= 0 {
		g.MaxRecvMsgSize = defaultMaxRecvMsgSize
	}
	if g.RPCTimeout <= 0 {
		g.RPCTimeout = defaultRPCTimeout
	}
	return nil
}

// RESTServer enables the HTTP session API.
type RESTServer struct {
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
}

func (r *RESTServer) validateSetDefaults() error {
	if r.Address == "" {
		r.Address = defaultRESTAddress
	}
	_, _, err := net.SplitHostPort(r.Address)
	return err
}

type PromConfig struct {
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
}

func (p *PromConfig) validateSetDefaults() error {
	if p.Address == "" {
		p.Address = defaultPrometheusAddress
	}
	_, _, err := net.SplitHostPort(p.Address)
	return err
}

func (t *TLS) NewConfig(ctx context.Context) (*tls.Config, error) {
	tlsCfg := &tls.Config{InsecureSkipVerify: t.SkipVerify}
	if t.CA != "" {
		ca, err := os.ReadFile(t.CA)
		if err != nil {
			return nil, fmt.Errorf("failed to read client CA cert: %w", err)
		}
		if len(ca) != 0 {
			caCertPool := x509.NewCertPool()
			caCertPool.AppendCertsFromPEM(ca)
			tlsCfg.ClientCAs = caCertPool
			tlsCfg.ClientAuth = tls.RequireAndVerifyClientCert
		}
	}

	if t.Cert != "" && t.Key != "" {
		certWatcher, err := certwatcher.New(t.Cert, t.Key)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := certWatcher.Start(ctx); err != nil {
				log.Errorf("certificate watcher error: %v", err)
			}
		}()
		tlsCfg.GetCertificate = certWatcher.GetCertificate
	}
	return tlsCfg, nil
}
