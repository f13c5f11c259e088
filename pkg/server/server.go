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

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/openconfig/gnmi/proto/gnmi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	_ "google.golang.org/grpc/encoding/gzip" // Install the gzip compressor
	"google.golang.org/grpc/status"

	"github.com/iptecharch/ofc-server/pkg/config"
	"github.com/iptecharch/ofc-server/pkg/datastore"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	config *config.Config
	ready  *atomic.Bool

	srv *grpc.Server
	gnmi.UnimplementedGNMIServer

	// serves /metrics
	router *mux.Router
	reg    *prometheus.Registry
	// serves the session API
	restRouter *mux.Router

	metrics *operationMetrics

	ds *datastore.Datastore
}

func New(ctx context.Context, c *config.Config, ds *datastore.Datastore) (*Server, error) {
	var s = &Server{
		config:     c,
		ready:      &atomic.Bool{},
		router:     mux.NewRouter(),
		reg:        prometheus.NewRegistry(),
		restRouter: mux.NewRouter(),
		metrics:    newOperationMetrics(),
		ds:         ds,
	}
	s.metrics.register(s.reg)

	// gRPC server options
	opts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(c.GRPCServer.MaxRecvMsgSize),
	}
	// unary interceptors
	unaryInterceptors := []grpc.UnaryServerInterceptor{
		s.readyInterceptor,
		s.timeoutInterceptor,
	}

	if c.Prometheus != nil {
		grpcMetrics := grpc_prometheus.NewServerMetrics()
		opts = append(opts,
			grpc.StreamInterceptor(grpcMetrics.StreamServerInterceptor()),
		)

		unaryInterceptors = append(unaryInterceptors, grpcMetrics.UnaryServerInterceptor())
		s.reg.MustRegister(grpcMetrics)
	}

	opts = append(opts, grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(unaryInterceptors...)))

	if c.GRPCServer.TLS != nil {
		tlsCfg, err := c.GRPCServer.TLS.NewConfig(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.Creds(credentials.NewTLS(tlsCfg)))
	}

	s.srv = grpc.NewServer(opts...)
	gnmi.RegisterGNMIServer(s.srv, s)

	s.registerRESTRoutes()
	return s, nil
}

// Serve runs the gRPC server and, if configured, the session API and the
// metrics endpoint until ctx is canceled or one of them fails.
func (s *Server) Serve(ctx context.Context) error {
	l, err := net.Listen("tcp", s.config.GRPCServer.Address)
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Infof("starting gNMI server on %s", s.config.GRPCServer.Address)
		return s.srv.Serve(l)
	})
	httpServers := []*http.Server{}
	if s.config.RESTServer != nil {
		httpServers = append(httpServers, s.newHTTPServer(s.config.RESTServer.Address, s.restRouter))
	}
	if s.config.Prometheus != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
		s.reg.MustRegister(collectors.NewGoCollector())
		s.reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		httpServers = append(httpServers, s.newHTTPServer(s.config.Prometheus.Address, s.router))
	}
	for _, hs := range httpServers {
		hs := hs
		eg.Go(func() error {
			log.Infof("starting HTTP server on %s", hs.Addr)
			err := hs.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})
	}
	eg.Go(func() error {
		<-ctx.Done()
		s.ready.Store(false)
		s.srv.GracefulStop()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, hs := range httpServers {
			if err := hs.Shutdown(sctx); err != nil {
				log.Errorf("HTTP server %s shutdown: %v", hs.Addr, err)
			}
		}
		return nil
	})

	s.ready.Store(true)
	log.Infof("ready...")
	return eg.Wait()
}

func (s *Server) newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}
}

func (s *Server) Stop() {
	s.ready.Store(false)
	s.srv.Stop()
}

func (s *Server) timeoutInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	ctx, cfn := context.WithTimeout(ctx, s.config.GRPCServer.RPCTimeout)
	defer cfn()
	return handler(ctx, req)
}

func (s *Server) readyInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	if !s.ready.Load() {
		return nil, status.Error(codes.Unavailable, "not ready")
	}
	return handler(ctx, req)
}
