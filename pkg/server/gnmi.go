package server

import (
	"context"
	"time"

	"github.com/openconfig/gnmi/proto/gnmi"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/iptecharch/ofc-server/pkg/datastore"
	"github.com/iptecharch/ofc-server/pkg/ncerr"
)

const (
	gnmiVersion = "0.8.0"
	// metadata key carrying the session id of Set requests
	sessionMetadataKey = "x-session-id"
)

var ofConfigModel = &gnmi.ModelData{
	Name:         "of-config",
	Organization: "Open Networking Foundation",
	Version:      "1.2",
}

func (s *Server) Capabilities(ctx context.Context, req *gnmi.CapabilityRequest) (*gnmi.CapabilityResponse, error) {
	return &gnmi.CapabilityResponse{
		SupportedModels:    []*gnmi.ModelData{ofConfigModel},
		SupportedEncodings: []gnmi.Encoding{gnmi.Encoding_ASCII},
		GNMIVersion:        gnmiVersion,
	}, nil
}

// Get returns the XML serialization of the datastore named by the prefix
// target as a single ASCII value at the root path.
func (s *Server) Get(ctx context.Context, req *gnmi.GetRequest) (*gnmi.GetResponse, error) {
	log.Debugf("Received GetRequest: %v", req)
	start := time.Now()
	// JSON is the zero value, taken as unset
	if enc := req.GetEncoding(); enc != gnmi.Encoding_ASCII && enc != gnmi.Encoding_JSON {
		return nil, status.Errorf(codes.InvalidArgument, "unsupported encoding %s", enc)
	}
	for _, p := range req.GetPath() {
		if len(p.GetElem()) > 0 {
			return nil, status.Errorf(codes.InvalidArgument, "only the root path is supported")
		}
	}
	ds, err := prefixDatastore(req.GetPrefix(), "source")
	if err != nil {
		return nil, err
	}
	cfg, err := s.ds.GetConfig(ctx, ds)
	s.metrics.observe("get-config", ds.String(), start, err)
	if err != nil {
		return nil, err
	}
	return &gnmi.GetResponse{
		Notification: []*gnmi.Notification{
			{
				Timestamp: time.Now().UnixNano(),
				Prefix:    req.GetPrefix(),
				Update: []*gnmi.Update{
					{
						Path: &gnmi.Path{},
						Val:  &gnmi.TypedValue{Value: &gnmi.TypedValue_AsciiVal{AsciiVal: cfg}},
					},
				},
			},
		},
	}, nil
}

// Set maps a root delete to delete-config, a root replace to copy-config of
// the value and an update to a merge edit-config. A request carries a single
// operation, each datastore operation commits on its own.
func (s *Server) Set(ctx context.Context, req *gnmi.SetRequest) (*gnmi.SetResponse, error) {
	log.Debugf("Received SetRequest: %v", req)
	if n := len(req.GetDelete()) + len(req.GetReplace()) + len(req.GetUpdate()); n > 1 {
		return nil, status.Errorf(codes.InvalidArgument, "a SetRequest carries a single operation, got %d", n)
	}
	ds, err := prefixDatastore(req.GetPrefix(), "target")
	if err != nil {
		return nil, err
	}
	ctx = datastore.WithSession(ctx, metadataSession(ctx))

	rsp := &gnmi.SetResponse{Prefix: req.GetPrefix()}
	for _, p := range req.GetDelete() {
		if len(p.GetElem()) > 0 {
			return nil, status.Errorf(codes.InvalidArgument, "only the root path can be deleted")
		}
		start := time.Now()
		err := s.ds.DeleteConfig(ctx, ds)
		s.metrics.observe("delete-config", ds.String(), start, err)
		if err != nil {
			return nil, err
		}
		rsp.Response = append(rsp.Response, &gnmi.UpdateResult{Path: p, Op: gnmi.UpdateResult_DELETE})
	}
	for _, upd := range req.GetReplace() {
		if len(upd.GetPath().GetElem()) > 0 {
			return nil, status.Errorf(codes.InvalidArgument, "only the root path can be replaced")
		}
		content, err := asciiValue(upd)
		if err != nil {
			return nil, err
		}
		start := time.Now()
		err = s.ds.CopyConfig(ctx, ds, datastore.InlineConfig, content)
		s.metrics.observe("copy-config", ds.String(), start, err)
		if err != nil {
			return nil, err
		}
		rsp.Response = append(rsp.Response, &gnmi.UpdateResult{Path: upd.GetPath(), Op: gnmi.UpdateResult_REPLACE})
	}
	for _, upd := range req.GetUpdate() {
		if len(upd.GetPath().GetElem()) > 0 {
			return nil, status.Errorf(codes.InvalidArgument, "updates are applied at the root path")
		}
		content, err := asciiValue(upd)
		if err != nil {
			return nil, err
		}
		start := time.Now()
		err = s.ds.EditConfig(ctx, ds, "merge", content)
		s.metrics.observe("edit-config", ds.String(), start, err)
		if err != nil {
			return nil, err
		}
		rsp.Response = append(rsp.Response, &gnmi.UpdateResult{Path: upd.GetPath(), Op: gnmi.UpdateResult_UPDATE})
	}
	rsp.Timestamp = time.Now().UnixNano()
	return rsp, nil
}

// prefixDatastore returns the datastore named by the prefix target, running
// if unset.
func prefixDatastore(prefix *gnmi.Path, which string) (datastore.Type, error) {
	target := prefix.GetTarget()
	if target == "" {
		return datastore.Running, nil
	}
	ds, err := datastore.ParseType(target)
	if err != nil || ds == datastore.InlineConfig {
		return datastore.Unknown, ncerr.BadElement(which)
	}
	return ds, nil
}

func asciiValue(upd *gnmi.Update) (string, error) {
	switch v := upd.GetVal().GetValue().(type) {
	case *gnmi.TypedValue_AsciiVal:
		return v.AsciiVal, nil
	case *gnmi.TypedValue_BytesVal:
		return string(v.BytesVal), nil
	}
	return "", status.Errorf(codes.InvalidArgument, "expected an ASCII encoded XML value")
}

func metadataSession(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if v := md.Get(sessionMetadataKey); len(v) > 0 {
		return v[0]
	}
	return ""
}
