package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/ofc-server/pkg/datastore"
	"github.com/iptecharch/ofc-server/pkg/ncerr"
	"github.com/iptecharch/ofc-server/pkg/utils"
)

const (
	SessionHeader = "X-Session-Id"

	contentTypeXML = "application/xml"
)

func (s *Server) registerRESTRoutes() {
	r := s.restRouter
	r.HandleFunc("/datastores/{ds}/config", s.handleGetConfig).Methods(http.MethodGet)
	r.HandleFunc("/datastores/{ds}/config", s.handleCopyConfig).Methods(http.MethodPut)
	r.HandleFunc("/datastores/{ds}/config", s.handleDeleteConfig).Methods(http.MethodDelete)
	r.HandleFunc("/datastores/{ds}/edit", s.handleEditConfig).Methods(http.MethodPost)
	r.HandleFunc("/datastores/{ds}/lock", s.handleLock).Methods(http.MethodPost)
	r.HandleFunc("/datastores/{ds}/lock", s.handleUnlock).Methods(http.MethodDelete)
	r.HandleFunc("/sessions/{id}", s.handleCloseSession).Methods(http.MethodDelete)
	r.HandleFunc("/rollback", s.handleRollback).Methods(http.MethodPost)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ds, err := datastoreVar(r, "source")
	if err != nil {
		s.writeError(w, err)
		return
	}
	cfg, err := s.ds.GetConfig(r.Context(), ds)
	s.metrics.observe("get-config", ds.String(), start, err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypeXML)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, cfg)
}

func (s *Server) handleEditConfig(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ds, err := datastoreVar(r, "target")
	if err != nil {
		s.writeError(w, err)
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	err = s.ds.EditConfig(sessionContext(r), ds, r.URL.Query().Get("default-operation"), body)
	s.metrics.observe("edit-config", ds.String(), start, err)
	s.writeResult(w, err)
}

// handleCopyConfig copies the datastore named by the source query parameter
// into the target, or the request body when no source is given.
func (s *Server) handleCopyConfig(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	target, err := datastoreVar(r, "target")
	if err != nil {
		s.writeError(w, err)
		return
	}
	source := datastore.InlineConfig
	if src := r.URL.Query().Get("source"); src != "" {
		source, err = datastore.ParseType(src)
		if err != nil {
			s.writeError(w, ncerr.BadElement("source"))
			return
		}
	}
	var content string
	if source == datastore.InlineConfig {
		content, err = s.readBody(w, r)
		if err != nil {
			s.writeError(w, err)
			return
		}
	}
	err = s.ds.CopyConfig(sessionContext(r), target, source, content)
	s.metrics.observe("copy-config", target.String(), start, err)
	s.writeResult(w, err)
}

func (s *Server) handleDeleteConfig(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ds, err := datastoreVar(r, "target")
	if err != nil {
		s.writeError(w, err)
		return
	}
	err = s.ds.DeleteConfig(sessionContext(r), ds)
	s.metrics.observe("delete-config", ds.String(), start, err)
	s.writeResult(w, err)
}

func (s *Server) handleLock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ds, err := datastoreVar(r, "target")
	if err != nil {
		s.writeError(w, err)
		return
	}
	err = s.ds.Lock(ds, sessionID(r))
	s.metrics.observe("lock", ds.String(), start, err)
	s.writeResult(w, err)
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ds, err := datastoreVar(r, "target")
	if err != nil {
		s.writeError(w, err)
		return
	}
	session := sessionID(r)
	if session == "" {
		s.writeError(w, ncerr.MissingElement("session-id"))
		return
	}
	err = s.ds.Unlock(ds, session)
	s.metrics.observe("unlock", ds.String(), start, err)
	s.writeResult(w, err)
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	released := s.ds.ReleaseSession(id)
	log.Debugf("session %s closed, %d lock(s) released", id, len(released))
	s.writeResult(w, nil)
}

func (s *Server) handleRollback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	err := s.ds.Rollback(r.Context())
	s.metrics.observe("rollback", "", start, err)
	s.writeResult(w, err)
}

// datastoreVar returns the datastore named in the request path. which is the
// parameter reported as bad-element if it is not a datastore.
func datastoreVar(r *http.Request, which string) (datastore.Type, error) {
	ds, err := datastore.ParseType(mux.Vars(r)["ds"])
	if err != nil || ds == datastore.InlineConfig {
		return datastore.Unknown, ncerr.BadElement(which)
	}
	return ds, nil
}

func sessionID(r *http.Request) string {
	return r.Header.Get(SessionHeader)
}

// sessionContext binds the request context to the session named in the
// session header, an absent header is the empty session.
func sessionContext(r *http.Request) context.Context {
	return datastore.WithSession(r.Context(), sessionID(r))
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) (string, error) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(s.config.GRPCServer.MaxRecvMsgSize)))
	if err != nil {
		return "", ncerr.OperationFailedErr(err, "failed reading request body")
	}
	return string(b), nil
}

func (s *Server) writeResult(w http.ResponseWriter, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypeXML)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "<ok/>")
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	ne := ncerr.From(err)
	b, rerr := rpcError(ne).WriteToString()
	if rerr != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeXML)
	w.WriteHeader(ne.HTTPStatus())
	io.WriteString(w, b)
}

// rpcError renders e as a NETCONF rpc-error element.
func rpcError(e *ncerr.Error) *etree.Document {
	doc := etree.NewDocument()
	re := doc.CreateElement("rpc-error")
	re.CreateAttr("xmlns", utils.NcBase1_0)
	re.CreateElement("error-type").SetText(string(e.Type))
	re.CreateElement("error-tag").SetText(string(e.Tag))
	re.CreateElement("error-severity").SetText("error")

	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if msg != "" {
		re.CreateElement("error-message").SetText(msg)
	}
	if e.BadElement != "" || e.SessionID != "" {
		info := re.CreateElement("error-info")
		if e.BadElement != "" {
			info.CreateElement("bad-element").SetText(e.BadElement)
		}
		if e.SessionID != "" {
			info.CreateElement("session-id").SetText(e.SessionID)
		}
	}
	return doc
}
