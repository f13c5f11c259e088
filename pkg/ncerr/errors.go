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

// Package ncerr holds the structured errors returned by the datastore
// operations. They carry a NETCONF error-tag plus the optional parameters
// (bad-element, session-id, message) the protocol layer reports back.
package ncerr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Tag string

const (
	TagInUse                 Tag = "in-use"
	TagInvalidValue          Tag = "invalid-value"
	TagMissingElement        Tag = "missing-element"
	TagBadElement            Tag = "bad-element"
	TagUnknownElement        Tag = "unknown-element"
	TagBadAttribute          Tag = "bad-attribute"
	TagLockDenied            Tag = "lock-denied"
	TagDataExists            Tag = "data-exists"
	TagDataMissing           Tag = "data-missing"
	TagOperationNotSupported Tag = "operation-not-supported"
	TagOperationFailed       Tag = "operation-failed"
)

type ErrType string

const (
	ErrTypeProtocol    ErrType = "protocol"
	ErrTypeApplication ErrType = "application"
)

// Error is a structured datastore error.
type Error struct {
	Tag  Tag
	Type ErrType
	// BadElement names the offending element or parameter, if any.
	BadElement string
	// SessionID is the lock holder for lock-denied errors.
	SessionID string
	Message   string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	sb := &strings.Builder{}
	sb.WriteString(string(e.Tag))
	if e.BadElement != "" {
		fmt.Fprintf(sb, " (bad-element: %s)", e.BadElement)
	}
	if e.SessionID != "" {
		fmt.Fprintf(sb, " (session-id: %s)", e.SessionID)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match on the error-tag, so errors.Is(err, &Error{Tag: TagLockDenied})
// holds for any lock-denied error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Tag == e.Tag
}

// GRPCStatus makes *Error usable with status.FromError / status.Code.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.Code(), e.Error())
}

// Code maps the error-tag to a gRPC code.
func (e *Error) Code() codes.Code {
	switch e.Tag {
	case TagLockDenied, TagInUse:
		return codes.FailedPrecondition
	case TagDataExists:
		return codes.AlreadyExists
	case TagDataMissing:
		return codes.NotFound
	case TagOperationNotSupported:
		return codes.Unimplemented
	case TagOperationFailed:
		return codes.Internal
	default:
		return codes.InvalidArgument
	}
}

// HTTPStatus maps the error-tag to an HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Tag {
	case TagLockDenied, TagInUse:
		return http.StatusConflict
	case TagDataExists:
		return http.StatusConflict
	case TagDataMissing:
		return http.StatusNotFound
	case TagOperationNotSupported:
		return http.StatusNotImplemented
	case TagOperationFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func BadElement(which string) *Error {
	return &Error{Tag: TagBadElement, Type: ErrTypeProtocol, BadElement: which}
}

func LockDenied(holder string) *Error {
	return &Error{Tag: TagLockDenied, Type: ErrTypeProtocol, SessionID: holder}
}

func OperationFailed(msg string) *Error {
	return &Error{Tag: TagOperationFailed, Type: ErrTypeApplication, Message: msg}
}

// OperationFailedErr wraps err as an operation-failed error.
func OperationFailedErr(err error, msg string) *Error {
	return &Error{Tag: TagOperationFailed, Type: ErrTypeApplication, Message: msg, Err: err}
}

func MissingElement(elem string) *Error {
	return &Error{Tag: TagMissingElement, Type: ErrTypeApplication, BadElement: elem}
}

func InvalidValue(elem string, msg string) *Error {
	return &Error{Tag: TagInvalidValue, Type: ErrTypeApplication, BadElement: elem, Message: msg}
}

func BadAttribute(elem string, msg string) *Error {
	return &Error{Tag: TagBadAttribute, Type: ErrTypeProtocol, BadElement: elem, Message: msg}
}

func DataExists(path string) *Error {
	return &Error{Tag: TagDataExists, Type: ErrTypeApplication, Message: path}
}

func DataMissing(path string) *Error {
	return &Error{Tag: TagDataMissing, Type: ErrTypeApplication, Message: path}
}

// From returns err as *Error. Plain errors become operation-failed.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ne *Error
	if errors.As(err, &ne) {
		return ne
	}
	return OperationFailedErr(err, "")
}

// HasTag reports whether err is an *Error carrying tag.
func HasTag(err error, tag Tag) bool {
	return errors.Is(err, &Error{Tag: tag})
}
