// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package bmc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MessageIDResourceCannotBeDeleted is reported when a resource is required by the system.
	MessageIDResourceCannotBeDeleted = "ResourceCannotBeDeleted"
)

// RedfishError is a failed Redfish request together with the error details
// reported by the service.
type RedfishError struct {
	Method     string
	URI        string
	StatusCode int
	// Code is the error code of the Redfish error object.
	Code    string
	Message string
	// MessageIDs are the message IDs of the @Message.ExtendedInfo entries.
	MessageIDs []string
	Err        error
}

func (e *RedfishError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Method, e.URI, e.Err)
}

func (e *RedfishError) Unwrap() error {
	return e.Err
}

// HasMessageID reports whether the error code or one of the extended message IDs
// matches id. Registry prefixes like "Base.1.8." are ignored.
func (e *RedfishError) HasMessageID(id string) bool {
	if e == nil || id == "" {
		return false
	}
	for _, candidate := range append([]string{e.Code}, e.MessageIDs...) {
		if candidate == id || strings.HasSuffix(candidate, "."+id) {
			return true
		}
	}
	return false
}

// AsRedfishError returns the RedfishError in err's chain, if any.
func AsRedfishError(err error) (*RedfishError, bool) {
	var redfishErr *RedfishError
	if errors.As(err, &redfishErr) {
		return redfishErr, true
	}
	return nil, false
}

type extendedInfo struct {
	MessageID string `json:"MessageId"`
	Message   string
}

type errorObject struct {
	Code         string         `json:"code"`
	Message      string         `json:"message"`
	ExtendedInfo []extendedInfo `json:"@Message.ExtendedInfo"`
}

// ParseRedfishError builds a RedfishError from a request error. The error text
// carries the status code and the raw response body ("400: {...}"), which is
// decoded when it holds a Redfish error object.
func ParseRedfishError(method, uri string, err error) *RedfishError {
	redfishErr := &RedfishError{Method: method, URI: uri, Err: err}
	if err == nil {
		return redfishErr
	}
	text := err.Error()
	if i := strings.IndexByte(text, ':'); i > 0 {
		if code, convErr := strconv.Atoi(strings.TrimSpace(text[:i])); convErr == nil {
			redfishErr.StatusCode = code
		}
	}

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return redfishErr
	}
	body := []byte(text[start:])

	var wrapped struct {
		Error *errorObject `json:"error"`
	}
	obj := &errorObject{}
	if jsonErr := json.Unmarshal(body, &wrapped); jsonErr == nil && wrapped.Error != nil {
		obj = wrapped.Error
	} else if jsonErr := json.Unmarshal(body, obj); jsonErr != nil {
		return redfishErr
	}

	redfishErr.Code = obj.Code
	redfishErr.Message = obj.Message
	for _, info := range obj.ExtendedInfo {
		if info.MessageID != "" {
			redfishErr.MessageIDs = append(redfishErr.MessageIDs, info.MessageID)
		}
	}
	return redfishErr
}
