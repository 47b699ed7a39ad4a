// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

// Package store caches hardware inventory and configuration read from a Redfish
// BMC and persists user edits back to it.
package store

import (
	"context"

	"golang.org/x/text/message"

	"github.com/ironcore-dev/hardware-inventory/internal/i18n"
)

const (
	// DefaultSystemURI is the computer system the stores operate on.
	DefaultSystemURI = "/redfish/v1/Systems/system"
	// DefaultConcurrency bounds the parallel requests of one store operation.
	DefaultConcurrency = 8
)

// Options contain the options shared by all stores.
type Options struct {
	// SystemURI is the URI of the computer system resource.
	SystemURI string
	// Concurrency is the maximum number of requests one store operation has in
	// flight.
	Concurrency int
	// Printer localizes user-facing messages unless the context carries one.
	Printer *message.Printer
}

func (o Options) withDefaults() Options {
	if o.SystemURI == "" {
		o.SystemURI = DefaultSystemURI
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Printer == nil {
		o.Printer = i18n.Printer(i18n.Default())
	}
	return o
}

func (o Options) printer(ctx context.Context) *message.Printer {
	if printer := i18n.PrinterFromContext(ctx); printer != nil {
		return printer
	}
	return o.Printer
}

// SettingsState is a requested change of the Enabled flag of a resource.
type SettingsState struct {
	URI     string `json:"uri"`
	Enabled bool   `json:"enabled"`
}

// UserError is a failure with a localized message that can be shown to a user.
type UserError struct {
	// Key is the message catalog key of Message.
	Key     string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func newUserError(printer *message.Printer, key string, err error) *UserError {
	return &UserError{
		Key:     key,
		Message: printer.Sprintf(key),
		Err:     err,
	}
}
