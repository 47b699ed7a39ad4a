// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/ironcore-dev/hardware-inventory/bmc"
	"github.com/ironcore-dev/hardware-inventory/internal/i18n"
	"github.com/ironcore-dev/hardware-inventory/internal/store"
)

type stores struct {
	client          *bmc.RedfishBMC
	memory          *store.MemoryStore
	deconfiguration *store.DeconfigurationStore
}

func newStores(ctx context.Context) (*stores, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := bmc.NewRedfishBMCClient(ctx, bmc.Options{
		Endpoint:  cfg.Endpoint,
		Username:  cfg.Username,
		Password:  cfg.Password,
		BasicAuth: cfg.BasicAuth,
		Insecure:  cfg.Insecure,
	})
	if err != nil {
		return nil, err
	}
	tag, ok := i18n.ParseTag(cfg.Language)
	if !ok {
		return nil, fmt.Errorf("invalid language %q", cfg.Language)
	}
	options := store.Options{
		Concurrency: cfg.Concurrency,
		Printer:     i18n.Printer(tag),
	}
	return &stores{
		client:          client,
		memory:          store.NewMemoryStore(client, options),
		deconfiguration: store.NewDeconfigurationStore(client, options),
	}, nil
}

func (s *stores) close() {
	s.client.Logout()
}

func printObject(w io.Writer, obj any) error {
	var (
		data []byte
		err  error
	)
	switch output {
	case "yaml":
		data, err = yaml.Marshal(obj)
	case "json":
		data, err = json.MarshalIndent(obj, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = w.Write(data)
	return err
}
