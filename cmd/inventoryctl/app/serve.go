// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"time"

	"github.com/spf13/cobra"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/ironcore-dev/hardware-inventory/internal/server"
)

var (
	listenAddress   string
	refreshInterval time.Duration
)

func NewServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the hardware inventory to the web UI",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&listenAddress, "listen-address", "", "The address the inventory API binds to.")
	serveCmd.Flags().DurationVar(&refreshInterval, "refresh-interval", 0,
		"Interval between inventory refreshes. Defaults to the configured interval.")
	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	if listenAddress != "" {
		cfg.ListenAddress = listenAddress
	}
	if refreshInterval > 0 {
		cfg.RefreshInterval.Duration = refreshInterval
	}

	s, err := newStores(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	log := ctrl.Log.WithName("server")
	srv := server.NewServer(log, cfg.ListenAddress, s.memory, s.deconfiguration, cfg.RefreshInterval.Duration)
	return srv.Start(cmd.Context())
}
