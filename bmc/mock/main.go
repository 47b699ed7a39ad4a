// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/ironcore-dev/hardware-inventory/bmc/mock/server"
	ctrl "sigs.k8s.io/controller-runtime"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var addr string
	flag.StringVar(&addr, "bind-address", ":8000", "The address the mock Redfish service binds to.")
	opts := zap.Options{
		Development: true,
	}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))
	log := ctrl.Log.WithName("RedfishMockServer")

	srv := server.NewMockServer(log, addr)

	if err := srv.Start(ctx); err != nil {
		log.Error(err, "Failed to start mock server")
		return
	}

	log.Info("Mock server stopped")
}
