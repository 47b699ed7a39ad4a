// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironcore-dev/hardware-inventory/internal/store"
)

func NewCoresCommand() *cobra.Command {
	coresCmd := &cobra.Command{
		Use:   "cores",
		Short: "List the processor cores and their deconfiguration state",
		Args:  cobra.NoArgs,
		RunE:  runCores,
	}
	coresCmd.AddCommand(newCoresSettingsCommand("enable", true))
	coresCmd.AddCommand(newCoresSettingsCommand("disable", false))
	return coresCmd
}

func runCores(cmd *cobra.Command, _ []string) error {
	s, err := newStores(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.deconfiguration.GetProcessors(cmd.Context()); err != nil {
		return err
	}
	return printObject(cmd.OutOrStdout(), s.deconfiguration.Cores())
}

func newCoresSettingsCommand(use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " CORE_URI",
		Short: "Mark a processor core as " + use + "d",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newStores(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			state := store.SettingsState{URI: args[0], Enabled: enabled}
			if err := s.deconfiguration.UpdateCoresSettingsState(cmd.Context(), state); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "core %s %sd\n", args[0], use)
			return err
		},
	}
}
