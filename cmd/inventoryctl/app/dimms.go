// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironcore-dev/hardware-inventory/internal/store"
)

func NewDimmsCommand() *cobra.Command {
	dimmsCmd := &cobra.Command{
		Use:   "dimms",
		Short: "List the installed DIMMs and their deconfiguration state",
		Args:  cobra.NoArgs,
		RunE:  runDimms,
	}
	dimmsCmd.AddCommand(newDimmsSettingsCommand("enable", true))
	dimmsCmd.AddCommand(newDimmsSettingsCommand("disable", false))
	return dimmsCmd
}

func runDimms(cmd *cobra.Command, _ []string) error {
	s, err := newStores(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.deconfiguration.GetDimms(cmd.Context()); err != nil {
		return err
	}
	return printObject(cmd.OutOrStdout(), s.deconfiguration.Dimms())
}

func newDimmsSettingsCommand(use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " DIMM_URI",
		Short: "Mark a DIMM as " + use + "d",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newStores(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			state := store.SettingsState{URI: args[0], Enabled: enabled}
			if err := s.deconfiguration.UpdateSettingsState(cmd.Context(), state); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "DIMM %s %sd\n", args[0], use)
			return err
		},
	}
}
