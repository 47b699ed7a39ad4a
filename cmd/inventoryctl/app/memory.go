// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewMemoryCommand() *cobra.Command {
	memoryCmd := &cobra.Command{
		Use:   "memory",
		Short: "Show the logical memory block size and the allowed sizes",
		Args:  cobra.NoArgs,
		RunE:  runMemory,
	}
	memoryCmd.AddCommand(&cobra.Command{
		Use:   "set SIZE",
		Short: "Set the logical memory block size applied on the next boot",
		Args:  cobra.ExactArgs(1),
		RunE:  runMemorySet,
	})
	return memoryCmd
}

func runMemory(cmd *cobra.Command, _ []string) error {
	s, err := newStores(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.memory.Refresh(cmd.Context()); err != nil {
		return err
	}
	return printObject(cmd.OutOrStdout(), s.memory.Settings())
}

func runMemorySet(cmd *cobra.Command, args []string) error {
	s, err := newStores(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	msg, err := s.memory.SaveSettings(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
	return err
}
