// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"flag"

	"github.com/spf13/cobra"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/ironcore-dev/hardware-inventory/internal/config"
)

const Name string = "inventoryctl"

var (
	configFile  string
	endpoint    string
	username    string
	password    string
	basicAuth   bool
	insecure    bool
	language    string
	concurrency int
	output      string

	cfg *config.Config
)

func NewCommand() *cobra.Command {
	opts := zap.Options{
		Development: true,
	}
	goFlags := flag.NewFlagSet(Name, flag.ContinueOnError)
	opts.BindFlags(goFlags)

	root := &cobra.Command{
		Use:           Name,
		Short:         "CLI client for the hardware inventory of a Redfish BMC",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts), zap.WriteTo(cmd.ErrOrStderr())))
			var err error
			cfg, err = loadConfig(cmd)
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a config file.")
	flags.StringVar(&endpoint, "endpoint", "", "BMC endpoint, e.g. https://10.0.0.1.")
	flags.StringVar(&username, "username", "", "BMC username. Defaults to $"+config.UsernameEnvVar+".")
	flags.StringVar(&password, "password", "", "BMC password. Defaults to $"+config.PasswordEnvVar+".")
	flags.BoolVar(&basicAuth, "basic-auth", false, "Use basic authentication instead of a Redfish session.")
	flags.BoolVar(&insecure, "insecure", false, "Skip verification of the BMC certificate.")
	flags.StringVar(&language, "language", config.DefaultLanguage, "Language of user-facing messages.")
	flags.IntVar(&concurrency, "concurrency", config.DefaultConcurrency, "Maximum number of parallel requests.")
	flags.StringVarP(&output, "output", "o", "yaml", "Output format, yaml or json.")
	flags.AddGoFlagSet(goFlags)

	root.AddCommand(NewCoresCommand())
	root.AddCommand(NewDimmsCommand())
	root.AddCommand(NewMemoryCommand())
	root.AddCommand(NewServeCommand())
	return root
}

// loadConfig reads the config file and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		c.Endpoint = endpoint
	}
	if flags.Changed("username") {
		c.Username = username
	}
	if flags.Changed("password") {
		c.Password = password
	}
	if flags.Changed("basic-auth") {
		c.BasicAuth = basicAuth
	}
	if flags.Changed("insecure") {
		c.Insecure = insecure
	}
	if flags.Changed("language") {
		c.Language = language
	}
	if flags.Changed("concurrency") {
		c.Concurrency = concurrency
	}
	return c, nil
}
