// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface of the hawk CLI.
// It implements the authentication subcommands using the Cobra CLI framework
// and wires them to the auth client, keychain, storage and router.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
	configPath  string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "hawk",
	Short:         "Sign in and out of a HawkCD server",
	Long:          `hawk is a command-line client for HawkCD. It exchanges your credentials for an access token, keeps the token in the OS keychain and signs you out again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "hawk %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $HAWK_CONFIG or <config dir>/hawk/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
