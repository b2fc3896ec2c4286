// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

// Package main is the entry point for the lapor command-line client.
//
// lapor talks to the story backend the web client uses: it registers and logs
// in users, lists, shows and submits incident reports, manages push
// subscriptions, triggers notifications, and renders report markers into an
// in-memory map to show what the map view would display.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Command-line flags (--base-url, --log-level, --log-format)
//   - Environment variables (LAPOR_*)
//   - Config file (--config, CONFIG_PATH, ./lapor.yaml, ~/.lapor/config.yaml)
//   - Built-in defaults
//
// # Session
//
// The access token obtained by "lapor login" is kept in a Badger store
// (~/.lapor/session by default), so later invocations stay logged in until
// "lapor logout".
//
// # Example Usage
//
//	lapor login --email budi@example.com --password rahasia123
//	lapor reports list
//	lapor reports create --name "Banjir" --description "Air setinggi lutut" \
//	    --photo banjir.jpg --lat -6.2 --lon 106.8
//	lapor map browse
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	baseURL    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "lapor",
		Short:         "Disaster incident reporting client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file path")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: trace|debug|info|warn|error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: json|console")
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "story backend base URL")

	root.AddCommand(newRegisterCmd(opts))
	root.AddCommand(newLoginCmd(opts))
	root.AddCommand(newLogoutCmd(opts))
	root.AddCommand(newWhoamiCmd(opts))
	root.AddCommand(newReportsCmd(opts))
	root.AddCommand(newCommentsCmd(opts))
	root.AddCommand(newPushCmd(opts))
	root.AddCommand(newNotifyCmd(opts))
	root.AddCommand(newMapCmd(opts))
	return root
}
