// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/lapor/internal/logging"
	"github.com/tomtom215/lapor/internal/router"
	"github.com/tomtom215/lapor/internal/session"
)

// passwordEnvVar is read when --password is not given.
const passwordEnvVar = "LAPOR_PASSWORD"

func resolvePassword(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if v := os.Getenv(passwordEnvVar); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("--password or %s is required", passwordEnvVar)
}

func newRegisterCmd(opts *globalOptions) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := resolvePassword(password)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printResult(cmd.OutOrStdout(), a.client.Register(ctx, name, email, pw))
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (or "+passwordEnvVar+")")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// cliView reports login progress on stderr.
type cliView struct {
	w io.Writer
}

func (v cliView) ShowSubmitLoading()         { _, _ = fmt.Fprintln(v.w, "Logging in...") }
func (v cliView) HideSubmitLoading()         {}
func (v cliView) LoginFailed(message string) { _, _ = fmt.Fprintf(v.w, "Login failed: %s\n", message) }
func (v cliView) LoginSucceeded()            { _, _ = fmt.Fprintln(v.w, "Login successful") }

// watchRoutes collects router events until stop is called, then prints them
// to w one per line.
func watchRoutes(ctx context.Context, a *app, w io.Writer) (stop func(), err error) {
	ctx, cancel := context.WithCancel(ctx)
	events, err := a.router.Subscribe(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	var seen []router.Event
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			seen = append(seen, ev)
		}
	}()

	return func() {
		cancel()
		<-done
		for _, ev := range seen {
			_, _ = fmt.Fprintf(w, "event %s %s\n", ev.Kind, ev.Route)
		}
	}, nil
}

func newLoginCmd(opts *globalOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := resolvePassword(password)
			if err != nil {
				return err
			}

			ctx := logging.ContextWithNewCorrelationID(cmd.Context())
			a, err := loadApp(ctx, cmd, opts, cliView{w: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}

			stop, err := watchRoutes(ctx, a, cmd.OutOrStdout())
			if err != nil {
				return errors.Join(err, a.Close())
			}
			loginErr := a.auth.Login(ctx, email, pw)
			if loginErr == nil {
				a.router.Drain()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s, route %s\n", email, a.router.CurrentRoute())
			}
			stop()
			return errors.Join(loginErr, a.Close())
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (or "+passwordEnvVar+")")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				stop, err := watchRoutes(ctx, a, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				defer stop()
				if err := a.auth.Logout(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged out, route %s\n", a.router.CurrentRoute())
				return nil
			})
		},
	}
}

func newWhoamiCmd(opts *globalOptions) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				if !a.store.HasToken() {
					return session.ErrNoToken
				}
				out := cmd.OutOrStdout()

				_, _ = fmt.Fprintf(out, "token: %s\n", logging.RedactToken(a.store.AccessToken()))
				claims, err := a.store.Claims()
				switch {
				case errors.Is(err, session.ErrNotJWT):
					_, _ = fmt.Fprintln(out, "claims: opaque token")
				case err != nil:
					return err
				default:
					_, _ = fmt.Fprintf(out, "user: %s\n", claims.UserID)
					if !claims.IssuedAt.IsZero() {
						_, _ = fmt.Fprintf(out, "issued: %s\n", claims.IssuedAt.Format(time.RFC3339))
					}
					if !claims.ExpiresAt.IsZero() {
						_, _ = fmt.Fprintf(out, "expires: %s (expired=%t)\n", claims.ExpiresAt.Format(time.RFC3339), claims.Expired(time.Now()))
					}
				}

				if remote {
					return printResult(out, a.client.GetMyUserInfo(ctx))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "also query the backend with the stored token")
	return cmd
}
