// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tomtom215/lapor/internal/models"
)

func newPushCmd(opts *globalOptions) *cobra.Command {
	push := &cobra.Command{Use: "push", Short: "Web push subscription commands"}

	var sub models.PushSubscription
	subscribe := &cobra.Command{
		Use:   "subscribe",
		Short: "Register a push subscription",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printResult(cmd.OutOrStdout(), a.client.SubscribePush(ctx, &sub))
			})
		},
	}
	subscribe.Flags().StringVar(&sub.Endpoint, "endpoint", "", "push service endpoint URL")
	subscribe.Flags().StringVar(&sub.Keys.P256dh, "p256dh", "", "client public key")
	subscribe.Flags().StringVar(&sub.Keys.Auth, "auth", "", "client auth secret")

	var endpoint string
	unsubscribe := &cobra.Command{
		Use:   "unsubscribe",
		Short: "Remove a push subscription",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printResult(cmd.OutOrStdout(), a.client.UnsubscribePush(ctx, endpoint))
			})
		},
	}
	unsubscribe.Flags().StringVar(&endpoint, "endpoint", "", "push service endpoint URL")

	push.AddCommand(subscribe, unsubscribe)
	return push
}

func newNotifyCmd(opts *globalOptions) *cobra.Command {
	notify := &cobra.Command{Use: "notify", Short: "Trigger report notifications"}

	notify.AddCommand(&cobra.Command{
		Use:   "me <report-id>",
		Short: "Notify the current user about a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printResult(cmd.OutOrStdout(), a.client.NotifyMe(ctx, args[0]))
			})
		},
	})

	notify.AddCommand(&cobra.Command{
		Use:   "user <report-id> <user-id>",
		Short: "Notify one user about a report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printResult(cmd.OutOrStdout(), a.client.NotifyUser(ctx, args[0], args[1]))
			})
		},
	})

	notify.AddCommand(&cobra.Command{
		Use:   "all <report-id>",
		Short: "Notify every subscriber about a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printResult(cmd.OutOrStdout(), a.client.NotifyAll(ctx, args[0]))
			})
		},
	})

	notify.AddCommand(&cobra.Command{
		Use:   "comment-owner <report-id> <comment-id>",
		Short: "Notify the author of a comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printResult(cmd.OutOrStdout(), a.client.NotifyCommentOwner(ctx, args[0], args[1]))
			})
		},
	})
	return notify
}
