// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package main

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tomtom215/lapor/internal/models"
)

func newReportsCmd(opts *globalOptions) *cobra.Command {
	reports := &cobra.Command{Use: "reports", Short: "Incident report commands"}

	reports.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printResult(cmd.OutOrStdout(), a.client.ListReports(ctx))
			})
		},
	})

	reports.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printResult(cmd.OutOrStdout(), a.client.GetReportByID(ctx, args[0]))
			})
		},
	})

	reports.AddCommand(newReportCreateCmd(opts))
	return reports
}

func newReportCreateCmd(opts *globalOptions) *cobra.Command {
	var (
		report   models.NewReport
		photos   []string
		lat, lon float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a new report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, path := range photos {
				photo, err := readPhoto(path)
				if err != nil {
					return err
				}
				report.EvidenceImages = append(report.EvidenceImages, photo)
			}
			if cmd.Flags().Changed("lat") {
				report.Latitude = models.Coordinate(lat)
			}
			if cmd.Flags().Changed("lon") {
				report.Longitude = models.Coordinate(lon)
			}

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printResult(cmd.OutOrStdout(), a.client.StoreNewReport(ctx, &report))
			})
		},
	}
	cmd.Flags().StringVar(&report.Name, "name", "", "report title")
	cmd.Flags().StringVar(&report.Description, "description", "", "report description")
	cmd.Flags().StringVar(&report.DamageLevel, "damage-level", "", "damage level: light|moderate|severe")
	cmd.Flags().StringSliceVar(&photos, "photo", nil, "evidence image file (repeatable; the first one is uploaded)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	return cmd
}

// readPhoto loads an evidence image, taking its content type from the file
// extension or, failing that, from its first bytes.
func readPhoto(path string) (models.Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Photo{}, fmt.Errorf("read photo: %w", err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return models.Photo{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func newCommentsCmd(opts *globalOptions) *cobra.Command {
	comments := &cobra.Command{Use: "comments", Short: "Report comment commands"}

	comments.AddCommand(&cobra.Command{
		Use:   "list <report-id>",
		Short: "List comments of a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printResult(cmd.OutOrStdout(), a.client.ListComments(ctx, args[0]))
			})
		},
	})

	var body string
	create := &cobra.Command{
		Use:   "create <report-id>",
		Short: "Comment on a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printResult(cmd.OutOrStdout(), a.client.CreateComment(ctx, args[0], models.NewComment{Body: body}))
			})
		},
	}
	create.Flags().StringVar(&body, "body", "", "comment text")
	comments.AddCommand(create)
	return comments
}
