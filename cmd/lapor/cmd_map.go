// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/lapor/internal/mapview"
	"github.com/tomtom215/lapor/internal/models"
)

// mapContainer is the mount point name of the in-memory map.
const mapContainer = "map"

func newMapCmd(opts *globalOptions) *cobra.Command {
	mapCmd := &cobra.Command{
		Use:   "map",
		Short: "Render reports into an in-memory map and print the marker state",
	}

	mapCmd.AddCommand(&cobra.Command{
		Use:   "browse",
		Short: "Place a marker for every report with coordinates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				res := a.client.ListReports(ctx)
				if !res.OK {
					return errors.New(res.Message)
				}
				m, err := a.maps.Acquire(mapContainer, nil)
				if err != nil {
					return err
				}
				placed := a.maps.RenderReportMarkers(m, res.Data)
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d reports placed\n", placed, len(res.Data))
				return printJSON(cmd.OutOrStdout(), a.maps.State())
			})
		},
	})

	var lat, lon float64
	pick := &cobra.Command{
		Use:   "pick",
		Short: "Place the authoring marker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(_ context.Context, a *app) error {
				_, err := a.maps.Acquire(mapContainer, &mapview.AcquireOptions{
					OnPick: func(p mapview.LatLng) {
						_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "picked %.6f, %.6f\n", p.Lat, p.Lng)
					},
				})
				if err != nil {
					return err
				}
				a.maps.PlaceSingleMarker(lat, lon, nil)
				return printJSON(cmd.OutOrStdout(), a.maps.State())
			})
		},
	}
	pick.Flags().Float64Var(&lat, "lat", 0, "latitude")
	pick.Flags().Float64Var(&lon, "lon", 0, "longitude")
	_ = pick.MarkFlagRequired("lat")
	_ = pick.MarkFlagRequired("lon")
	mapCmd.AddCommand(pick)

	mapCmd.AddCommand(&cobra.Command{
		Use:   "focus <report-id>",
		Short: "Highlight one report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				res := a.client.GetReportByID(ctx, args[0])
				if !res.OK {
					return errors.New(res.Message)
				}
				m, err := a.maps.Acquire(mapContainer, nil)
				if err != nil {
					return err
				}

				d := res.Data
				popups := mapview.PopupBuilder{
					ExcerptLength: a.cfg.Map.ExcerptLength,
					DetailRoute:   a.cfg.Map.DetailRoute,
					DetailLabel:   a.cfg.Map.DetailLabel,
				}
				popup := popups.Build(&models.Report{ID: d.ID, Title: d.Title, Description: d.Description})
				a.maps.RenderSingleHighlightedMarker(m, d.Location.Latitude, d.Location.Longitude, popup)

				return printJSON(cmd.OutOrStdout(), a.maps.State())
			})
		},
	})
	return mapCmd
}
