// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/lapor/internal/metrics"
	"github.com/tomtom215/lapor/internal/models"
	"github.com/tomtom215/lapor/internal/validation"
)

// ListReports fetches every report. Data is never nil: on any failure it is an
// empty slice. Elements that are not JSON objects are skipped.
func (c *Client) ListReports(ctx context.Context) models.Result[[]models.Report] {
	const op = "list_reports"
	empty := []models.Report{}

	ctx, log, finish := c.begin(ctx, op)

	resp, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/stories", auth: true})
	if err != nil {
		log.Warn().Err(err).Msg("List reports request failed")
		finish(transportOutcome(err))
		return models.Failure(err.Error(), empty)
	}

	var payload models.ListStoriesPayload
	if err := decodeBody(resp.body, &payload); err != nil {
		finish(metrics.OutcomeError)
		return models.Failure(err.Error(), empty)
	}
	if payload.Error {
		finish(metrics.OutcomeFailed)
		return models.Failure(payload.Message.String(), empty)
	}

	list := bytes.TrimSpace(payload.ListStory)
	if len(list) == 0 || list[0] != '[' {
		log.Warn().Int("status", resp.status).Msg("Response has no listStory array")
		finish(metrics.OutcomeFailed)
		return models.Failure("invalid response: listStory is missing or not an array", empty)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(list, &elements); err != nil {
		finish(metrics.OutcomeError)
		return models.Failure(fmt.Sprintf("invalid response: %v", err), empty)
	}

	now := c.now()
	reports := make([]models.Report, 0, len(elements))
	for i, el := range elements {
		el = bytes.TrimSpace(el)
		if len(el) == 0 || el[0] != '{' {
			log.Warn().Int("index", i).Msg("Skipping non-object story element")
			metrics.RecordReportDefault("element")
			continue
		}

		var raw models.StoryPayload
		if err := json.Unmarshal(el, &raw); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Skipping undecodable story element")
			metrics.RecordReportDefault("element")
			continue
		}

		report, defaulted := normalizeStory(&raw, now)
		for _, field := range defaulted {
			metrics.RecordReportDefault(field)
		}
		reports = append(reports, report)
	}

	log.Debug().Int("count", len(reports)).Msg("Reports normalized")
	finish(metrics.OutcomeOK)
	return models.Success(payload.Message.String(), reports)
}

// GetReportByID fetches one report. On failure Data is models.EmptyReportDetail().
func (c *Client) GetReportByID(ctx context.Context, id string) models.Result[models.ReportDetail] {
	const op = "get_report"

	if strings.TrimSpace(id) == "" {
		return rejectLocally(op, "report id is required", models.EmptyReportDetail())
	}

	ctx, log, finish := c.begin(ctx, op)

	resp, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/stories/" + url.PathEscape(id), auth: true})
	if err != nil {
		log.Warn().Err(err).Str("report_id", id).Msg("Get report request failed")
		finish(transportOutcome(err))
		return models.Failure(err.Error(), models.EmptyReportDetail())
	}

	var payload models.StoryDetailPayload
	if err := decodeBody(resp.body, &payload); err != nil {
		finish(metrics.OutcomeError)
		return models.Failure(err.Error(), models.EmptyReportDetail())
	}
	if payload.Error {
		finish(metrics.OutcomeFailed)
		return models.Failure(payload.Message.String(), models.EmptyReportDetail())
	}
	if payload.Story == nil {
		finish(metrics.OutcomeFailed)
		return models.Failure("invalid response: story is missing", models.EmptyReportDetail())
	}

	report, defaulted := normalizeStory(payload.Story, c.now())
	for _, field := range defaulted {
		metrics.RecordReportDefault(field)
	}

	finish(metrics.OutcomeOK)
	return models.Success(payload.Message.String(), detailFromReport(&report))
}

// StoreNewReport submits a report as multipart form data. Only the first
// evidence image is sent, and lat/lon are omitted when nil. Invalid input is
// rejected without a network call.
func (c *Client) StoreNewReport(ctx context.Context, report *models.NewReport) models.Result[models.Envelope] {
	const op = "store_report"

	if verr := validation.ValidateStruct(report); verr != nil {
		return rejectLocally(op, verr.Error(), models.Envelope{})
	}

	body, contentType, err := encodeReportForm(report)
	if err != nil {
		return rejectLocally(op, err.Error(), models.Envelope{})
	}

	ctx, log, finish := c.begin(ctx, op)

	resp, err := c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        "/stories",
		body:        body,
		contentType: contentType,
		auth:        true,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Store report request failed")
		finish(transportOutcome(err))
		return models.Failure(err.Error(), models.Envelope{})
	}

	env := models.Envelope{}
	if err := decodeBody(resp.body, &env); err != nil {
		finish(metrics.OutcomeError)
		return models.Failure(err.Error(), models.Envelope{})
	}

	ok := !env.Error()
	finish(outcomeOf(ok))
	return models.Result[models.Envelope]{OK: ok, Message: env.Message(), Data: env}
}

// encodeReportForm builds the multipart body for StoreNewReport.
func encodeReportForm(report *models.NewReport) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct{ name, value string }{
		{"name", report.Name},
		{"damageLevel", report.DamageLevel},
		{"description", report.Description},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write %s field: %w", f.name, err)
		}
	}

	photo := report.EvidenceImages[0]
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, photo.Filename))
	header.Set("Content-Type", photo.ContentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create photo part: %w", err)
	}
	if _, err := part.Write(photo.Data); err != nil {
		return nil, "", fmt.Errorf("write photo: %w", err)
	}

	if report.Latitude != nil {
		if err := w.WriteField("lat", strconv.FormatFloat(*report.Latitude, 'f', -1, 64)); err != nil {
			return nil, "", fmt.Errorf("write lat field: %w", err)
		}
	}
	if report.Longitude != nil {
		if err := w.WriteField("lon", strconv.FormatFloat(*report.Longitude, 'f', -1, 64)); err != nil {
			return nil, "", fmt.Errorf("write lon field: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
