// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package api

import (
	"bytes"
	"context"

	"github.com/tomtom215/lapor/internal/metrics"
	"github.com/tomtom215/lapor/internal/models"
)

// passThrough runs req and returns the payload unchanged. OK follows the HTTP
// status class, not the payload's own error flag.
func (c *Client) passThrough(ctx context.Context, req request) models.Result[models.Envelope] {
	ctx, log, finish := c.begin(ctx, req.op)

	resp, err := c.do(ctx, req)
	if err != nil {
		log.Warn().Err(err).Msg("Request failed")
		finish(transportOutcome(err))
		return models.Failure(err.Error(), models.Envelope{})
	}

	env := models.Envelope{}
	if len(bytes.TrimSpace(resp.body)) > 0 {
		if err := decodeBody(resp.body, &env); err != nil {
			log.Warn().Err(err).Int("status", resp.status).Msg("Undecodable response")
			finish(metrics.OutcomeError)
			return models.Failure(err.Error(), models.Envelope{})
		}
	}

	ok := resp.ok()
	finish(outcomeOf(ok))
	return models.Result[models.Envelope]{OK: ok, Message: env.Message(), Data: env}
}

// rejectLocally returns a failed Result for a request that never left the process.
func rejectLocally[T any](op, message string, data T) models.Result[T] {
	metrics.RecordAPIRequest(op, metrics.OutcomeRejected, 0)
	return models.Failure(message, data)
}
