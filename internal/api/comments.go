// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package api

import (
	"context"

	"github.com/tomtom215/lapor/internal/models"
)

// CommentsUnavailableMessage is returned by both comment operations.
const CommentsUnavailableMessage = "Comments feature is not available yet"

// ListComments always succeeds with no comments. No request is sent.
func (c *Client) ListComments(_ context.Context, reportID string) models.Result[[]models.Comment] {
	c.logger.Debug().Str("report_id", reportID).Msg("Comment listing is not supported by the backend")
	return models.Success(CommentsUnavailableMessage, []models.Comment{})
}

// CreateComment always fails. No request is sent.
func (c *Client) CreateComment(_ context.Context, reportID string, _ models.NewComment) models.Result[models.Comment] {
	c.logger.Debug().Str("report_id", reportID).Msg("Comment creation is not supported by the backend")
	return models.Failure(CommentsUnavailableMessage, models.Comment{})
}
