// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/tomtom215/lapor/internal/models"
	"github.com/tomtom215/lapor/internal/validation"
)

// SubscribePush registers a web push subscription.
func (c *Client) SubscribePush(ctx context.Context, sub *models.PushSubscription) models.Result[models.Envelope] {
	const op = "push_subscribe"
	if verr := validation.ValidateStruct(sub); verr != nil {
		return rejectLocally(op, verr.Error(), models.Envelope{})
	}
	return c.sendJSON(ctx, op, http.MethodPost, "/notifications/subscribe", sub)
}

// UnsubscribePush removes the subscription for endpoint.
func (c *Client) UnsubscribePush(ctx context.Context, endpoint string) models.Result[models.Envelope] {
	const op = "push_unsubscribe"
	body := models.PushUnsubscription{Endpoint: endpoint}
	if verr := validation.ValidateStruct(&body); verr != nil {
		return rejectLocally(op, verr.Error(), models.Envelope{})
	}
	return c.sendJSON(ctx, op, http.MethodDelete, "/notifications/subscribe", body)
}

// NotifyMe asks to be notified about activity on a report.
func (c *Client) NotifyMe(ctx context.Context, reportID string) models.Result[models.Envelope] {
	return c.notify(ctx, "notify_me", nil, "notify-me", reportID)
}

// NotifyUser sends a report notification to one user.
func (c *Client) NotifyUser(ctx context.Context, reportID, userID string) models.Result[models.Envelope] {
	return c.notify(ctx, "notify_user", models.NotifyUserRequest{UserID: userID}, "notify", reportID)
}

// NotifyAll sends a report notification to every subscriber.
func (c *Client) NotifyAll(ctx context.Context, reportID string) models.Result[models.Envelope] {
	return c.notify(ctx, "notify_all", nil, "notify-all", reportID)
}

// NotifyCommentOwner notifies the author of a comment on a report.
func (c *Client) NotifyCommentOwner(ctx context.Context, reportID, commentID string) models.Result[models.Envelope] {
	if strings.TrimSpace(commentID) == "" {
		return rejectLocally("notify_comment_owner", "comment id is required", models.Envelope{})
	}
	return c.notify(ctx, "notify_comment_owner", nil, "comments/"+url.PathEscape(commentID)+"/notify", reportID)
}

// notify posts to /reports/{reportID}/{suffix}.
func (c *Client) notify(ctx context.Context, op string, payload any, suffix, reportID string) models.Result[models.Envelope] {
	if strings.TrimSpace(reportID) == "" {
		return rejectLocally(op, "report id is required", models.Envelope{})
	}
	return c.sendJSON(ctx, op, http.MethodPost, "/reports/"+url.PathEscape(reportID)+"/"+suffix, payload)
}

func (c *Client) sendJSON(ctx context.Context, op, method, path string, payload any) models.Result[models.Envelope] {
	req, err := jsonRequest(op, method, path, payload, true)
	if err != nil {
		return rejectLocally(op, err.Error(), models.Envelope{})
	}
	return c.passThrough(ctx, req)
}
