// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/lapor/internal/logging"
	"github.com/tomtom215/lapor/internal/metrics"
	"github.com/tomtom215/lapor/internal/models"
)

// Register creates an account. The payload is passed through unchanged.
func (c *Client) Register(ctx context.Context, name, email, password string) models.Result[models.Envelope] {
	req, err := jsonRequest("register", http.MethodPost, "/register", models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, false)
	if err != nil {
		return rejectLocally("register", err.Error(), models.Envelope{})
	}
	return c.passThrough(ctx, req)
}

// Login authenticates and flattens the nested loginResult envelope into
// LoginData. The raw body is kept in the response for alternative token shapes.
func (c *Client) Login(ctx context.Context, email, password string) models.LoginResponse {
	const op = "login"

	req, err := jsonRequest(op, http.MethodPost, "/login", models.LoginRequest{
		Email:    email,
		Password: password,
	}, false)
	if err != nil {
		return models.LoginResponse{Result: rejectLocally(op, err.Error(), models.LoginData{})}
	}

	ctx, log, finish := c.begin(ctx, op)

	resp, err := c.do(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("email", logging.SanitizeEmail(email)).Msg("Login request failed")
		finish(transportOutcome(err))
		return models.LoginResponse{Result: models.Failure(err.Error(), models.LoginData{})}
	}

	var payload models.LoginPayload
	if err := decodeBody(resp.body, &payload); err != nil {
		finish(metrics.OutcomeError)
		return models.LoginResponse{Result: models.Failure(err.Error(), models.LoginData{})}
	}

	if payload.Error {
		finish(metrics.OutcomeFailed)
		return models.LoginResponse{
			Result: models.Failure(payload.Message.String(), models.LoginData{}),
			Raw:    resp.body,
		}
	}

	data := models.LoginData{}
	if lr := payload.LoginResult; lr != nil {
		data.AccessToken = lr.Token.String()
		data.UserID = lr.UserID.String()
		data.Name = lr.Name.String()
	}

	finish(metrics.OutcomeOK)
	return models.LoginResponse{
		Result: models.Success(payload.Message.String(), data),
		Raw:    resp.body,
	}
}

// GetMyUserInfo fetches the current user's view of the backend. The backend has
// no profile endpoint, so this reads the authenticated story listing and
// passes it through unchanged.
func (c *Client) GetMyUserInfo(ctx context.Context) models.Result[models.Envelope] {
	return c.passThrough(ctx, request{op: "get_my_user_info", method: http.MethodGet, path: "/stories", auth: true})
}
