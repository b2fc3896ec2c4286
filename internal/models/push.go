// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package models

// PushKeys are the client keys of a Web Push subscription.
type PushKeys struct {
	P256dh string `json:"p256dh" validate:"required"`
	Auth   string `json:"auth" validate:"required"`
}

// PushSubscription is the body of POST /notifications/subscribe.
type PushSubscription struct {
	Endpoint string   `json:"endpoint" validate:"required,url"`
	Keys     PushKeys `json:"keys"`
}

// PushUnsubscription is the body of DELETE /notifications/subscribe.
type PushUnsubscription struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
}

// NotifyUserRequest is the body of POST /reports/{id}/notify.
type NotifyUserRequest struct {
	UserID string `json:"userId"`
}
