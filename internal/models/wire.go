// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package models

import "github.com/goccy/go-json"

// StoryPayload is one raw story record as sent by the backend.
type StoryPayload struct {
	ID          FlexString `json:"id"`
	Name        FlexString `json:"name"`
	Description FlexString `json:"description"`
	PhotoURL    FlexString `json:"photoUrl"`
	CreatedAt   FlexString `json:"createdAt"`
	Lat         FlexFloat  `json:"lat"`
	Lon         FlexFloat  `json:"lon"`
}

// ListStoriesPayload is the response of GET /stories. ListStory stays raw so a
// missing or non-array field can be detected instead of silently decoding to nil.
type ListStoriesPayload struct {
	Error     FlexBool        `json:"error"`
	Message   FlexString      `json:"message"`
	ListStory json.RawMessage `json:"listStory"`
}

// StoryDetailPayload is the response of GET /stories/{id}.
type StoryDetailPayload struct {
	Error   FlexBool      `json:"error"`
	Message FlexString    `json:"message"`
	Story   *StoryPayload `json:"story"`
}

// LoginPayload is the response of POST /login.
type LoginPayload struct {
	Error       FlexBool            `json:"error"`
	Message     FlexString          `json:"message"`
	LoginResult *LoginResultPayload `json:"loginResult"`
}

// LoginResultPayload is the nested loginResult envelope.
type LoginResultPayload struct {
	UserID FlexString `json:"userId"`
	Name   FlexString `json:"name"`
	Token  FlexString `json:"token"`
}
