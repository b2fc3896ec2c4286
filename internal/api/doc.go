// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

/*
Package api implements the story backend client.

Every public operation returns a models.Result and never a Go error: transport
failures, non-JSON bodies, application-level errors and local validation
failures all come back as Result{OK: false, Message: ...} with Data set to the
operation's empty default. Callers check OK and nothing else.

# Deriving OK

Two families of operations exist and they derive OK differently:

  - Normalized operations (Login, ListReports, GetReportByID, StoreNewReport)
    take OK from the payload's "error" flag and the presence of the expected
    entity. HTTP status is ignored.
  - Pass-through operations (Register, GetMyUserInfo, SubscribePush,
    UnsubscribePush, NotifyMe, NotifyUser, NotifyAll, NotifyCommentOwner)
    take OK from the HTTP status class and return the payload unchanged as
    a models.Envelope.

# Normalization

NormalizeReport and NormalizeReportDetail turn a raw story record into a
domain entity with every field present: missing photo becomes an empty
image list, missing coordinates become nil, a missing or unparsable
createdAt becomes the client's current time, and a missing name becomes
models.DefaultReporterName.

# Resilience

Requests pass through an optional rate limiter (golang.org/x/time/rate) and
an optional circuit breaker (sony/gobreaker). Nothing is retried: a failure
is surfaced to the caller exactly once.

# Comments

The backend has no comment endpoints. ListComments and CreateComment return
fixed results without touching the network.
*/
package api
