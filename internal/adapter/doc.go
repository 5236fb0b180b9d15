// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter implements the store interfaces on top of a hosted
// backend that exposes a PostgREST data API under /rest/v1 and a GoTrue
// identity API under /auth/v1 (the layout used by Supabase).
//
// Every request carries the project API key in the "apikey" header. The
// Authorization header carries the signed-in user's access token when the
// request context has one, so row-level security applies, and the API key
// otherwise.
//
// HTTP failures are mapped by mapHTTPError to the sentinel values in
// errors.go; operations that have a domain meaning translate them further
// into store errors such as [store.ErrFormNotFound].
package adapter
