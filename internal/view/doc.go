// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package view holds the per-request state behind the three pages of the
// application: the admin form editor, the user dashboard and the fill page.
//
// A state holder is created for one request, filled by an explicit Load and
// then mutated by the page's operations. Holders are never shared between
// requests, so they need no locking. Backend failures are logged where they
// happen; only the fill page turns them into a message for the user.
package view
