// Package http implements the browser-facing transport of the form server.
//
// It wires chi routes to server-rendered pages: sign-in and registration,
// the form dashboards, the admin field editor and the fill page. Session
// cookies, request tracing, access logging, metrics and response
// compression are handled here before requests reach the view and service
// layers.
package http
