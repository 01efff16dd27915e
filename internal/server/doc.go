// Package server hosts the Fiber HTTP service that renders dataform views.
// It wires the request-id middleware, the per-process session key and the
// /view handler that turns a view template into HTML through the pattern
// resolver. Diagnostics routes live in the routes subpackage and are mounted
// under /-/ so they never collide with rendered views.
package server
