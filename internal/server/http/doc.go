// Package httpserver serves the msgq HTTP API: message creation and
// retrieval, queue listing, and queue summaries. It is a thin adapter that
// decodes requests into the engine's parameter contract and maps error
// kinds to status codes; all queue semantics live in internal/queue.
package httpserver
