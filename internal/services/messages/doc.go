// Package messages exposes the queue engine's operations as a service
// facade consumed by the transport layer.
package messages
