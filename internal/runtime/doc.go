// Package runtime assembles the pieces of a single msgq instance: the
// message store, the clock, and configuration. Transports and services
// receive a *Runtime instead of reaching for process-wide state.
package runtime
