// Package client contains Cobra CLI commands for msgq.
package client
