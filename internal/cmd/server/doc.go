// Package serverrun starts and supervises the msgq server process.
package serverrun
