// Package server implements the presence server: the Hub that tracks who is
// online and relays their cursor, reaction, firework, rename and private
// messages, plus the WebSocket and HTTP plumbing around it.
//
// The implementation is organized into specialized files for configuration,
// the hub and its registry, clients, routing, static assets and HTTP
// handlers.
package server
