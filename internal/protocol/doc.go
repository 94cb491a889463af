// Package protocol defines the JSON wire format exchanged between presence
// clients and the server, along with the validation rules the server applies
// to inbound payloads.
//
// Inbound payloads are parsed exactly once, at the transport boundary, into
// one of the closed set of Inbound variants. Outbound messages are plain
// structs whose field names match what the browser client reads.
package protocol
