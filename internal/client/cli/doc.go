// Package cli provides an interactive command-line host for the API
// client.
//
// It wires configuration, logging, the HTTP transport, and a session store
// into a client.Client, then runs a REPL over it. Failures are printed with
// their translated message; the REPL keeps running after any error.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
