// Package cli provides the interactive lifeadmin command-line client.
//
// It wires configuration, storage and the domain services into a REPL. A
// stored session is restored on start; otherwise the user registers or logs
// in, after which the commands operate on that user's workspace.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, commandInfos and runREPL for details.
package cli
