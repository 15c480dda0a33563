// Package hydropump is the composition root for the hydropump engine.
//
// It connects the core business logic (template compilation and the
// instruction/template persistence model) with the storage adapters
// using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Hydropump treats configuration as assembly: an instruction is a named
// document deep-merged from an ordered list of reusable templates plus a
// caller-supplied source payload, then persisted through a pluggable
// backend. Payloads are opaque nested key/value documents; there is no
// schema layer.
//
// Features:
//
//   - **Deterministic compilation**: templates merge left to right, later
//     templates override earlier ones, and the caller's source payload
//     always wins.
//   - **Pluggable storage**: core depends only on core.Backend. Filesystem
//     (JSON/YAML, one file per document) and in-memory backends ship
//     out of the box.
//   - **Provenance**: every instruction records the ordered template list
//     and a compiled flag in its metadata.
//   - **Safe writes**: the filesystem backend writes atomically at
//     single-file granularity.
//
// Usage:
//
//	svc, err := hydropump.New("./store", hydropump.WithFormat("yaml"))
//
//	tmpl, err := svc.CreateTemplate(ctx, "base", hydropump.Payload{"region": "us-east-1"}, nil)
//
//	inst, err := svc.CreateInstruction(ctx, "prod", hydropump.Payload{"replicas": 3}, nil, []string{"base"})
package hydropump
