package modelkit

// Package modelkit is the runtime shared by generated OpenAPI client SDKs:
//
// - A schema-metadata-driven object model (Object) with a sparse property
//   store, lazy default materialization and oneof/choice coordination
// - Deep structural validation against per-field constraint tables,
//   including the bespoke mac/ipv4/ipv6/hex/binary string formats, with a
//   stable aggregate error model (Violation/ValidationError)
// - A canonical document codec with exact round-trip guarantees and int64
//   decimal-string wire coercion, rendered as JSON, YAML or a plain map
// - An ordered polymorphic container (List) with slice/name access,
//   optional choice unwrapping and external per-traversal cursors
//
// Design policy:
// - Generated packages supply Descriptors through a Registry; the runtime
//   never introspects types at runtime.
// - Field-level checks only accumulate; raising is reserved for the
//   top-level Validate/Serialize/Deserialize entry points.
// - Everything is synchronous and single-threaded; callers serialize
//   concurrent access to a graph externally.
//
// Typical usage, with descriptors registered by generated code:
//
//	cfg := reg.MustNew("deviceConfig")
//	_ = cfg.Set("name", "eth0")
//	s, err := cfg.SerializeJSON()
//	clone, err := cfg.Clone()
//	_, err = reg.MustNew("deviceConfig").Deserialize(s)
