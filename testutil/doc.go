// Package testutil provides testing utilities for modcache.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded random generation, deterministic payload fixtures, and
// a map-backed module representation for key-stability tests.
//
// # Deterministic Fixtures
//
//	rng := testutil.NewRNG(seed)
//	payload := testutil.RandomPayload(rng, 4)
//
// # Key-Stability Fixtures
//
//	mod := &testutil.SectionModule{Sections: map[string][]byte{...}}
//
// SectionModule hashes identically regardless of map population order, which
// is exactly the traversal guarantee real module representations must give.
package testutil
