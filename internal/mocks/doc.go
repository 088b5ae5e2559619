// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized mock implementations can be reused across test packages.
// Each mock exposes per-method function fields for customizable behavior
// and falls back to a working in-memory default implementation.
package mocks
