// Package mocks provides mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for interfaces with persistence side effects, so tests can assert exactly
// when the session record is written and when it is deleted.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mock for the session state store.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=state_store_mock.go github.com/stylegenie/stylegenie-go/internal/state Store
