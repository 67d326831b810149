// Package mocks holds testify-based test doubles for the interfaces in internal/ports.
package mocks
