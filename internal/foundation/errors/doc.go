// Package errors provides the classified error primitives used across docnav.
//
// A ClassifiedError carries a category (config, validation, content, ...), a
// severity and structured context. Errors are built with the fluent builder:
//
//	err := errors.ConfigError("duplicate sidebar category").
//		WithContext("category", label).
//		Build()
//
// Structural errors (a navigation shape the site cannot be built from) are
// config errors with fatal severity; see IsStructural.
package errors
