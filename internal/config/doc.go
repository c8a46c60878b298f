// Package config defines the format-agnostic build model, along with the
// Loader interface that format-specific packages implement.
//
// The `config.Model` is the single source of truth the app package turns
// into a project. Concrete loaders, such as the HCL one, live in separate
// packages.
package config
