// Package app contains the core application logic. It loads the build
// model, turns it into a configured project with the Rocker plugin applied,
// and exposes the operations the CLI offers, decoupled from any specific
// entrypoint.
package app
