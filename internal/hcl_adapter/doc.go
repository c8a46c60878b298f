// Package hcl_adapter provides the HCL implementation of config.Loader. It
// owns file discovery, parsing and the translation of HCL blocks into the
// format-agnostic build model.
package hcl_adapter
