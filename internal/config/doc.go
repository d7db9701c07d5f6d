// Package config defines the format-agnostic model of a pulse program,
// along with the Loader interface for reading one from configuration files.
//
// The model is the single source of truth for the app layer: it records the
// device limits, the cycle parameters, and an ordered list of paint
// operations per channel. Concrete loaders, such as the HCL one, live in
// separate packages.
package config
