package config

import "context"

// Loader is the interface for a format-specific pulse-program loader.
type Loader interface {
	// Load reads a program from a file or a directory of files and
	// translates it into the format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}
