/*
config.go defines the engine options and their TOML file form, so the
binaries around the engine can share one tunable configuration.
*/

package engine

import "github.com/BurntSushi/toml"

// Options are the engine tunables.
type Options struct {
	// TTCapacity bounds the transposition table entry count.
	TTCapacity int `toml:"tt_capacity"`
	// MaxDepth is the default iterative-deepening depth limit, used when a
	// search does not set its own.
	MaxDepth int `toml:"max_depth"`
	// MoveTimeMillis caps the per-move wall clock budget.
	MoveTimeMillis int `toml:"move_time_millis"`
}

// DefaultOptions returns the options used when no configuration file is
// present.
func DefaultOptions() Options {
	return Options{
		TTCapacity:     1 << 22,
		MaxDepth:       6,
		MoveTimeMillis: 250,
	}
}

// LoadOptions reads a TOML options file.  Missing keys keep their default
// values.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return DefaultOptions(), err
	}
	return opts, nil
}
