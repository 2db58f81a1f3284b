// Package pipeline runs blueprint generators with caching.
//
// The same [Runner] serves the CLI and the HTTP API, so both entry points
// validate, cache and log generator runs the same way.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Generate(ctx, pipeline.Request{
//	    Generator: memory.Name,
//	    Memory:    memory.Options{Width: 4, Height: 16},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Blueprint)
//
// Results are cached under a key derived from the generator name, its
// options and a digest of its input. Set Request.Refresh to bypass the
// cache lookup; the fresh result is still stored.
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/TheJP/factorio-blueprint/pkg/errors"
	"github.com/TheJP/factorio-blueprint/pkg/generate/loader"
	"github.com/TheJP/factorio-blueprint/pkg/generate/memory"
)

// Generators lists the supported generator names.
var Generators = []string{memory.Name, loader.Name}

// Request describes one generator run.
type Request struct {
	// Generator selects the generator, one of [Generators].
	Generator string `json:"generator"`

	Memory memory.Options `json:"memory,omitzero"`
	Loader loader.Options `json:"loader,omitzero"`

	// Input is the data the loader stores. Unused by the memory generator.
	Input []byte `json:"-"`

	// Refresh skips the cache lookup.
	Refresh bool `json:"-"`
}

// Result is the output of a generator run.
type Result struct {
	Blueprint string        `json:"blueprint"`
	Entities  int           `json:"entities"`
	Cached    bool          `json:"cached"`
	Duration  time.Duration `json:"-"`
}

// ValidateGenerator checks that name is a supported generator.
func ValidateGenerator(name string) error {
	if !slices.Contains(Generators, name) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid generator: %q (must be one of: %s)",
			name, strings.Join(Generators, ", "))
	}
	return nil
}

// ValidateAndSetDefaults fills in default options for the selected
// generator and validates them.
func (r *Request) ValidateAndSetDefaults() error {
	if err := ValidateGenerator(r.Generator); err != nil {
		return err
	}
	switch r.Generator {
	case memory.Name:
		return r.Memory.Validate()
	case loader.Name:
		if r.Loader.MaxHeight == 0 {
			r.Loader.MaxHeight = loader.DefaultMaxHeight
		}
		if len(r.Input) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "loader needs non-empty input data")
		}
		return r.Loader.Validate()
	}
	return nil
}

// params returns the options that affect the output of the selected
// generator.
func (r *Request) params() any {
	if r.Generator == loader.Name {
		return r.Loader
	}
	return r.Memory
}
