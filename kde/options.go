// SPDX-License-Identifier: MIT

// Option configures CKNSGaussianKDE construction and the QueryBatch calls of
// both CKNSGaussianKDE and ExactGaussianKDE, mirroring spectral.GraphOption / builder.BuilderOption's functional-options
// convention.
package kde

import "runtime"

type config struct {
	seed    int64
	workers int
}

// Option mutates config during construction.
type Option func(*config)

// WithSeed fixes the base RNG seed used to derive every sampling and
// E2LSH-projection stream. Default: defaultSeed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithWorkerCount overrides the worker-pool size used for lattice
// construction and batched query dispatch. Default: runtime.NumCPU().
func WithWorkerCount(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

func resolveConfig(opts []Option) config {
	cfg := config{seed: defaultSeed, workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = 1
	}
	return cfg
}
