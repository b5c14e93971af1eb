// SPDX-License-Identifier: MIT

// GraphOption configures Graph construction, mirroring builder.BuilderOption's
// functional-options convention.
package spectral

// graphConfig holds the resolved construction-time knobs.
type graphConfig struct {
	epsilon float64
}

// GraphOption mutates graphConfig during construction.
type GraphOption func(*graphConfig)

// WithEpsilon overrides the default pruning/symmetry-check epsilon
// (matrix.DefaultEpsilon) used during adjacency-or-Laplacian disambiguation.
func WithEpsilon(eps float64) GraphOption {
	return func(c *graphConfig) { c.epsilon = eps }
}

func resolveGraphConfig(opts []GraphOption) graphConfig {
	cfg := graphConfig{epsilon: pruneEpsilon}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
