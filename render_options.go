package cardfmt

// RenderTarget selects the layout strategy for keyword fragments.
type RenderTarget uint8

const (
	// TargetInteractive is live on-screen preview; labels are centered by the layout engine.
	TargetInteractive RenderTarget = iota
	// TargetRasterized is offscreen high-resolution export; keyword labels get a fixed box.
	TargetRasterized
)

func (t RenderTarget) String() string {
	if t == TargetRasterized {
		return "rasterized"
	}
	return "interactive"
}

// RenderOption configures Parse.
type RenderOption func(*renderConfig)

type renderConfig struct {
	registry *Registry
	target   RenderTarget
}

// WithRegistry resolves keywords against reg instead of the default registry.
func WithRegistry(reg *Registry) RenderOption {
	return func(cfg *renderConfig) {
		cfg.registry = reg
	}
}

// WithTarget sets the render target.
func WithTarget(target RenderTarget) RenderOption {
	return func(cfg *renderConfig) {
		cfg.target = target
	}
}

// WithExport selects TargetRasterized when exporting is true.
func WithExport(exporting bool) RenderOption {
	return func(cfg *renderConfig) {
		if exporting {
			cfg.target = TargetRasterized
		} else {
			cfg.target = TargetInteractive
		}
	}
}

func resolveConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = defaultRegistry
	}
	return cfg
}
