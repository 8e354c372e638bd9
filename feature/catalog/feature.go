package catalog

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the catalog pipeline into the loader.
type Feature struct {
	service *Service
	cfg     Config
	logger  *zap.Logger
}

// NewFeature creates the catalog feature around an existing service.
func NewFeature(service *Service, cfg Config, logger *zap.Logger) *Feature {
	return &Feature{service: service, cfg: cfg, logger: logger}
}

// Name returns the feature name.
func (f *Feature) Name() string { return "catalog" }

// IsEnabled reports whether the feature is enabled in configuration.
func (f *Feature) IsEnabled() bool { return f.cfg.Enabled }

// Load registers the catalog routes.
func (f *Feature) Load(app fiber.Router) error {
	handler := NewHandler(f.service, f.logger)
	handler.RegisterRoutes(app)
	return nil
}
