package service

import (
	"github.com/flexprice/billcycle/internal/config"
	"github.com/flexprice/billcycle/internal/domain/catalog"
	"github.com/flexprice/billcycle/internal/domain/proration"
	"github.com/flexprice/billcycle/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	ProrationCalculator proration.Calculator
	Catalog             catalog.Catalog
}
