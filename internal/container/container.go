package container

import (
	"context"
	"net/http"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	vision "cloud.google.com/go/vision/v2/apiv1"

	"go-image-fraud-analyzer/internal/analyzer"
	"go-image-fraud-analyzer/internal/config"
	"go-image-fraud-analyzer/internal/transport"
	"go-image-fraud-analyzer/internal/validation"
	"go-image-fraud-analyzer/internal/visionclient"
)

// Container holds all application dependencies
type Container struct {
	config           *config.Config
	webClient        *vision.ImageAnnotatorClient
	predictionClient *aiplatform.PredictionClient
	imageValidator   validation.ImageValidator
	imageAnalyzer    analyzer.ImageAnalyzer
	handler          http.Handler
}

// NewContainer creates a new dependency injection container. The remote
// clients are constructed eagerly here so concurrent first requests never
// race client setup.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	webClient, err := visionclient.NewWebDetectionClient(ctx)
	if err != nil {
		return nil, err
	}

	predictionClient, err := visionclient.NewPredictionClient(ctx, cfg.Vision.PredictionAPIEndpoint())
	if err != nil {
		webClient.Close()
		return nil, err
	}

	// Build dependency graph
	imageValidator := validation.NewImageValidator(cfg.Vision.MaxImageSize)
	imageAnalyzer := analyzer.NewImageAnalyzer(
		imageValidator,
		analyzer.NewWebSearchStrategy(visionclient.NewWebDetector(webClient)),
		analyzer.NewClassificationStrategy(predictionClient, cfg.Vision.ModelEndpointPath()),
		analyzer.NewExifStrategy(),
	)
	handler := transport.NewHandler(imageAnalyzer, cfg)

	return &Container{
		config:           cfg,
		webClient:        webClient,
		predictionClient: predictionClient,
		imageValidator:   imageValidator,
		imageAnalyzer:    imageAnalyzer,
		handler:          handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases the remote-service client connections.
func (c *Container) Close() error {
	var firstErr error
	if err := c.webClient.Close(); err != nil {
		firstErr = err
	}
	if err := c.predictionClient.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
