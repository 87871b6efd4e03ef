package temporal

import (
	"context"
	"crypto/tls"

	"github.com/harvestlane/backoffice/internal/config"
	"github.com/harvestlane/backoffice/internal/logger"
	"go.temporal.io/sdk/client"
)

// APIKeyProvider provides headers for API key authentication
type APIKeyProvider struct {
	APIKey    string
	Namespace string
}

// GetHeaders implements client.HeadersProvider
func (a *APIKeyProvider) GetHeaders(_ context.Context) (map[string]string, error) {
	return map[string]string{
		"Authorization":      "Bearer " + a.APIKey,
		"temporal-namespace": a.Namespace,
	}, nil
}

// TemporalClient wraps the Temporal SDK client for application use.
type TemporalClient struct {
	Client client.Client
}

// NewTemporalClient dials temporal when it is enabled. A disabled configuration yields a
// client with a nil SDK client, and fee recalculation falls back to running in process.
func NewTemporalClient(cfg *config.Configuration, log *logger.Logger) (*TemporalClient, error) {
	if !cfg.Temporal.Enabled {
		log.Info("Temporal disabled, fee recalculation runs in process")
		return &TemporalClient{}, nil
	}

	clientOptions := client.Options{
		HostPort:  cfg.Temporal.Address,
		Namespace: cfg.Temporal.Namespace,
		Logger:    log.GetTemporalLogger(),
	}
	if cfg.Temporal.APIKey != "" {
		clientOptions.HeadersProvider = &APIKeyProvider{
			APIKey:    cfg.Temporal.APIKey,
			Namespace: cfg.Temporal.Namespace,
		}
	}
	if cfg.Temporal.TLS {
		clientOptions.ConnectionOptions.TLS = &tls.Config{}
	}

	c, err := client.Dial(clientOptions)
	if err != nil {
		log.Error("Failed to create temporal client", "error", err)
		return nil, err
	}

	log.Info("Temporal client created successfully")
	return &TemporalClient{Client: c}, nil
}

// Enabled reports whether the client is connected
func (c *TemporalClient) Enabled() bool {
	return c != nil && c.Client != nil
}

// Close closes the SDK client if one was dialed
func (c *TemporalClient) Close() {
	if c.Enabled() {
		c.Client.Close()
	}
}
