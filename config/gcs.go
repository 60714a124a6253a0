package config

import (
	"context"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient prefers ADC, then explicit GCS_CREDENTIALS_JSON.
// GCS_ENDPOINT points the client at an emulator and disables auth.
func NewGCSClient(ctx context.Context, cfg *StoreConfig) (*storage.Client, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(cfg.GCSEndpoint) != "" {
		opts = append(opts, option.WithEndpoint(cfg.GCSEndpoint), option.WithoutAuthentication())
	} else if strings.TrimSpace(cfg.GCSCredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.GCSCredentialsJSON)))
	}
	return storage.NewClient(ctx, opts...)
}
