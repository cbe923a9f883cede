package o3source

import (
	"fmt"

	"github.com/gordon0907/ark-tribe-log/internal/config"
	"github.com/gordon0907/ark-tribe-log/internal/infrastructure/sources"
	"github.com/gordon0907/ark-tribe-log/internal/storage"
)

func init() {
	sources.GlobalRegistry.Register(&Factory{})
}

// Factory creates sources backed by an S3-compatible bucket. Registers as "o3".
type Factory struct{}

func (f *Factory) Name() string {
	return "o3"
}

func (f *Factory) ConfigSpec() sources.SourceTypeInfo {
	return sources.SourceTypeInfo{
		Type:        "o3",
		Description: "Save file stored as an object in Akave O3 or any S3-compatible bucket.",
		Fields: []sources.ConfigField{
			{Name: "endpoint", Type: "string", Required: true, Description: "S3 API endpoint", Example: "https://o3-rc2.akave.xyz"},
			{Name: "bucket", Type: "string", Required: true, Description: "Bucket holding the save file", Example: "ark-saves"},
			{Name: "key", Type: "string", Required: true, Description: "Object key of the .arktribe file", Example: "SavedArks/1167393038.arktribe"},
			{Name: "region", Type: "string", Required: false, Description: "Signing region", Example: "us-east-1"},
			{Name: "access_key", Type: "string", Required: false, Description: "Access key ID"},
			{Name: "secret_key", Type: "string", Required: false, Description: "Secret access key"},
		},
	}
}

func (f *Factory) Create(cfg sources.Config) (sources.SaveSource, error) {
	client, err := storage.NewO3Client(&config.O3Config{
		Endpoint:  cfg.String("endpoint"),
		Region:    cfg.String("region"),
		Bucket:    cfg.String("bucket"),
		AccessKey: cfg.String("access_key"),
		SecretKey: cfg.String("secret_key"),
	})
	if err != nil {
		return nil, fmt.Errorf("o3 client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("o3 source: %w", storage.ErrNotConfigured)
	}
	return NewSource(client, cfg.String("key")), nil
}
