package filesource

import (
	"github.com/gordon0907/ark-tribe-log/internal/infrastructure/sources"
)

func init() {
	sources.GlobalRegistry.Register(&Factory{})
}

// Factory creates local file sources. Registers as "file".
type Factory struct{}

func (f *Factory) Name() string {
	return "file"
}

func (f *Factory) ConfigSpec() sources.SourceTypeInfo {
	return sources.SourceTypeInfo{
		Type:        "file",
		Description: "Save file on local or mounted storage. The whole file is read on every request.",
		Fields: []sources.ConfigField{
			{Name: "path", Type: "string", Required: true, Description: "Path to the .arktribe file", Example: "/SavedArks/1167393038.arktribe"},
		},
	}
}

func (f *Factory) Create(cfg sources.Config) (sources.SaveSource, error) {
	return NewSource(cfg.String("path")), nil
}
