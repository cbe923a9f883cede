package sources

// Factory creates a SaveSource from config.
// Each source type (file, o3, ...) implements and registers a Factory.
// ConfigSpec declares which configuration fields this source type needs.
type Factory interface {
	Name() string
	ConfigSpec() SourceTypeInfo
	Create(cfg Config) (SaveSource, error)
}
