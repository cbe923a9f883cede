package sources

// SourceSpec describes a save source to be created from configuration.
type SourceSpec struct {
	Type   string
	Config Config
}

// Clone returns a copy of the spec with its own Config map.
func (s SourceSpec) Clone() SourceSpec {
	cfg := make(Config, len(s.Config))
	for k, v := range s.Config {
		cfg[k] = v
	}
	return SourceSpec{Type: s.Type, Config: cfg}
}
