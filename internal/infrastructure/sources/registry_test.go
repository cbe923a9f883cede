package sources

import (
	"context"
	"errors"
	"testing"
)

type stubSource struct{ data []byte }

func (s *stubSource) Describe() string { return "stub" }

func (s *stubSource) Read(context.Context) ([]byte, error) {
	return append([]byte(nil), s.data...), nil
}

type stubFactory struct{ name string }

func (f stubFactory) Name() string { return f.name }

func (f stubFactory) ConfigSpec() SourceTypeInfo {
	return SourceTypeInfo{Type: f.name, Fields: []ConfigField{{Name: "data", Type: "string", Required: true}}}
}

func (stubFactory) Create(cfg Config) (SaveSource, error) {
	return &stubSource{data: []byte(cfg.String("data"))}, nil
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubFactory{name: "stub"})
	reg.Register(stubFactory{name: "alpha"})

	if names := reg.Types(); len(names) != 2 || names[0] != "alpha" || names[1] != "stub" {
		t.Fatalf("unexpected registered types %v", names)
	}
	if _, err := reg.TypeInfo("stub"); err != nil {
		t.Fatalf("type info for stub: %v", err)
	}
	if _, err := reg.TypeInfo("ftp"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if _, err := reg.Open(SourceSpec{Type: "ftp"}); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}

	var missing *MissingFieldError
	if _, err := reg.Open(SourceSpec{Type: "stub", Config: Config{}}); !errors.As(err, &missing) || missing.Field != "data" {
		t.Fatalf("expected missing data field, got %v", err)
	}

	spec := SourceSpec{Type: "stub", Config: Config{"data": "abc"}}
	clone := spec.Clone()
	spec.Config["data"] = "changed"
	src, err := reg.Open(clone)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, _ := src.Read(context.Background())
	if string(got) != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}

	all := reg.TypesInfo()
	if len(all) != 2 || all[0].Type != "alpha" || all[1].Type != "stub" {
		t.Fatalf("unexpected type infos %v", all)
	}
}

func TestRegistry_RegisterTwicePanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubFactory{name: "stub"})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	reg.Register(stubFactory{name: "stub"})
}
