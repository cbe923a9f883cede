package o3source

import (
	"context"
	"fmt"
)

// ObjectGetter is the part of storage.O3Client a source needs.
type ObjectGetter interface {
	Bucket() string
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// Source downloads the save file object on every Read.
type Source struct {
	client ObjectGetter
	key    string
}

func NewSource(client ObjectGetter, key string) *Source {
	return &Source{client: client, key: key}
}

func (s *Source) Describe() string {
	return fmt.Sprintf("o3://%s/%s", s.client.Bucket(), s.key)
}

func (s *Source) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.GetObject(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.Describe(), err)
	}
	return data, nil
}
