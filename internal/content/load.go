package content

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadDocument fetches and decodes the site content document.
func LoadDocument(ctx context.Context, src Source, name string) (*Document, error) {
	data, err := src.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return &doc, nil
}

// LoadPublications fetches and decodes the publications document. A file
// without a publications key yields an empty list.
func LoadPublications(ctx context.Context, src Source, name string) ([]Publication, error) {
	data, err := src.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	var pubs Publications
	if err := yaml.Unmarshal(data, &pubs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return pubs.Publications, nil
}
