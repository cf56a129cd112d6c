package mock

import "github.com/playbookos/ingest"

var _ ingest.Converter = (*Converter)(nil)

// Converter is a mock implementation of ingest.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
