package mock

import "github.com/fwojciec/citegrab"

var _ citegrab.Converter = (*Converter)(nil)

// Converter is a mock implementation of citegrab.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
