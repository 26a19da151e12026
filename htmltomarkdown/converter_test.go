package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/citegrab"
	"github.com/fwojciec/citegrab/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements citegrab.Converter at compile time.
var _ citegrab.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Hello, world!</p>`)

		require.NoError(t, err)
		assert.Equal(t, "Hello, world!", md)
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h1>Title</h1><h2>Subtitle</h2><h3>Section</h3>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
		assert.Contains(t, md, "### Section")
	})

	t.Run("demotes headings by offset", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter(htmltomarkdown.WithHeadingOffset(2))
		md, err := conv.Convert(`<h1>Title</h1><p>Intro</p><h2>Subtitle</h2><h5>Deep</h5>`)

		require.NoError(t, err)
		assert.Contains(t, md, "### Title")
		assert.Contains(t, md, "#### Subtitle")
		assert.Contains(t, md, "###### Deep")
		assert.NotContains(t, md, "####### ")
		assert.Contains(t, md, "Intro")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Visit <a href="https://example.com">Example</a> for more info.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[Example](https://example.com)")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ul><li>First</li><li>Second</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "First")
		assert.Contains(t, md, "Second")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<table><tr><th>Name</th><th>Value</th></tr><tr><td>Foo</td><td>123</td></tr></table>`)

		require.NoError(t, err)
		assert.Contains(t, md, "| Name")
		assert.Contains(t, md, "Foo")
	})

	t.Run("returns empty string for blank input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("  \n ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}
