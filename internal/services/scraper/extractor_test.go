package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected []ExtractedSection
	}{
		{
			name: "headings partition the page",
			html: `<html><head><title>Django overview</title></head><body>
				<div id="content">
					<h1>Overview</h1><p>Django is...</p>
					<h2>Models</h2><p>A model is...</p>
				</div></body></html>`,
			expected: []ExtractedSection{
				{Level: 1, Heading: "Overview", Body: "Django is...", Ordinal: 0},
				{Level: 2, Heading: "Models", Body: "A model is...", Ordinal: 1},
			},
		},
		{
			name: "navigation chrome is skipped",
			html: `<html><body><div id="content">
				<div class="breadcrumbs"><h2>Home</h2></div>
				<h1>Views</h1><p>A view is a callable.</p>
				<div class="sphinxsidebar"><h3>Index</h3><p>ignored</p></div>
			</div></body></html>`,
			expected: []ExtractedSection{
				{Level: 1, Heading: "Views", Body: "A view is a callable.", Ordinal: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := Extract([]byte(tt.html), "https://docs.djangoproject.com/en/5.2/")
			require.NoError(t, err)

			sections := it.All()
			require.Len(t, sections, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, want.Level, sections[i].Level)
				assert.Equal(t, want.Heading, sections[i].Heading)
				assert.Equal(t, want.Body, sections[i].Body)
				assert.Equal(t, want.Ordinal, sections[i].Ordinal)
				assert.NotEmpty(t, sections[i].ContentHash)
			}
		})
	}
}

func TestExtractCodeBlocksAndLists(t *testing.T) {
	html := `<html><body><div id="content">
		<h2>Defining models</h2>
		<p>Subclass the base model.</p>
		<pre>class Artist(models.Model):
    name = models.CharField(max_length=100)</pre>
		<ul><li>one field per attribute</li><li>tables are generated</li></ul>
	</div></body></html>`

	it, err := Extract([]byte(html), "https://docs.djangoproject.com/en/5.2/topics/db/models/")
	require.NoError(t, err)

	sections := it.All()
	require.Len(t, sections, 1)

	body := sections[0].Body
	assert.Contains(t, body, "Subclass the base model.")
	assert.Contains(t, body, "```\nclass Artist(models.Model):\n    name = models.CharField(max_length=100)\n```")
	assert.Contains(t, body, "- one field per attribute")
	assert.Contains(t, body, "- tables are generated")
}

func TestExtractIteratorIsRestartable(t *testing.T) {
	html := `<html><body><div id="content">
		<h1>First</h1><p>a</p>
		<h2>Second</h2><p>b</p>
	</div></body></html>`

	it, err := Extract([]byte(html), "https://example.org/doc")
	require.NoError(t, err)

	first := it.All()
	require.Len(t, first, 2)

	// Exhausted iterator yields nothing more
	_, ok := it.Next()
	assert.False(t, ok)

	it.Reset()
	second := it.All()
	assert.Equal(t, first, second)
}

func TestExtractFallbackWithoutHeadings(t *testing.T) {
	html := `<html><head><title>Django Documentation</title></head><body>
		<div id="content"><p>Everything you need to know.</p><p>Start here.</p></div>
	</body></html>`

	it, err := Extract([]byte(html), "https://docs.djangoproject.com/en/5.2/")
	require.NoError(t, err)

	sections := it.All()
	require.Len(t, sections, 1)
	assert.Equal(t, 1, sections[0].Level)
	assert.Equal(t, "Django Documentation", sections[0].Heading)
	assert.Contains(t, sections[0].Body, "Everything you need to know.")
	assert.Contains(t, sections[0].Body, "Start here.")
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "no headings and no body text",
			html: `<html><body><div id="content"></div></body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract([]byte(tt.html), "https://example.org/empty")
			require.Error(t, err)
			assert.True(t, IsParseError(err))
		})
	}
}

func TestExtractTitle(t *testing.T) {
	it, err := Extract([]byte(`<html><head><title>  Models | Django  </title></head><body>
		<div id="content"><h1>Models</h1><p>body</p></div></body></html>`), "https://example.org")
	require.NoError(t, err)
	assert.Equal(t, "Models | Django", it.Title())
}
