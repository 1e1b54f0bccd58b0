package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/restview/view"
)

func renderPage(t *testing.T, p *Page, itemView *view.View) *view.Document {
	t.Helper()

	doc, err := p.Render(itemView)
	require.NoError(t, err)
	return doc
}

// The envelope field set and order are a wire contract.
func TestPageEnvelopeShape(t *testing.T) {
	doc := renderPage(t, NewPage([]testBook{{ID: 1}}, 2, 10, 35), nil)

	assert.Equal(t, []string{
		"page", "pages", "count", "per_page",
		"has_next", "has_previous", "start", "end", "items",
	}, doc.Keys())
}

func TestPageCounts(t *testing.T) {
	doc := renderPage(t, NewPage([]testBook{}, 2, 10, 35), nil)

	get := func(key string) any {
		value, ok := doc.Get(key)
		require.True(t, ok, key)
		return value
	}

	assert.Equal(t, 2, get("page"))
	assert.Equal(t, 4, get("pages"))
	assert.Equal(t, 35, get("count"))
	assert.Equal(t, 10, get("per_page"))
	assert.Equal(t, true, get("has_next"))
	assert.Equal(t, true, get("has_previous"))
	assert.Equal(t, 11, get("start"))
	assert.Equal(t, 20, get("end"))
}

func TestPageFirstAndLast(t *testing.T) {
	first := renderPage(t, NewPage(nil, 1, 10, 25), nil)
	hasPrev, _ := first.Get("has_previous")
	assert.Equal(t, false, hasPrev)
	hasNext, _ := first.Get("has_next")
	assert.Equal(t, true, hasNext)

	last := renderPage(t, NewPage(nil, 3, 10, 25), nil)
	hasPrev, _ = last.Get("has_previous")
	assert.Equal(t, true, hasPrev)
	hasNext, _ = last.Get("has_next")
	assert.Equal(t, false, hasNext)
	end, _ := last.Get("end")
	assert.Equal(t, 25, end)
}

func TestPageEmptyCollection(t *testing.T) {
	doc := renderPage(t, NewPage([]testBook{}, 1, 10, 0), nil)

	pages, _ := doc.Get("pages")
	assert.Equal(t, 1, pages)
	start, _ := doc.Get("start")
	assert.Equal(t, 0, start)
	end, _ := doc.Get("end")
	assert.Equal(t, 0, end)
	hasNext, _ := doc.Get("has_next")
	assert.Equal(t, false, hasNext)
}

func TestPageRendersItemsThroughView(t *testing.T) {
	itemView := view.MustNew("book", view.Path("title"))
	page := NewPage([]testBook{{Title: "first"}, {Title: "second"}}, 1, 10, 2)

	doc := renderPage(t, page, itemView)

	items, ok := doc.Get("items")
	require.True(t, ok)
	docs, ok := items.([]any)
	require.True(t, ok)
	require.Len(t, docs, 2)
	title, _ := docs[0].(*view.Document).Get("title")
	assert.Equal(t, "first", title)
}

func TestNewPageClampsInputs(t *testing.T) {
	page := NewPage(nil, 0, -5, -1)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.PerPage)
	assert.Equal(t, 0, page.Total)
}
