package resource

import (
	"github.com/pkg/errors"

	"github.com/drblury/restview/view"
)

// Page carries one page of a larger collection plus the counts needed to
// render the pagination envelope. Handlers return a *Page and the dispatcher
// renders it through the verb's view.
type Page struct {
	// Items is the slice of objects on this page.
	Items any
	// Number is the 1-based page number.
	Number int
	// PerPage is the page size used to slice the collection.
	PerPage int
	// Total is the size of the whole collection.
	Total int
}

// NewPage wraps one page of items. number and perPage are clamped to sane
// minimums so a hand-built page can never produce a negative envelope.
func NewPage(items any, number, perPage, total int) *Page {
	if number < 1 {
		number = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}
	return &Page{Items: items, Number: number, PerPage: perPage, Total: total}
}

// Pages returns the total page count, never below 1.
func (p *Page) Pages() int {
	pages := (p.Total + p.PerPage - 1) / p.PerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Render produces the pagination envelope. The field set and its order are a
// contract consumers depend on literally: page, pages, count, per_page,
// has_next, has_previous, start, end, then the items list rendered through
// itemView (raw items when itemView is nil).
func (p *Page) Render(itemView *view.View) (*view.Document, error) {
	pages := p.Pages()

	// 1-based record indexes of the page window; both zero on an empty
	// collection.
	start := 0
	end := 0
	if p.Total > 0 {
		start = (p.Number-1)*p.PerPage + 1
		if start > p.Total {
			start = 0
		} else {
			end = p.Number * p.PerPage
			if end > p.Total {
				end = p.Total
			}
		}
	}

	items := p.Items
	if itemView != nil {
		rendered, err := itemView.Render(p.Items)
		if err != nil {
			return nil, errors.Wrap(err, "rendering page items")
		}
		items = rendered
	}

	doc := view.NewDocument()
	doc.Set("page", p.Number)
	doc.Set("pages", pages)
	doc.Set("count", p.Total)
	doc.Set("per_page", p.PerPage)
	doc.Set("has_next", p.Number < pages)
	doc.Set("has_previous", p.Number > 1)
	doc.Set("start", start)
	doc.Set("end", end)
	doc.Set("items", items)
	return doc, nil
}
