package ui

import (
	"fmt"
	"strings"
)

// Registry is the fixed, ordered set of pages. Index i is selected by key i+1.
type Registry struct {
	pages []Page
}

func NewRegistry(pages ...Page) *Registry {
	return &Registry{pages: append([]Page(nil), pages...)}
}

func (r *Registry) Len() int { return len(r.pages) }

// Page returns the page at i. i must be in [0, Len()).
func (r *Registry) Page(i int) Page { return r.pages[i] }

// TitleSegment is one label of the title bar.
type TitleSegment struct {
	Text   string
	Active bool
}

// Title lists every page as "n:Label", bracketing the active one.
func (r *Registry) Title(active int) []TitleSegment {
	segs := make([]TitleSegment, len(r.pages))
	for i, p := range r.pages {
		if i == active {
			segs[i] = TitleSegment{Text: fmt.Sprintf("[%d:%s]", i+1, p.Label()), Active: true}
			continue
		}
		segs[i] = TitleSegment{Text: fmt.Sprintf(" %d:%s ", i+1, p.Label())}
	}
	return segs
}

// TitleText is Title flattened, for plain output.
func (r *Registry) TitleText(active int) string {
	var sb strings.Builder
	for i, s := range r.Title(active) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}
