// Package list provides list display components for the TUI.
package list

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// Kind is the dropdown section a row belongs to.
type Kind int

const (
	KindTag Kind = iota
	KindItem
	KindBrand
)

// Heading returns the section heading for k.
func (k Kind) Heading() string {
	switch k {
	case KindTag:
		return "Tags"
	case KindItem:
		return "Items"
	case KindBrand:
		return "Brands"
	default:
		return ""
	}
}

// Row is one selectable dropdown entry.
type Row struct {
	Kind  Kind
	Label string
}

// ResultList renders a search result as sectioned, navigable rows.
type ResultList struct {
	rows     []Row
	selected int
	styles   *styles.Styles
	width    int
	height   int

	// rowAtLine maps each rendered line to a row index, -1 for headings.
	rowAtLine []int
}

// NewResultList creates an empty list.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		selected: -1,
		styles:   s,
		width:    40,
		height:   12,
	}
}

// SetResult replaces the rows with r's sections, in Tags, Items, Brands
// order. Selection resets to the first row.
func (r *ResultList) SetResult(res domain.SearchResult) {
	rows := make([]Row, 0, res.Count())
	for _, t := range res.Tags {
		rows = append(rows, Row{Kind: KindTag, Label: t})
	}
	for _, it := range res.Items {
		rows = append(rows, Row{Kind: KindItem, Label: it})
	}
	for _, b := range res.Brands {
		rows = append(rows, Row{Kind: KindBrand, Label: b})
	}
	r.rows = rows
	r.selected = -1
	if len(rows) > 0 {
		r.selected = 0
	}
}

// View renders the visible window of sections and rows.
func (r *ResultList) View() string {
	lines, owners := r.renderAll()

	start, end := r.window(owners)
	r.rowAtLine = owners[start:end]

	return strings.Join(lines[start:end], "\n")
}

func (r *ResultList) renderAll() ([]string, []int) {
	lines := make([]string, 0, len(r.rows)+3)
	owners := make([]int, 0, len(r.rows)+3)
	labelWidth := max(4, r.width-2)

	prev := Kind(-1)
	for i, row := range r.rows {
		if row.Kind != prev {
			lines = append(lines, r.styles.Section.Render(row.Kind.Heading()))
			owners = append(owners, -1)
			prev = row.Kind
		}

		label := ansi.Truncate(row.Label, labelWidth, "…")
		if i == r.selected {
			lines = append(lines, r.styles.Selected.Render("› "+label))
		} else {
			lines = append(lines, r.styles.Normal.Render("  "+label))
		}
		owners = append(owners, i)
	}
	return lines, owners
}

// window keeps the selected row visible within height lines.
func (r *ResultList) window(owners []int) (int, int) {
	if r.height <= 0 || len(owners) <= r.height {
		return 0, len(owners)
	}

	selLine := 0
	for line, idx := range owners {
		if idx == r.selected {
			selLine = line
			break
		}
	}
	start := max(0, selLine-r.height+1)
	return start, min(len(owners), start+r.height)
}

// RowAt maps a line of the last View output to a row index. Headings and
// lines outside the output report false.
func (r *ResultList) RowAt(line int) (int, bool) {
	if line < 0 || line >= len(r.rowAtLine) {
		return 0, false
	}
	idx := r.rowAtLine[line]
	return idx, idx >= 0
}

// LineOf returns the line of the last View output showing row idx.
func (r *ResultList) LineOf(idx int) (int, bool) {
	for line, owner := range r.rowAtLine {
		if owner == idx {
			return line, true
		}
	}
	return 0, false
}

// Rows returns the current rows.
func (r *ResultList) Rows() []Row {
	return r.rows
}

// Selected returns the selected row index, -1 when empty.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected selects row index when it exists.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.rows) {
		r.selected = index
	}
}

// SelectedRow returns the highlighted row.
func (r *ResultList) SelectedRow() (Row, bool) {
	if r.selected < 0 || r.selected >= len(r.rows) {
		return Row{}, false
	}
	return r.rows[r.selected], true
}

// MoveUp moves the selection up one row.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves the selection down one row.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.rows)-1 {
		r.selected++
	}
}

// SetDimensions sets the list's width and maximum height in lines.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of rows.
func (r *ResultList) Count() int {
	return len(r.rows)
}

// IsEmpty reports whether there are no rows.
func (r *ResultList) IsEmpty() bool {
	return len(r.rows) == 0
}
