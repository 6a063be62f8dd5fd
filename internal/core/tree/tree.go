package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

type RowKind int

const (
	RowSingle RowKind = iota
	RowParent
	RowChild
	RowFooter
)

func (k RowKind) String() string {
	switch k {
	case RowSingle:
		return "single"
	case RowParent:
		return "parent"
	case RowChild:
		return "child"
	case RowFooter:
		return "footer"
	default:
		return "unknown"
	}
}

type BucketState int

const (
	Absent BucketState = iota
	Single
	Group
)

func (s BucketState) String() string {
	switch s {
	case Single:
		return "single"
	case Group:
		return "group"
	default:
		return "absent"
	}
}

const (
	footerPrefix = "Total"
	noClock      = "--:--"
)

// Row is one displayed line. Label is the tree column, the other text fields are the value columns.
type Row struct {
	ID       string
	Kind     RowKind
	Day      string
	Label    string
	Duration string
	Hardness string
	Title    string
	Note     string
	Entry    *domain.SessionEntry
	Children []*Row
}

// Values returns the value columns in display order.
func (r *Row) Values() [4]string {
	return [4]string{r.Duration, r.Hardness, r.Title, r.Note}
}

func (r *Row) snapshot() Row {
	cp := *r
	cp.Children = nil
	if r.Entry != nil {
		e := *r.Entry
		cp.Entry = &e
	}
	return cp
}

func (r *Row) clone() *Row {
	cp := r.snapshot()
	for _, c := range r.Children {
		cp.Children = append(cp.Children, c.clone())
	}
	return &cp
}

func (r *Row) footer() *Row {
	for _, c := range r.Children {
		if c.Kind == RowFooter || strings.HasPrefix(c.Label, footerPrefix) {
			return c
		}
	}
	return nil
}

func (r *Row) entryChildren() []*Row {
	var out []*Row
	for _, c := range r.Children {
		if c.Kind != RowFooter && !strings.HasPrefix(c.Label, footerPrefix) {
			out = append(out, c)
		}
	}
	return out
}

func (r *Row) indexOf(id string) int {
	for i, c := range r.Children {
		if c.ID == id {
			return i
		}
	}
	return -1
}

type bucket struct {
	state BucketState
	row   *Row
}

// Tree is the day grouped projection of the entry list. The entry list stays canonical.
type Tree struct {
	Roots []*Row
	index map[string]*bucket
	newID func() string
}

func New() *Tree {
	return &Tree{
		index: make(map[string]*bucket),
		newID: uuid.NewString,
	}
}

// NewWithIDs builds an empty tree that takes row IDs from newID.
func NewWithIDs(newID func() string) *Tree {
	t := New()
	t.newID = newID
	return t
}

// Clone deep copies the tree, including the day index.
func (t *Tree) Clone() *Tree {
	cp := &Tree{
		index: make(map[string]*bucket, len(t.index)),
		newID: t.newID,
	}
	byID := make(map[string]*Row)
	for _, r := range t.Roots {
		c := r.clone()
		cp.Roots = append(cp.Roots, c)
		byID[c.ID] = c
	}
	for day, b := range t.index {
		if b == nil || b.row == nil {
			continue
		}
		if row, ok := byID[b.row.ID]; ok {
			cp.index[day] = &bucket{state: b.state, row: row}
		}
	}
	return cp
}

// State reports the shape of a day bucket.
func (t *Tree) State(day string) BucketState {
	if b := t.lookup(day); b != nil {
		return b.state
	}
	return Absent
}

// Bucket returns the top level row of the day: the single row or the group parent.
func (t *Tree) Bucket(day string) *Row {
	if b := t.lookup(day); b != nil {
		return b.row
	}
	return nil
}

// Footers counts the footer rows under the day's parent.
func (t *Tree) Footers(day string) int {
	row := t.Bucket(day)
	if row == nil {
		return 0
	}
	n := 0
	for _, c := range row.Children {
		if c.Kind == RowFooter {
			n++
		}
	}
	return n
}

// Flat lists every row depth first with its depth (0 for roots).
func (t *Tree) Flat() []FlatRow {
	var out []FlatRow
	for _, r := range t.Roots {
		out = append(out, FlatRow{Row: r, Depth: 0})
		for _, c := range r.Children {
			out = append(out, FlatRow{Row: c, Depth: 1, Parent: r})
		}
	}
	return out
}

type FlatRow struct {
	Row    *Row
	Parent *Row
	Depth  int
}

func (t *Tree) rootIndex(id string) int {
	for i, r := range t.Roots {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// lookup finds the bucket of a day. A missing or stale index entry is recovered by matching
// root labels, so a desynced index never leads to a second bucket for the same day.
func (t *Tree) lookup(day string) *bucket {
	if b, ok := t.index[day]; ok && b != nil && b.row != nil && t.rootIndex(b.row.ID) >= 0 {
		return b
	}
	delete(t.index, day)

	for _, r := range t.Roots {
		if !labelMatchesDay(r, day) {
			continue
		}
		b := &bucket{row: r, state: Single}
		if r.Kind == RowParent {
			b.state = Group
		}
		t.index[day] = b
		return b
	}
	return nil
}

func labelMatchesDay(r *Row, day string) bool {
	if r.Day == day {
		return true
	}
	return r.Label == day || strings.HasPrefix(r.Label, day+" ")
}

// rowDay is the day of a root row, taken from its label when the field was lost.
func rowDay(r *Row) string {
	if r.Day != "" {
		return r.Day
	}
	day, _, _ := strings.Cut(r.Label, " ")
	return day
}

func (t *Tree) id() string {
	if t.newID == nil {
		t.newID = uuid.NewString
	}
	return t.newID()
}

func parentLabel(day string, count int) string {
	return fmt.Sprintf("%s (%d)", day, count)
}

func singleLabel(agg domain.DayAggregate) string {
	return fmt.Sprintf("%s — Total: %d — Points: %.2f (Avg H: %.2f)", agg.Day, agg.TotalMinutes, agg.Points, agg.AvgHardness)
}

func footerLabel(agg domain.DayAggregate) string {
	return fmt.Sprintf("%s • Points: %.2f (Avg H: %.2f)", footerPrefix, agg.Points, agg.AvgHardness)
}

func hardnessText(h int) string {
	if h == 0 {
		return ""
	}
	return strconv.Itoa(h)
}

func fillEntry(r *Row, e domain.SessionEntry) {
	cp := e
	r.Entry = &cp
	r.Duration = strconv.Itoa(e.Duration)
	r.Hardness = hardnessText(e.Hardness)
	r.Title = e.Title
	r.Note = e.Note
}
