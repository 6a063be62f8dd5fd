package tree

import (
	"strconv"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

type OpKind int

const (
	OpInsert OpKind = iota
	OpDelete
	OpUpdate
	OpMove
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpUpdate:
		return "update"
	case OpMove:
		return "move"
	default:
		return "unknown"
	}
}

// Op is one UI mutation. ParentID is empty for root rows.
type Op struct {
	Kind     OpKind
	ID       string
	ParentID string
	Index    int
	Row      Row
}

type recorder struct {
	ops []Op
}

func (r *recorder) insert(parentID string, index int, row *Row) {
	r.ops = append(r.ops, Op{Kind: OpInsert, ID: row.ID, ParentID: parentID, Index: index, Row: row.snapshot()})
}

func (r *recorder) delete(parentID string, row *Row) {
	r.ops = append(r.ops, Op{Kind: OpDelete, ID: row.ID, ParentID: parentID, Row: row.snapshot()})
}

func (r *recorder) update(parentID string, row *Row) {
	r.ops = append(r.ops, Op{Kind: OpUpdate, ID: row.ID, ParentID: parentID, Row: row.snapshot()})
}

func (r *recorder) move(parentID string, index int, row *Row) {
	r.ops = append(r.ops, Op{Kind: OpMove, ID: row.ID, ParentID: parentID, Index: index, Row: row.snapshot()})
}

// Build projects entries onto an empty tree.
func Build(entries []domain.SessionEntry) (*Tree, []Op) {
	return Reconcile(nil, entries)
}

// Reconcile brings a copy of prev in line with entries and returns it with the UI operations
// that perform the change. prev is never modified.
func Reconcile(prev *Tree, entries []domain.SessionEntry) (*Tree, []Op) {
	var next *Tree
	if prev == nil {
		next = New()
	} else {
		next = prev.Clone()
	}
	rec := &recorder{}

	byDay := make(map[string][]domain.SessionEntry)
	days := domain.DayKeys(entries)
	for _, e := range entries {
		byDay[e.Date] = append(byDay[e.Date], e)
	}

	for _, r := range append([]*Row(nil), next.Roots...) {
		day := rowDay(r)
		if _, keep := byDay[day]; keep {
			continue
		}
		next.dropBucket(day, r, rec)
	}

	for _, day := range days {
		want := byDay[day]
		agg := domain.AggregateDay(entries, day)

		b := next.lookup(day)
		switch {
		case b == nil:
			next.createBucket(day, want, agg, rec)
		case b.state == Single:
			next.syncSingle(day, b, want, agg, rec)
		default:
			next.syncGroup(day, b, want, agg, rec)
		}
	}

	return next, rec.ops
}

func (t *Tree) dropBucket(day string, r *Row, rec *recorder) {
	idx := t.rootIndex(r.ID)
	if idx < 0 {
		return
	}
	t.Roots = append(t.Roots[:idx], t.Roots[idx+1:]...)
	if b, ok := t.index[day]; ok && b.row != nil && b.row.ID == r.ID {
		delete(t.index, day)
	}
	rec.delete("", r)
}

func (t *Tree) insertRoot(index int, r *Row, rec *recorder) {
	if index < 0 || index > len(t.Roots) {
		index = len(t.Roots)
	}
	t.Roots = append(t.Roots, nil)
	copy(t.Roots[index+1:], t.Roots[index:])
	t.Roots[index] = r
	rec.insert("", index, r)
}

func (t *Tree) newSingle(day string, e domain.SessionEntry, agg domain.DayAggregate) *Row {
	r := &Row{ID: t.id(), Kind: RowSingle, Day: day, Label: singleLabel(agg)}
	fillEntry(r, e)
	return r
}

func (t *Tree) newChild(day string, e domain.SessionEntry) *Row {
	label := e.Clock
	if label == "" {
		label = noClock
	}
	r := &Row{ID: t.id(), Kind: RowChild, Day: day, Label: label}
	fillEntry(r, e)
	return r
}

func (t *Tree) newFooter(day string, agg domain.DayAggregate) *Row {
	return &Row{
		ID:       t.id(),
		Kind:     RowFooter,
		Day:      day,
		Label:    footerLabel(agg),
		Duration: strconv.Itoa(agg.TotalMinutes),
	}
}

// absent -> single | group
func (t *Tree) createBucket(day string, want []domain.SessionEntry, agg domain.DayAggregate, rec *recorder) {
	if len(want) == 1 {
		r := t.newSingle(day, want[0], agg)
		t.insertRoot(len(t.Roots), r, rec)
		t.index[day] = &bucket{state: Single, row: r}
		return
	}

	parent := &Row{ID: t.id(), Kind: RowParent, Day: day, Label: parentLabel(day, len(want))}
	t.insertRoot(len(t.Roots), parent, rec)
	t.index[day] = &bucket{state: Group, row: parent}
	for _, e := range want {
		t.appendChild(parent, t.newChild(day, e), rec)
	}
	t.syncFooter(parent, agg, rec)
}

// single -> single | group
func (t *Tree) syncSingle(day string, b *bucket, want []domain.SessionEntry, agg domain.DayAggregate, rec *recorder) {
	cur := b.row
	if len(want) == 1 {
		changed := cur.Entry == nil || *cur.Entry != want[0] || cur.Label != singleLabel(agg)
		if changed {
			fillEntry(cur, want[0])
			cur.Label = singleLabel(agg)
			cur.Day = day
			rec.update("", cur)
		}
		return
	}

	// The existing entry becomes the first child when it survives.
	ordered := make([]domain.SessionEntry, 0, len(want))
	rest := append([]domain.SessionEntry(nil), want...)
	if cur.Entry != nil {
		if i := indexOfEntry(rest, *cur.Entry); i >= 0 {
			ordered = append(ordered, rest[i])
			rest = append(rest[:i], rest[i+1:]...)
		}
	}
	ordered = append(ordered, rest...)

	idx := t.rootIndex(cur.ID)
	parent := &Row{ID: t.id(), Kind: RowParent, Day: day, Label: parentLabel(day, len(ordered))}
	t.insertRoot(idx, parent, rec)
	for _, e := range ordered {
		t.appendChild(parent, t.newChild(day, e), rec)
	}
	t.dropBucket(day, cur, rec)
	t.index[day] = &bucket{state: Group, row: parent}
	t.syncFooter(parent, agg, rec)
}

// group -> group | single
func (t *Tree) syncGroup(day string, b *bucket, want []domain.SessionEntry, agg domain.DayAggregate, rec *recorder) {
	parent := b.row
	parent.Day = day
	remaining := append([]domain.SessionEntry(nil), want...)

	for _, c := range parent.entryChildren() {
		if c.Entry != nil {
			if i := indexOfEntry(remaining, *c.Entry); i >= 0 {
				remaining = append(remaining[:i], remaining[i+1:]...)
				continue
			}
		}
		i := parent.indexOf(c.ID)
		parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
		rec.delete(parent.ID, c)
	}

	for _, e := range remaining {
		t.appendChild(parent, t.newChild(day, e), rec)
	}

	kids := parent.entryChildren()
	if len(kids) == 1 && kids[0].Entry != nil {
		idx := t.rootIndex(parent.ID)
		single := t.newSingle(day, *kids[0].Entry, agg)
		t.insertRoot(idx, single, rec)
		t.dropBucket(day, parent, rec)
		t.index[day] = &bucket{state: Single, row: single}
		return
	}

	label := parentLabel(day, len(kids))
	if parent.Label != label {
		parent.Label = label
		rec.update("", parent)
	}
	b.state = Group
	t.syncFooter(parent, agg, rec)
}

// appendChild places a new child right before the footer, or last when there is none.
func (t *Tree) appendChild(parent *Row, child *Row, rec *recorder) {
	index := len(parent.Children)
	if f := parent.footer(); f != nil {
		index = parent.indexOf(f.ID)
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = child
	rec.insert(parent.ID, index, child)
}

// syncFooter keeps exactly one footer, last, carrying the latest aggregate.
func (t *Tree) syncFooter(parent *Row, agg domain.DayAggregate, rec *recorder) {
	var footer *Row
	for _, c := range append([]*Row(nil), parent.Children...) {
		if c.Kind != RowFooter {
			continue
		}
		if footer == nil {
			footer = c
			continue
		}
		i := parent.indexOf(c.ID)
		parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
		rec.delete(parent.ID, c)
	}

	if footer == nil {
		footer = t.newFooter(parent.Day, agg)
		parent.Children = append(parent.Children, footer)
		rec.insert(parent.ID, len(parent.Children)-1, footer)
		return
	}

	label, total := footerLabel(agg), strconv.Itoa(agg.TotalMinutes)
	if footer.Label != label || footer.Duration != total {
		footer.Label = label
		footer.Duration = total
		rec.update(parent.ID, footer)
	}

	last := len(parent.Children) - 1
	if idx := parent.indexOf(footer.ID); idx != last {
		parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
		parent.Children = append(parent.Children, footer)
		rec.move(parent.ID, last, footer)
	}
}

func indexOfEntry(list []domain.SessionEntry, e domain.SessionEntry) int {
	for i, x := range list {
		if x == e {
			return i
		}
	}
	return -1
}
