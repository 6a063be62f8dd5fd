package tree

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("row-%d", n)
	}
}

func entry(day, clock, title string, minutes, hardness int) domain.SessionEntry {
	return domain.SessionEntry{Date: day, Clock: clock, Title: title, Duration: minutes, Hardness: hardness}
}

func withoutID(r *Row) Row {
	cp := r.snapshot()
	cp.ID = ""
	return cp
}

func countOps(ops []Op, kind OpKind) int {
	n := 0
	for _, op := range ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func TestReconcile_BucketTransitions(t *testing.T) {
	const day = "05-01-25"
	e1 := entry(day, "09:00", "Math", 60, 6)
	e2 := entry(day, "11:00", "Read", 30, 4)
	e3 := entry(day, "14:00", "Code", 90, 8)

	t.Run("absent -> single", func(t *testing.T) {
		tr, ops := Reconcile(NewWithIDs(seqIDs()), []domain.SessionEntry{e1})

		require.Len(t, tr.Roots, 1)
		assert.Equal(t, Single, tr.State(day))
		row := tr.Roots[0]
		assert.Equal(t, RowSingle, row.Kind)
		assert.Equal(t, [4]string{"60", "6", "Math", ""}, row.Values())
		assert.Equal(t, singleLabel(domain.AggregateDay([]domain.SessionEntry{e1}, day)), row.Label)
		assert.Contains(t, row.Label, "05-01-25 — Total: 60 — Points: ")
		assert.Equal(t, 1, countOps(ops, OpInsert))
	})

	t.Run("single -> group keeps the first entry first", func(t *testing.T) {
		t1, _ := Reconcile(NewWithIDs(seqIDs()), []domain.SessionEntry{e1})
		t2, ops := Reconcile(t1, []domain.SessionEntry{e1, e2})

		require.Len(t, t2.Roots, 1)
		assert.Equal(t, Group, t2.State(day))
		parent := t2.Roots[0]
		assert.Equal(t, RowParent, parent.Kind)
		assert.Equal(t, "05-01-25 (2)", parent.Label)
		require.Len(t, parent.Children, 3)
		assert.Equal(t, "09:00", parent.Children[0].Label)
		assert.Equal(t, "11:00", parent.Children[1].Label)
		assert.Equal(t, RowFooter, parent.Children[2].Kind)
		assert.Equal(t, "90", parent.Children[2].Duration)

		assert.Equal(t, 1, countOps(ops, OpDelete), "old single row must be deleted")
		assert.Equal(t, Single, t1.State(day), "previous tree must be untouched")
	})

	t.Run("group -> group inserts before the footer", func(t *testing.T) {
		t2, _ := Reconcile(NewWithIDs(seqIDs()), []domain.SessionEntry{e1, e2})
		t3, ops := Reconcile(t2, []domain.SessionEntry{e1, e2, e3})

		parent := t3.Roots[0]
		require.Len(t, parent.Children, 4)
		assert.Equal(t, "14:00", parent.Children[2].Label)
		assert.Equal(t, RowFooter, parent.Children[3].Kind)
		assert.Equal(t, "180", parent.Children[3].Duration)
		assert.Equal(t, "05-01-25 (3)", parent.Label)

		for _, op := range ops {
			if op.Kind == OpInsert {
				assert.Equal(t, 2, op.Index, "new child goes right before the footer")
			}
		}
	})

	t.Run("group -> single when one child remains", func(t *testing.T) {
		t2, _ := Reconcile(NewWithIDs(seqIDs()), []domain.SessionEntry{e1, e2})
		t3, _ := Reconcile(t2, []domain.SessionEntry{e1})

		require.Len(t, t3.Roots, 1)
		assert.Equal(t, Single, t3.State(day))
		assert.Equal(t, 0, t3.Footers(day))

		fresh, _ := Reconcile(NewWithIDs(seqIDs()), []domain.SessionEntry{e1})
		assert.Equal(t, withoutID(fresh.Roots[0]), withoutID(t3.Roots[0]))
	})

	t.Run("single -> absent", func(t *testing.T) {
		t1, _ := Reconcile(NewWithIDs(seqIDs()), []domain.SessionEntry{e1})
		t2, ops := Reconcile(t1, nil)

		assert.Empty(t, t2.Roots)
		assert.Equal(t, Absent, t2.State(day))
		assert.Equal(t, 1, countOps(ops, OpDelete))
	})

	t.Run("group -> absent", func(t *testing.T) {
		t2, _ := Reconcile(NewWithIDs(seqIDs()), []domain.SessionEntry{e1, e2, e3})
		t3, _ := Reconcile(t2, []domain.SessionEntry{entry("06-01-25", "08:00", "Other", 10, 3)})

		require.Len(t, t3.Roots, 1)
		assert.Equal(t, Absent, t3.State(day))
		assert.Equal(t, Single, t3.State("06-01-25"))
	})
}

func TestReconcile_FooterInvariant(t *testing.T) {
	const day = "10-02-25"
	var entries []domain.SessionEntry
	tr := NewWithIDs(seqIDs())

	for i := 0; i < 6; i++ {
		entries = append(entries, entry(day, fmt.Sprintf("%02d:00", 8+i), "Task", 25*(i+1), i+1))
		tr, _ = Reconcile(tr, entries)

		if len(entries) == 1 {
			assert.Equal(t, Single, tr.State(day))
			continue
		}

		assert.Equal(t, 1, tr.Footers(day), "exactly one footer after %d entries", len(entries))
		parent := tr.Bucket(day)
		last := parent.Children[len(parent.Children)-1]
		assert.Equal(t, RowFooter, last.Kind, "footer is always the last child")

		agg := domain.AggregateDay(entries, day)
		assert.Equal(t, strconv.Itoa(agg.TotalMinutes), last.Duration)
		assert.Equal(t, footerLabel(agg), last.Label)
	}
}

func TestReconcile_RemoveSecondOfTwoCollapsesToFirst(t *testing.T) {
	const day = "01-03-25"
	first := entry(day, "07:30", "Gym", 45, 7)
	second := entry(day, "20:00", "Read", 20, 2)

	before, _ := Build([]domain.SessionEntry{first})
	grouped, _ := Reconcile(before, []domain.SessionEntry{first, second})
	after, _ := Reconcile(grouped, []domain.SessionEntry{first})

	require.Len(t, after.Roots, 1)
	assert.Equal(t, withoutID(before.Roots[0]), withoutID(after.Roots[0]))
}

func TestReconcile_DuplicateEntries(t *testing.T) {
	const day = "01-03-25"
	e := entry(day, "07:30", "Gym", 45, 7)

	tr, _ := Build([]domain.SessionEntry{e, e})
	require.Equal(t, Group, tr.State(day))
	assert.Len(t, tr.Bucket(day).entryChildren(), 2)

	tr, _ = Reconcile(tr, []domain.SessionEntry{e})
	assert.Equal(t, Single, tr.State(day))
}

func TestReconcile_MultipleDaysKeepOrder(t *testing.T) {
	entries := []domain.SessionEntry{
		entry("01-01-25", "09:00", "A", 10, 1),
		entry("02-01-25", "09:00", "B", 10, 1),
		entry("01-01-25", "10:00", "C", 10, 1),
	}
	tr, _ := Build(entries)

	require.Len(t, tr.Roots, 2)
	assert.Equal(t, "01-01-25", tr.Roots[0].Day)
	assert.Equal(t, RowParent, tr.Roots[0].Kind)
	assert.Equal(t, "02-01-25", tr.Roots[1].Day)
	assert.Equal(t, RowSingle, tr.Roots[1].Kind)

	flat := tr.Flat()
	assert.Len(t, flat, 5)
	assert.Equal(t, 1, flat[1].Depth)
}

func TestReconcile_RecoversDesyncedIndex(t *testing.T) {
	const day = "05-01-25"
	e1 := entry(day, "09:00", "Math", 60, 6)
	e2 := entry(day, "11:00", "Read", 30, 4)
	e3 := entry(day, "14:00", "Code", 90, 8)

	tr, _ := Build([]domain.SessionEntry{e1, e2})
	delete(tr.index, day)
	tr.Roots[0].Day = ""

	next, _ := Reconcile(tr, []domain.SessionEntry{e1, e2, e3})

	require.Len(t, next.Roots, 1, "the parent must be found by label instead of duplicated")
	assert.Equal(t, Group, next.State(day))
	assert.Equal(t, 1, next.Footers(day))
	assert.Len(t, next.Bucket(day).entryChildren(), 3)
}

func TestReconcile_Idempotent(t *testing.T) {
	entries := []domain.SessionEntry{
		entry("01-01-25", "09:00", "A", 10, 1),
		entry("01-01-25", "10:00", "B", 15, 2),
	}
	tr, _ := Build(entries)
	_, ops := Reconcile(tr, entries)
	assert.Empty(t, ops)
}

func TestRow_EmptyClockAndHardness(t *testing.T) {
	entries := []domain.SessionEntry{
		entry("01-01-25", "", "A", 10, 0),
		entry("01-01-25", "10:00", "B", 15, 2),
	}
	tr, _ := Build(entries)
	kids := tr.Bucket("01-01-25").Children
	assert.Equal(t, "--:--", kids[0].Label)
	assert.Equal(t, "", kids[0].Hardness)
}
