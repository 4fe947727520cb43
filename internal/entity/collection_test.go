package entity

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"lockin/internal/storage"
)

func seedNotes(t *testing.T, n int) (*storage.Memory, *NoteStore, []Note) {
	t.Helper()
	mem := storage.NewMemory()
	c := NewNoteStore(mem, nil)
	for i := 0; i < n; i++ {
		if _, err := c.Upsert(Note{Title: string(rune('a' + i)), Progress: ProgressNotStarted}, None); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	items, err := c.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return mem, c, items
}

func TestUpsertAppend(t *testing.T) {
	for _, n := range []int{0, 1, 4} {
		_, c, before := seedNotes(t, n)
		got, err := c.Upsert(Note{Title: "new"}, None)
		if err != nil {
			t.Fatalf("Upsert: %v", err)
		}
		loaded, _ := c.Load()
		if len(loaded) != n+1 || len(got) != n+1 {
			t.Fatalf("len: got %d, want %d", len(loaded), n+1)
		}
		if !reflect.DeepEqual(loaded[:n], before) {
			t.Errorf("prefix changed")
		}
		if loaded[n].Title != "new" || loaded[n].ID == "" {
			t.Errorf("appended record: %+v", loaded[n])
		}
	}
}

func TestUpsertReplace(t *testing.T) {
	_, c, before := seedNotes(t, 3)
	if _, err := c.Upsert(Note{Title: "replaced"}, 1); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	loaded, _ := c.Load()
	if len(loaded) != 3 {
		t.Fatalf("len: got %d, want 3", len(loaded))
	}
	if loaded[1].Title != "replaced" {
		t.Errorf("title: got %q", loaded[1].Title)
	}
	if loaded[1].ID != before[1].ID {
		t.Errorf("replacement should keep id %q, got %q", before[1].ID, loaded[1].ID)
	}
	if loaded[0] != before[0] || loaded[2] != before[2] {
		t.Errorf("neighbours changed")
	}
}

func TestOutOfRangeLeavesStoreUnchanged(t *testing.T) {
	mem, c, _ := seedNotes(t, 2)
	raw, _, _ := mem.Get(KeyNotes)
	writes := mem.Writes()

	cases := []struct {
		name string
		op   func() error
	}{
		{"upsert past end", func() error { _, err := c.Upsert(Note{Title: "x"}, 2); return err }},
		{"upsert negative", func() error { _, err := c.Upsert(Note{Title: "x"}, -2); return err }},
		{"remove past end", func() error { _, err := c.Remove(5); return err }},
		{"remove negative", func() error { _, err := c.Remove(-1); return err }},
		{"update past end", func() error { _, err := c.Update(2, func(*Note) {}); return err }},
		{"remove unknown id", func() error { _, err := c.RemoveByID("nope"); return err }},
		{"upsert unknown id", func() error { _, err := c.UpsertByID(Note{Title: "x"}, "nope"); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.op()
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
			}
			after, _, _ := mem.Get(KeyNotes)
			if after != raw {
				t.Errorf("document changed: %s", after)
			}
			if mem.Writes() != writes {
				t.Errorf("unexpected write")
			}
		})
	}
}

func TestRemove(t *testing.T) {
	_, c, before := seedNotes(t, 3)
	if _, err := c.Remove(0); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	loaded, _ := c.Load()
	if !reflect.DeepEqual(loaded, before[1:]) {
		t.Errorf("got %+v, want %+v", loaded, before[1:])
	}
}

func TestByIDSurvivesReordering(t *testing.T) {
	_, c, before := seedNotes(t, 3)
	reversed := []Note{before[2], before[1], before[0]}
	if err := c.Persist(reversed); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if _, err := c.RemoveByID(before[0].ID); err != nil {
		t.Fatalf("RemoveByID: %v", err)
	}
	loaded, _ := c.Load()
	if len(loaded) != 2 || loaded[0].ID != before[2].ID || loaded[1].ID != before[1].ID {
		t.Errorf("unexpected result %+v", loaded)
	}
}

func TestPersistLoadIdempotent(t *testing.T) {
	mem, c, _ := seedNotes(t, 3)
	var docs []string
	for i := 0; i < 3; i++ {
		items, err := c.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if err := c.Persist(items); err != nil {
			t.Fatalf("Persist: %v", err)
		}
		raw, _, _ := mem.Get(KeyNotes)
		docs = append(docs, raw)
	}
	if docs[0] != docs[1] || docs[1] != docs[2] {
		t.Errorf("documents differ:\n%s\n%s\n%s", docs[0], docs[1], docs[2])
	}
}

func TestLoadFailsOpen(t *testing.T) {
	cases := map[string]string{
		"not json":      `{oops`,
		"wrong type":    `{"title":"x"}`,
		"missing title": `[{"type":"School"}]`,
		"bad field":     `[{"title":"x","completed":"yes"}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			mem := storage.NewMemory()
			_ = mem.Set(KeyNotes, raw)
			c := NewNoteStore(mem, nil)
			items, err := c.Load()
			if err != nil {
				t.Fatalf("Load should not fail: %v", err)
			}
			if len(items) != 0 {
				t.Errorf("expected empty, got %+v", items)
			}
			_, err = c.doc.Read()
			if !IsDecodeError(err) {
				t.Errorf("Read should report DecodeError, got %v", err)
			}
		})
	}
}

func TestLoadAbsentAndNull(t *testing.T) {
	mem := storage.NewMemory()
	c := NewNoteStore(mem, nil)
	items, err := c.Load()
	if err != nil || items == nil || len(items) != 0 {
		t.Fatalf("absent: items=%v err=%v", items, err)
	}
	_ = mem.Set(KeyNotes, "null")
	items, err = c.Load()
	if err != nil || len(items) != 0 {
		t.Fatalf("null: items=%v err=%v", items, err)
	}
}

func TestLegacyRecordsGetStableIDs(t *testing.T) {
	mem := storage.NewMemory()
	_ = mem.Set(KeyNotes, `[{"title":"old","type":"Reminder","progress":"Not Started","description":""}]`)
	c := NewNoteStore(mem, nil)

	first, err := c.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, _ := c.Load()
	if first[0].ID == "" || first[0].ID != second[0].ID {
		t.Errorf("ids not stable: %q vs %q", first[0].ID, second[0].ID)
	}
	raw, _, _ := mem.Get(KeyNotes)
	if !strings.Contains(raw, first[0].ID) {
		t.Errorf("id not persisted: %s", raw)
	}
}
