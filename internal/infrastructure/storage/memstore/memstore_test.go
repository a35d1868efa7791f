package memstore

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenBytes(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.Save(ctx, "general_documents/note.txt", strings.NewReader("remember this")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reader, err := store.Open(ctx, "general_documents/note.txt")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read stored object: %v", err)
	}
	reader.Close()
	if string(raw) != "remember this" {
		t.Errorf("stored content = %q, want %q", raw, "remember this")
	}

	copied, ok := store.Bytes("general_documents/note.txt")
	if !ok {
		t.Fatal("Bytes() reported missing object")
	}
	if string(copied) != "remember this" {
		t.Errorf("Bytes() = %q, want %q", copied, "remember this")
	}
}

func TestOpenMissingKey(t *testing.T) {
	store := New()
	if _, err := store.Open(context.Background(), "nope/missing.bin"); err == nil {
		t.Fatal("Open() on missing key succeeded, want error")
	}
}

func TestListSortedByKey(t *testing.T) {
	store := New()
	ctx := context.Background()
	for _, key := range []string{"b/2.txt", "a/1.txt", "c/3.txt"} {
		if err := store.Save(ctx, key, strings.NewReader(key)); err != nil {
			t.Fatalf("Save(%s) error = %v", key, err)
		}
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"a/1.txt", "b/2.txt", "c/3.txt"}
	if len(infos) != len(want) {
		t.Fatalf("List() returned %d objects, want %d", len(infos), len(want))
	}
	for i, key := range want {
		if infos[i].Key != key {
			t.Errorf("infos[%d].Key = %q, want %q", i, infos[i].Key, key)
		}
		if infos[i].Size != int64(len(key)) {
			t.Errorf("infos[%d].Size = %d, want %d", i, infos[i].Size, len(key))
		}
	}
}
