package store

import (
	"context"
	"errors"
	"testing"

	"github.com/junyangz/newsbrief/internal/types"
)

func TestMemoryStorePutAndList(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	doc, err := st.Put(ctx, "news", "brief.txt", []byte("content"), "document")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if doc.Name != "brief.txt" {
		t.Errorf("Name = %q", doc.Name)
	}
	if doc.Size != int64(len("content")) {
		t.Errorf("Size = %d", doc.Size)
	}
	if doc.ID == "" {
		t.Error("ID is empty")
	}

	docs, err := st.List(ctx, "news")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("List() returned %d docs, want 1", len(docs))
	}
	if string(docs[0].Content) != "content" {
		t.Errorf("Content = %q", docs[0].Content)
	}
}

func TestMemoryStoreNameCollision(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	names := make([]string, 3)
	for i := range names {
		doc, err := st.Put(ctx, "news", "brief.txt", []byte("x"), "document")
		if err != nil {
			t.Fatalf("Put() #%d error = %v", i, err)
		}
		names[i] = doc.Name
	}

	if names[0] != "brief.txt" || names[1] != "brief.txt_" || names[2] != "brief.txt__" {
		t.Errorf("names = %v, want underscore suffixing", names)
	}
}

func TestMemoryStoreContainerIsolation(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	st.Put(ctx, "a", "doc.txt", []byte("1"), "document")
	st.Put(ctx, "b", "doc.txt", []byte("2"), "document")

	docs, _ := st.List(ctx, "a")
	if len(docs) != 1 {
		t.Fatalf("List(a) returned %d docs, want 1", len(docs))
	}
	// Same name in a different container is not a collision.
	if docs[0].Name != "doc.txt" {
		t.Errorf("Name = %q, want doc.txt", docs[0].Name)
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	st.Close(ctx)

	if _, err := st.Put(ctx, "news", "doc.txt", nil, "document"); !errors.Is(err, types.ErrStoreClosed) {
		t.Errorf("Put() after close error = %v, want ErrStoreClosed", err)
	}
	if _, err := st.List(ctx, "news"); !errors.Is(err, types.ErrStoreClosed) {
		t.Errorf("List() after close error = %v, want ErrStoreClosed", err)
	}
}

func TestMemoryStoreCopiesContent(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	content := []byte("original")
	st.Put(ctx, "news", "doc.txt", content, "document")
	content[0] = 'X'

	docs, _ := st.List(ctx, "news")
	if string(docs[0].Content) != "original" {
		t.Errorf("Content = %q, stored bytes must not alias the caller's slice", docs[0].Content)
	}
}
