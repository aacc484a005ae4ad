package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func TestPutAndGet(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	ctx := context.Background()

	data := []byte("%PDF-1.4 fake")
	loc, err := d.Put(ctx, "write-off-10.pdf", data)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if filepath.Base(loc) != "write-off-10.pdf" {
		t.Fatalf("location = %q, want basename write-off-10.pdf", loc)
	}

	got, err := d.Get(ctx, loc)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("roundtrip mismatch: %q", got)
	}
}

func TestPut_StripsPathComponents(t *testing.T) {
	base := t.TempDir()
	d, err := NewDisk(base)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	loc, err := d.Put(context.Background(), "../../etc/evil.pdf", []byte("x"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if filepath.Dir(loc) != base {
		t.Fatalf("object escaped base dir: %q", loc)
	}
}

func TestPut_EmptyName(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	if _, err := d.Put(context.Background(), "   ", []byte("x")); err == nil {
		t.Fatalf("expected error for empty name")
	}
}
