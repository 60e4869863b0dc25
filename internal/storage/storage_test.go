package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFSStoreRoundTrip(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}
	ctx := context.Background()

	if _, ok := store.Exists(ctx, "speech_abc.mp3"); ok {
		t.Fatal("expected miss before Put")
	}

	ref, err := store.Put(ctx, "speech_abc.mp3", []byte("audio-bytes"))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if ref != "/static/audio_cache/speech_abc.mp3" {
		t.Errorf("unexpected ref %q", ref)
	}

	ref2, ok := store.Exists(ctx, "speech_abc.mp3")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if ref2 != ref {
		t.Errorf("Exists ref %q != Put ref %q", ref2, ref)
	}

	data, err := store.Get(ctx, "speech_abc.mp3")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Errorf("unexpected data %q", data)
	}
}

func TestFSStoreGetMissing(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}

	if _, err := store.Get(context.Background(), "speech_missing.mp3"); err == nil {
		t.Error("expected error for missing artifact")
	}
}

func TestFSStoreClearOnlyRemovesArtifacts(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSStore(dir)
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Put(ctx, "speech_one.mp3", []byte("a")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := store.Put(ctx, "speech_two.wav", []byte("bb")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// A stray file without the artifact prefix must survive Clear.
	stray := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(stray, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("failed to write stray file: %v", err)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
	if _, err := os.Stat(stray); err != nil {
		t.Errorf("stray file should survive Clear: %v", err)
	}
}

func TestFSStoreInfo(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Put(ctx, "speech_one.mp3", []byte("abc")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := store.Put(ctx, "speech_two.mp3", []byte("de")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	info, err := store.Info(ctx)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Count != 2 {
		t.Errorf("expected count 2, got %d", info.Count)
	}
	if info.TotalSize != 5 {
		t.Errorf("expected total size 5, got %d", info.TotalSize)
	}
	if len(info.Files) != 2 {
		t.Errorf("expected 2 files, got %d", len(info.Files))
	}
}
