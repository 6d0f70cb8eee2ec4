package ledger_test

import (
	"context"
	"os"
	"testing"

	"reclip/internal/ledger"
	"reclip/internal/testsupport"
)

func TestRecordStartedIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)
	ctx := context.Background()

	if err := store.RecordStarted(ctx, "vid-1", "First Title", "/tmp/comp.mp4"); err != nil {
		t.Fatalf("RecordStarted: %v", err)
	}
	if err := store.RecordStarted(ctx, "vid-1", "Second Title", "/tmp/other.mp4"); err != nil {
		t.Fatalf("second RecordStarted: %v", err)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(entries))
	}
	if entries[0].Title != "First Title" {
		t.Fatalf("duplicate insert overwrote title: %q", entries[0].Title)
	}
}

func TestRecordStartedRequiresID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)

	if err := store.RecordStarted(context.Background(), "  ", "title", ""); err == nil {
		t.Fatal("expected error for empty video id")
	}
}

func TestStatusLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)
	ctx := context.Background()

	status, err := store.StatusOf(ctx, "vid-1")
	if err != nil {
		t.Fatalf("StatusOf: %v", err)
	}
	if status != ledger.StatusUnseen {
		t.Fatalf("status = %s, want unseen", status)
	}

	if err := store.RecordStarted(ctx, "vid-1", "Title", ""); err != nil {
		t.Fatalf("RecordStarted: %v", err)
	}
	if status, _ = store.StatusOf(ctx, "vid-1"); status != ledger.StatusPending {
		t.Fatalf("status = %s, want pending", status)
	}

	if err := store.MarkPublished(ctx, "vid-1"); err != nil {
		t.Fatalf("MarkPublished: %v", err)
	}
	if status, _ = store.StatusOf(ctx, "vid-1"); status != ledger.StatusUploaded {
		t.Fatalf("status = %s, want uploaded", status)
	}

	entry, err := store.Get(ctx, "vid-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry == nil || entry.PublishedAt == nil {
		t.Fatalf("expected published_at to be set, got %#v", entry)
	}
}

func TestMarkPublishedMissingRow(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)

	if err := store.MarkPublished(context.Background(), "ghost"); err == nil {
		t.Fatal("expected error for missing row")
	}
}

func TestPendingUploadsRequiresCompilationPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)
	ctx := context.Background()

	if err := store.RecordStarted(ctx, "no-file", "Title A", ""); err != nil {
		t.Fatalf("RecordStarted: %v", err)
	}
	if err := store.RecordStarted(ctx, "with-file", "Title B", "/tmp/b.mp4"); err != nil {
		t.Fatalf("RecordStarted: %v", err)
	}
	if err := store.RecordStarted(ctx, "done", "Title C", "/tmp/c.mp4"); err != nil {
		t.Fatalf("RecordStarted: %v", err)
	}
	if err := store.MarkPublished(ctx, "done"); err != nil {
		t.Fatalf("MarkPublished: %v", err)
	}

	pending, err := store.PendingUploads(ctx)
	if err != nil {
		t.Fatalf("PendingUploads: %v", err)
	}
	if len(pending) != 1 || pending[0].VideoID != "with-file" {
		t.Fatalf("pending = %#v, want only with-file", pending)
	}
}

func TestKnownIDs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.RecordStarted(ctx, id, "", ""); err != nil {
			t.Fatalf("RecordStarted(%s): %v", id, err)
		}
	}
	ids, err := store.KnownIDs(ctx)
	if err != nil {
		t.Fatalf("KnownIDs: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("len(ids) = %d, want 3", len(ids))
	}
	if _, ok := ids["b"]; !ok {
		t.Fatal("expected id b in known set")
	}
}

func TestSetCompilationPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)
	ctx := context.Background()

	if err := store.RecordStarted(ctx, "vid", "Title", ""); err != nil {
		t.Fatalf("RecordStarted: %v", err)
	}
	if err := store.SetCompilationPath(ctx, "vid", "/tmp/rebuilt.mp4"); err != nil {
		t.Fatalf("SetCompilationPath: %v", err)
	}
	entry, err := store.Get(ctx, "vid")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.CompilationPath != "/tmp/rebuilt.mp4" {
		t.Fatalf("compilation path = %q", entry.CompilationPath)
	}
}

func TestBackupAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)
	ctx := context.Background()

	if err := store.RecordStarted(ctx, "vid", "Title", ""); err != nil {
		t.Fatalf("RecordStarted: %v", err)
	}

	backupPath, err := store.Backup(ctx, cfg.Paths.BackupDir)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if info, err := os.Stat(backupPath); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty backup at %s: %v", backupPath, err)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if status, _ := store.StatusOf(ctx, "vid"); status != ledger.StatusUnseen {
		t.Fatalf("status after clear = %s, want unseen", status)
	}
}
