package ledger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reclip/internal/fileutil"
)

// Backup checkpoints the WAL and copies the ledger database to a
// timestamped file under backupDir, returning the backup path.
func (s *Store) Backup(ctx context.Context, backupDir string) (string, error) {
	if backupDir == "" {
		return "", fmt.Errorf("backup directory not configured")
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	// Fold WAL contents into the main file so a plain copy is complete.
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return "", fmt.Errorf("checkpoint wal: %w", err)
	}

	stamp := time.Now().UTC().Format("20060102_150405")
	backupPath := filepath.Join(backupDir, fmt.Sprintf("ledger_%s.db", stamp))
	if err := fileutil.CopyFileVerified(s.path, backupPath); err != nil {
		return "", fmt.Errorf("copy ledger: %w", err)
	}
	return backupPath, nil
}
