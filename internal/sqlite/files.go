package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

func insertFile(tx *sql.Tx, rec types.FileRecord) error {
	_, err := tx.Exec(
		`INSERT INTO files (file_id, kind, name, created_at) VALUES (?, ?, ?, ?)`,
		rec.FileID, rec.Kind, rec.Name, rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting file %s: %w", rec.FileID, err)
	}
	return nil
}

// fileRecord loads the files row for id and checks its kind. An empty
// kind accepts any file.
func (b *Backend) fileRecord(id, kind string) (types.FileRecord, error) {
	if err := checkID(id); err != nil {
		return types.FileRecord{}, err
	}
	row := b.db.QueryRow(`SELECT file_id, kind, name, created_at FROM files WHERE file_id = ?`, id)
	rec, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("%w: %s", types.ErrNotFound, id)
	}
	if err != nil {
		return rec, err
	}
	if kind != "" && rec.Kind != kind {
		return rec, fmt.Errorf("%w: %s is a %s", types.ErrKindMismatch, id, rec.Kind)
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(s scanner) (types.FileRecord, error) {
	var (
		rec     types.FileRecord
		created string
	)
	if err := s.Scan(&rec.FileID, &rec.Kind, &rec.Name, &created); err != nil {
		return rec, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return rec, fmt.Errorf("%w: created_at %q", types.ErrInvalidData, created)
	}
	rec.CreatedAt = t
	return rec, nil
}

// ListFiles returns stored files of the given kind in save order. An empty
// kind lists every file.
func (b *Backend) ListFiles(kind string) ([]types.FileRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	switch kind {
	case "", types.KindNetwork, types.KindDataset:
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", types.ErrInvalidData, kind)
	}

	query := `SELECT file_id, kind, name, created_at FROM files`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY rowid`

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	defer rows.Close()

	var out []types.FileRecord
	for rows.Next() {
		rec, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteFile removes a stored graph and every row it owns.
func (b *Backend) DeleteFile(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	if _, err := b.fileRecord(id, ""); err != nil {
		return err
	}
	return b.withTx(func(tx *sql.Tx) error {
		stmts := []string{
			`DELETE FROM super_nodes WHERE slink_id IN (SELECT slink_id FROM super_links WHERE file_id = ?)`,
			`DELETE FROM pipes WHERE slink_id IN (SELECT slink_id FROM super_links WHERE file_id = ?)`,
			`DELETE FROM super_links WHERE file_id = ?`,
			`DELETE FROM super_junctions WHERE file_id = ?`,
			`DELETE FROM connections WHERE file_id = ?`,
			`DELETE FROM dataset_rasters WHERE file_id = ?`,
			`DELETE FROM datasets WHERE file_id = ?`,
			`DELETE FROM files WHERE file_id = ?`,
		}
		for _, s := range stmts {
			if _, err := tx.Exec(s, id); err != nil {
				return fmt.Errorf("deleting file %s: %w", id, err)
			}
		}
		return nil
	})
}
