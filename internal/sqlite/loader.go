package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// ImportStats reports the outcome of Import.
type ImportStats struct {
	Imported int // graphs inserted
	Existing int // records whose file_id is already stored
	Skipped  int // malformed lines and records
}

// Export writes every stored graph to NetworksFile and DatasetsFile in dir,
// one graph per line, in save order. Each file is replaced atomically.
func (b *Backend) Export(dir string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return types.IOError("create", dir, err)
	}

	rows, err := b.db.Query(`SELECT file_id, kind, name, created_at FROM files ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("listing files: %w", err)
	}
	var recs []types.FileRecord
	err = eachRow(rows, func(s scanner) error {
		rec, err := scanFile(s)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		return err
	}

	var (
		networks []networkJSON
		datasets []datasetJSON
	)
	for _, rec := range recs {
		created := rec.CreatedAt.UTC().Format(time.RFC3339Nano)
		switch rec.Kind {
		case types.KindNetwork:
			n, err := loadNetwork(b.db, rec.FileID)
			if err != nil {
				return err
			}
			networks = append(networks, networkJSON{FileID: rec.FileID, Name: rec.Name, CreatedAt: created, Network: n})
		case types.KindDataset:
			d, err := loadDataset(b.db, rec.FileID)
			if err != nil {
				return err
			}
			datasets = append(datasets, datasetJSON{FileID: rec.FileID, Name: rec.Name, CreatedAt: created, Dataset: d})
		}
	}

	if err := writeJSONL(filepath.Join(dir, NetworksFile), networks); err != nil {
		return types.IOError("write", NetworksFile, err)
	}
	if err := writeJSONL(filepath.Join(dir, DatasetsFile), datasets); err != nil {
		return types.IOError("write", DatasetsFile, err)
	}
	return nil
}

// Import loads a snapshot written by Export. Loading is transactional: all
// records are inserted or none are. Malformed lines are skipped, and
// records whose file_id is already stored are left alone.
func (b *Backend) Import(dir string) (ImportStats, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var stats ImportStats
	if !b.attached {
		return stats, types.ErrStoreDetached
	}

	netLines, skipped, err := readJSONL(filepath.Join(dir, NetworksFile))
	if err != nil {
		return stats, types.IOError("read", NetworksFile, err)
	}
	stats.Skipped += skipped
	dsLines, skipped, err := readJSONL(filepath.Join(dir, DatasetsFile))
	if err != nil {
		return stats, types.IOError("read", DatasetsFile, err)
	}
	stats.Skipped += skipped

	err = b.withTx(func(tx *sql.Tx) error {
		for _, line := range netLines {
			var rec networkJSON
			if err := json.Unmarshal(line, &rec); err != nil || rec.Network == nil {
				stats.Skipped++
				continue
			}
			fr, ok := importRecord(rec.FileID, types.KindNetwork, rec.Name, rec.CreatedAt)
			if !ok {
				stats.Skipped++
				continue
			}
			if exists, err := fileExists(tx, fr.FileID); err != nil {
				return err
			} else if exists {
				stats.Existing++
				continue
			}
			if err := insertNetwork(tx, fr, rec.Network); err != nil {
				return err
			}
			stats.Imported++
		}
		for _, line := range dsLines {
			var rec datasetJSON
			if err := json.Unmarshal(line, &rec); err != nil || rec.Dataset == nil {
				stats.Skipped++
				continue
			}
			fr, ok := importRecord(rec.FileID, types.KindDataset, rec.Name, rec.CreatedAt)
			if !ok {
				stats.Skipped++
				continue
			}
			if exists, err := fileExists(tx, fr.FileID); err != nil {
				return err
			} else if exists {
				stats.Existing++
				continue
			}
			if err := insertDataset(tx, fr, rec.Dataset); err != nil {
				return err
			}
			stats.Imported++
		}
		return nil
	})
	if err != nil {
		return ImportStats{}, err
	}
	return stats, nil
}

func importRecord(id, kind, name, created string) (types.FileRecord, bool) {
	if checkID(id) != nil {
		return types.FileRecord{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return types.FileRecord{}, false
	}
	return types.FileRecord{FileID: id, Kind: kind, Name: name, CreatedAt: t}, true
}

func fileExists(tx *sql.Tx, id string) (bool, error) {
	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM files WHERE file_id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("checking file %s: %w", id, err)
	}
	return n > 0, nil
}
