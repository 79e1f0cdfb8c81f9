package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// SaveDataset stores d under name and returns the generated file ID.
func (b *Backend) SaveDataset(name string, d *types.Dataset) (string, error) {
	if d == nil {
		return "", fmt.Errorf("%w: nil dataset", types.ErrInvalidData)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrStoreDetached
	}
	rec := types.FileRecord{FileID: newUUID(), Kind: types.KindDataset, Name: name, CreatedAt: b.now()}
	err := b.withTx(func(tx *sql.Tx) error {
		return insertDataset(tx, rec, d)
	})
	if err != nil {
		return "", err
	}
	return rec.FileID, nil
}

func insertDataset(tx *sql.Tx, rec types.FileRecord, d *types.Dataset) error {
	if err := insertFile(tx, rec); err != nil {
		return err
	}
	id := rec.FileID
	if _, err := tx.Exec(
		`INSERT INTO datasets (file_id, dataset_type, object_type, object_id, number_data, number_cells, name)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, int(d.Kind), d.ObjectType, d.ObjectID, d.NumberData, d.NumberCells, d.Name); err != nil {
		return fmt.Errorf("inserting dataset: %w", err)
	}
	for i, r := range d.Rasters {
		var (
			cells  sql.NullString
			format sql.NullString
			data   []byte
		)
		if r.Cells != nil {
			b, err := json.Marshal(r.Cells)
			if err != nil {
				return fmt.Errorf("%w: time step %d cells: %w", types.ErrInvalidData, r.TimeStep, err)
			}
			cells = sql.NullString{String: string(b), Valid: true}
		}
		if r.Raster != nil {
			format = sql.NullString{String: r.Raster.Format, Valid: true}
			data = r.Raster.Data
		}
		if _, err := tx.Exec(
			`INSERT INTO dataset_rasters (file_id, ordinal, time_step, timestamp, status, cells, raster_format, raster_data)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, r.TimeStep, r.Timestamp, r.Status, cells, format, data); err != nil {
			return fmt.Errorf("inserting time step %d: %w", r.TimeStep, err)
		}
	}
	return nil
}

// LoadDataset returns the dataset stored under id.
func (b *Backend) LoadDataset(id string) (*types.Dataset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if _, err := b.fileRecord(id, types.KindDataset); err != nil {
		return nil, err
	}
	return loadDataset(b.db, id)
}

func loadDataset(db *sql.DB, id string) (*types.Dataset, error) {
	d := &types.Dataset{}
	var kind int
	err := db.QueryRow(
		`SELECT dataset_type, object_type, object_id, number_data, number_cells, name FROM datasets WHERE file_id = ?`, id).
		Scan(&kind, &d.ObjectType, &d.ObjectID, &d.NumberData, &d.NumberCells, &d.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: dataset header for %s", types.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying dataset: %w", err)
	}
	d.Kind = types.DatasetKind(kind)

	rows, err := db.Query(
		`SELECT time_step, timestamp, status, cells, raster_format, raster_data
         FROM dataset_rasters WHERE file_id = ? ORDER BY ordinal`, id)
	if err != nil {
		return nil, fmt.Errorf("querying time steps: %w", err)
	}
	err = eachRow(rows, func(s scanner) error {
		var (
			r      types.TimeStepRaster
			cells  sql.NullString
			format sql.NullString
			data   []byte
		)
		if err := s.Scan(&r.TimeStep, &r.Timestamp, &r.Status, &cells, &format, &data); err != nil {
			return err
		}
		if cells.Valid {
			if err := json.Unmarshal([]byte(cells.String), &r.Cells); err != nil {
				return fmt.Errorf("%w: time step %d cells: %w", types.ErrInvalidData, r.TimeStep, err)
			}
		}
		if format.Valid {
			r.Raster = &types.EncodedRaster{Format: format.String, Data: data}
		}
		d.Rasters = append(d.Rasters, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}
