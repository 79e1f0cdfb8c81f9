package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// SaveNetwork stores n under name and returns the generated file ID.
func (b *Backend) SaveNetwork(name string, n *types.Network) (string, error) {
	if n == nil {
		return "", fmt.Errorf("%w: nil network", types.ErrInvalidData)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrStoreDetached
	}
	rec := types.FileRecord{FileID: newUUID(), Kind: types.KindNetwork, Name: name, CreatedAt: b.now()}
	err := b.withTx(func(tx *sql.Tx) error {
		return insertNetwork(tx, rec, n)
	})
	if err != nil {
		return "", err
	}
	return rec.FileID, nil
}

func insertNetwork(tx *sql.Tx, rec types.FileRecord, n *types.Network) error {
	if err := insertFile(tx, rec); err != nil {
		return err
	}
	id := rec.FileID
	for i, c := range n.Connections {
		if _, err := tx.Exec(
			`INSERT INTO connections (file_id, ordinal, slink_number, up_sjunc_number, down_sjunc_number) VALUES (?, ?, ?, ?, ?)`,
			id, i, c.SlinkNumber, c.UpSjuncNumber, c.DownSjuncNumber); err != nil {
			return fmt.Errorf("inserting connection %d: %w", i, err)
		}
	}
	for i, sj := range n.SuperJunctions {
		if _, err := tx.Exec(
			`INSERT INTO super_junctions (file_id, ordinal, sjunc_number, ground_surface_elev, invert_elev, manhole_sa,
                inlet_code, link_or_cell_i, node_or_cell_j, weir_side_length, orifice_diameter)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, sj.Number, sj.GroundSurfaceElev, sj.InvertElev, sj.ManholeSA,
			sj.InletCode, sj.LinkOrCellI, sj.NodeOrCellJ, sj.WeirSideLength, sj.OrificeDiameter); err != nil {
			return fmt.Errorf("inserting super junction %d: %w", sj.Number, err)
		}
	}
	for i, sl := range n.SuperLinks {
		slinkID := newUUID()
		if _, err := tx.Exec(
			`INSERT INTO super_links (slink_id, file_id, ordinal, slink_number, num_pipes) VALUES (?, ?, ?, ?, ?)`,
			slinkID, id, i, sl.Number, sl.NumPipes); err != nil {
			return fmt.Errorf("inserting super link %d: %w", sl.Number, err)
		}
		for j, nd := range sl.Nodes {
			if _, err := tx.Exec(
				`INSERT INTO super_nodes (slink_id, ordinal, node_number, ground_surface_elev, invert_elev, manhole_sa,
                    inlet_code, cell_i, cell_j, weir_side_length, orifice_diameter)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				slinkID, j, nd.Number, nd.GroundSurfaceElev, nd.InvertElev, nd.ManholeSA,
				nd.InletCode, nd.CellI, nd.CellJ, nd.WeirSideLength, nd.OrificeDiameter); err != nil {
				return fmt.Errorf("inserting node %d of super link %d: %w", nd.Number, sl.Number, err)
			}
		}
		for j, p := range sl.Pipes {
			if _, err := tx.Exec(
				`INSERT INTO pipes (slink_id, ordinal, pipe_number, xsec_type, diameter_or_height, width, slope,
                    roughness, length, conductance, drain_spacing)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				slinkID, j, p.Number, p.XSecType, p.DiameterOrHeight, p.Width, p.Slope,
				p.Roughness, p.Length, p.Conductance, p.DrainSpacing); err != nil {
				return fmt.Errorf("inserting pipe %d of super link %d: %w", p.Number, sl.Number, err)
			}
		}
	}
	return nil
}

// LoadNetwork returns the network stored under id.
func (b *Backend) LoadNetwork(id string) (*types.Network, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if _, err := b.fileRecord(id, types.KindNetwork); err != nil {
		return nil, err
	}
	return loadNetwork(b.db, id)
}

func loadNetwork(db *sql.DB, id string) (*types.Network, error) {
	n := &types.Network{}

	rows, err := db.Query(
		`SELECT slink_number, up_sjunc_number, down_sjunc_number FROM connections WHERE file_id = ? ORDER BY ordinal`, id)
	if err != nil {
		return nil, fmt.Errorf("querying connections: %w", err)
	}
	err = eachRow(rows, func(s scanner) error {
		var c types.Connection
		if err := s.Scan(&c.SlinkNumber, &c.UpSjuncNumber, &c.DownSjuncNumber); err != nil {
			return err
		}
		n.Connections = append(n.Connections, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows, err = db.Query(
		`SELECT sjunc_number, ground_surface_elev, invert_elev, manhole_sa, inlet_code, link_or_cell_i,
            node_or_cell_j, weir_side_length, orifice_diameter
         FROM super_junctions WHERE file_id = ? ORDER BY ordinal`, id)
	if err != nil {
		return nil, fmt.Errorf("querying super junctions: %w", err)
	}
	err = eachRow(rows, func(s scanner) error {
		var sj types.SuperJunction
		if err := s.Scan(&sj.Number, &sj.GroundSurfaceElev, &sj.InvertElev, &sj.ManholeSA, &sj.InletCode,
			&sj.LinkOrCellI, &sj.NodeOrCellJ, &sj.WeirSideLength, &sj.OrificeDiameter); err != nil {
			return err
		}
		n.SuperJunctions = append(n.SuperJunctions, sj)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows, err = db.Query(
		`SELECT slink_id, slink_number, num_pipes FROM super_links WHERE file_id = ? ORDER BY ordinal`, id)
	if err != nil {
		return nil, fmt.Errorf("querying super links: %w", err)
	}
	var slinkIDs []string
	err = eachRow(rows, func(s scanner) error {
		var (
			slinkID string
			sl      types.SuperLink
		)
		if err := s.Scan(&slinkID, &sl.Number, &sl.NumPipes); err != nil {
			return err
		}
		slinkIDs = append(slinkIDs, slinkID)
		n.SuperLinks = append(n.SuperLinks, sl)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, slinkID := range slinkIDs {
		sl := &n.SuperLinks[i]
		rows, err := db.Query(
			`SELECT node_number, ground_surface_elev, invert_elev, manhole_sa, inlet_code, cell_i, cell_j,
                weir_side_length, orifice_diameter
             FROM super_nodes WHERE slink_id = ? ORDER BY ordinal`, slinkID)
		if err != nil {
			return nil, fmt.Errorf("querying nodes: %w", err)
		}
		err = eachRow(rows, func(s scanner) error {
			var nd types.SuperNode
			if err := s.Scan(&nd.Number, &nd.GroundSurfaceElev, &nd.InvertElev, &nd.ManholeSA, &nd.InletCode,
				&nd.CellI, &nd.CellJ, &nd.WeirSideLength, &nd.OrificeDiameter); err != nil {
				return err
			}
			sl.Nodes = append(sl.Nodes, nd)
			return nil
		})
		if err != nil {
			return nil, err
		}

		rows, err = db.Query(
			`SELECT pipe_number, xsec_type, diameter_or_height, width, slope, roughness, length, conductance,
                drain_spacing
             FROM pipes WHERE slink_id = ? ORDER BY ordinal`, slinkID)
		if err != nil {
			return nil, fmt.Errorf("querying pipes: %w", err)
		}
		err = eachRow(rows, func(s scanner) error {
			var p types.Pipe
			if err := s.Scan(&p.Number, &p.XSecType, &p.DiameterOrHeight, &p.Width, &p.Slope, &p.Roughness,
				&p.Length, &p.Conductance, &p.DrainSpacing); err != nil {
				return err
			}
			sl.Pipes = append(sl.Pipes, p)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return n, nil
}

// eachRow calls fn for every row and closes rows.
func eachRow(rows *sql.Rows, fn func(scanner) error) error {
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
