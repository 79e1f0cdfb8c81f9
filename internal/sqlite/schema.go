package sqlite

// Schema DDL. Child rows carry an ordinal so graphs load back in the order
// they were saved.
const (
	createFiles = `CREATE TABLE IF NOT EXISTS files (
    file_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createConnections = `CREATE TABLE IF NOT EXISTS connections (
    file_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    slink_number INTEGER NOT NULL,
    up_sjunc_number INTEGER NOT NULL,
    down_sjunc_number INTEGER NOT NULL,
    PRIMARY KEY (file_id, ordinal),
    FOREIGN KEY (file_id) REFERENCES files(file_id) ON DELETE CASCADE
);`

	createSuperJunctions = `CREATE TABLE IF NOT EXISTS super_junctions (
    file_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    sjunc_number INTEGER NOT NULL,
    ground_surface_elev REAL NOT NULL,
    invert_elev REAL NOT NULL,
    manhole_sa REAL NOT NULL,
    inlet_code INTEGER NOT NULL,
    link_or_cell_i INTEGER NOT NULL,
    node_or_cell_j INTEGER NOT NULL,
    weir_side_length REAL NOT NULL,
    orifice_diameter REAL NOT NULL,
    PRIMARY KEY (file_id, ordinal),
    FOREIGN KEY (file_id) REFERENCES files(file_id) ON DELETE CASCADE
);`

	createSuperLinks = `CREATE TABLE IF NOT EXISTS super_links (
    slink_id TEXT PRIMARY KEY,
    file_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    slink_number INTEGER NOT NULL,
    num_pipes INTEGER NOT NULL,
    FOREIGN KEY (file_id) REFERENCES files(file_id) ON DELETE CASCADE
);`

	createSuperNodes = `CREATE TABLE IF NOT EXISTS super_nodes (
    slink_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    node_number INTEGER NOT NULL,
    ground_surface_elev REAL NOT NULL,
    invert_elev REAL NOT NULL,
    manhole_sa REAL NOT NULL,
    inlet_code INTEGER NOT NULL,
    cell_i INTEGER NOT NULL,
    cell_j INTEGER NOT NULL,
    weir_side_length REAL NOT NULL,
    orifice_diameter REAL NOT NULL,
    PRIMARY KEY (slink_id, ordinal),
    FOREIGN KEY (slink_id) REFERENCES super_links(slink_id) ON DELETE CASCADE
);`

	createPipes = `CREATE TABLE IF NOT EXISTS pipes (
    slink_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    pipe_number INTEGER NOT NULL,
    xsec_type INTEGER NOT NULL,
    diameter_or_height REAL NOT NULL,
    width REAL NOT NULL,
    slope REAL NOT NULL,
    roughness REAL NOT NULL,
    length REAL NOT NULL,
    conductance REAL NOT NULL,
    drain_spacing REAL NOT NULL,
    PRIMARY KEY (slink_id, ordinal),
    FOREIGN KEY (slink_id) REFERENCES super_links(slink_id) ON DELETE CASCADE
);`

	createDatasets = `CREATE TABLE IF NOT EXISTS datasets (
    file_id TEXT PRIMARY KEY,
    dataset_type INTEGER NOT NULL,
    object_type TEXT NOT NULL,
    object_id INTEGER NOT NULL,
    number_data INTEGER NOT NULL,
    number_cells INTEGER NOT NULL,
    name TEXT NOT NULL,
    FOREIGN KEY (file_id) REFERENCES files(file_id) ON DELETE CASCADE
);`

	createDatasetRasters = `CREATE TABLE IF NOT EXISTS dataset_rasters (
    file_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    time_step INTEGER NOT NULL,
    timestamp REAL NOT NULL,
    status INTEGER NOT NULL,
    cells TEXT,
    raster_format TEXT,
    raster_data BLOB,
    PRIMARY KEY (file_id, ordinal),
    FOREIGN KEY (file_id) REFERENCES datasets(file_id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxFilesKind      = `CREATE INDEX IF NOT EXISTS idx_files_kind ON files(kind);`
	idxSuperLinksFile = `CREATE INDEX IF NOT EXISTS idx_super_links_file ON super_links(file_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createFiles,
	createConnections,
	createSuperJunctions,
	createSuperLinks,
	createSuperNodes,
	createPipes,
	createDatasets,
	createDatasetRasters,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxFilesKind,
	idxSuperLinksFile,
}
