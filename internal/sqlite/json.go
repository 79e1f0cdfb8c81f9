package sqlite

import "github.com/mesh-intelligence/hydrocard/pkg/types"

// JSONL snapshot files written by Export and read by Import.
const (
	NetworksFile = "networks.jsonl"
	DatasetsFile = "datasets.jsonl"
)

// networkJSON is one line of networks.jsonl.
type networkJSON struct {
	FileID    string         `json:"file_id"`
	Name      string         `json:"name"`
	CreatedAt string         `json:"created_at"`
	Network   *types.Network `json:"network"`
}

// datasetJSON is one line of datasets.jsonl.
type datasetJSON struct {
	FileID    string         `json:"file_id"`
	Name      string         `json:"name"`
	CreatedAt string         `json:"created_at"`
	Dataset   *types.Dataset `json:"dataset"`
}
