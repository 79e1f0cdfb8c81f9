package types

import (
	"errors"
	"time"
)

// Stored file kinds.
const (
	KindNetwork = "network"
	KindDataset = "dataset"
)

// FileRecord describes one graph held by a Store.
type FileRecord struct {
	FileID    string    `json:"file_id"` // UUID v7, generated on save
	Kind      string    `json:"kind"`    // KindNetwork or KindDataset
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persistence collaborator. It receives fully assembled graphs
// after decode and hands them back unmodified before encode. Callers attach
// to a backend, save and load graphs, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrStoreDetached.
	Detach() error

	// SaveNetwork stores n under name and returns the generated file ID.
	SaveNetwork(name string, n *Network) (string, error)

	// LoadNetwork returns the network stored under id.
	// Returns ErrNotFound if no network exists with that ID.
	LoadNetwork(id string) (*Network, error)

	// SaveDataset stores d under name and returns the generated file ID.
	SaveDataset(name string, d *Dataset) (string, error)

	// LoadDataset returns the dataset stored under id.
	// Returns ErrNotFound if no dataset exists with that ID.
	LoadDataset(id string) (*Dataset, error)

	// ListFiles returns stored files of the given kind in save order.
	// An empty kind lists every file.
	ListFiles(kind string) ([]FileRecord, error)

	// DeleteFile removes a stored graph and everything it owns.
	DeleteFile(id string) error
}

// Store lifecycle and lookup errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidID       = errors.New("invalid entity ID")
	ErrInvalidData     = errors.New("invalid entity data")
	ErrKindMismatch    = errors.New("stored file has a different kind")
)
