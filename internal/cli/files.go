package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/hydrocard/internal/grid"
	"github.com/mesh-intelligence/hydrocard/internal/spn"
	"github.com/mesh-intelligence/hydrocard/internal/sqlite"
	"github.com/mesh-intelligence/hydrocard/internal/wms"
	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

const kindAuto = "auto"

// kindForPath picks the grammar for path. Files with the network extension
// are networks and everything else is a dataset unless override names a
// kind.
func kindForPath(path, override string) (string, error) {
	switch override {
	case "", kindAuto:
		if strings.EqualFold(strings.TrimPrefix(filepath.Ext(path), "."), spn.Extension) {
			return types.KindNetwork, nil
		}
		return types.KindDataset, nil
	case types.KindNetwork, types.KindDataset:
		return override, nil
	default:
		return "", fmt.Errorf("unknown kind %q (valid: %s, %s, %s)", override, kindAuto, types.KindNetwork, types.KindDataset)
	}
}

func (a *app) networkOptions() spn.Options {
	return spn.Options{StrictCounts: a.cfg.StrictCounts, Logger: a.log}
}

// datasetOptions loads the configured mask, if any. A missing mask is left
// for the dataset reader to report.
func (a *app) datasetOptions() (wms.Options, error) {
	epoch, err := a.cfg.Epoch()
	if err != nil {
		return wms.Options{}, err
	}
	opts := wms.Options{
		Spatial: a.cfg.Spatial,
		Codec:   grid.ASCIICodec{},
		Epoch:   epoch,
		Logger:  a.log,
	}
	if a.cfg.MaskPath != "" {
		m, err := grid.ReadMask(a.cfg.MaskPath)
		if err != nil {
			return wms.Options{}, fmt.Errorf("load mask: %w", err)
		}
		opts.Mask = m
	}
	return opts, nil
}

// graph is one decoded file of either kind.
type graph struct {
	kind    string
	network *types.Network
	dataset *types.Dataset
}

func (a *app) decodeFile(path, kind string, dsOpts wms.Options) (graph, error) {
	g := graph{kind: kind}
	var err error
	switch kind {
	case types.KindNetwork:
		g.network, err = spn.ReadFile(path, a.networkOptions())
	case types.KindDataset:
		g.dataset, err = wms.ReadFile(path, dsOpts)
	default:
		err = fmt.Errorf("unknown kind %q", kind)
	}
	return g, err
}

func encodeGraph(g graph, dsOpts wms.Options) ([]byte, error) {
	if g.network != nil {
		return spn.Marshal(g.network), nil
	}
	return wms.Marshal(g.dataset, dsOpts)
}

func writeGraph(path string, g graph, dsOpts wms.Options) error {
	if g.network != nil {
		return spn.WriteFile(path, g.network)
	}
	return wms.WriteFile(path, g.dataset, dsOpts)
}

func saveGraph(store types.Store, name string, g graph) (string, error) {
	if g.network != nil {
		return store.SaveNetwork(name, g.network)
	}
	return store.SaveDataset(name, g.dataset)
}

// loadGraph loads the stored graph with the given file ID.
func loadGraph(store types.Store, id string) (types.FileRecord, graph, error) {
	files, err := store.ListFiles("")
	if err != nil {
		return types.FileRecord{}, graph{}, err
	}
	for _, rec := range files {
		if rec.FileID != id {
			continue
		}
		g := graph{kind: rec.Kind}
		switch rec.Kind {
		case types.KindNetwork:
			g.network, err = store.LoadNetwork(id)
		default:
			g.dataset, err = store.LoadDataset(id)
		}
		return rec, g, err
	}
	return types.FileRecord{}, graph{}, fmt.Errorf("%w: %s", types.ErrNotFound, id)
}

func (a *app) openStore() (*sqlite.Backend, error) {
	store := sqlite.NewBackend()
	if err := store.Attach(a.cfg); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	return store, nil
}

// firstDiff returns the 1-based line of the first difference between a
// and b.
func firstDiff(a, b []byte) int {
	line := 1
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return line
		}
		if a[i] == '\n' {
			line++
		}
	}
	return line
}

func readOriginal(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.IOError("read", path, err)
	}
	return data, nil
}
