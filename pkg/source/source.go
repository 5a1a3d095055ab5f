package source

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/sfeldkamp/quadrant/pkg/errors"
	"github.com/sfeldkamp/quadrant/pkg/radar"
)

// ReadJSON decodes a JSON item list from r.
//
// The input must be a JSON array of item objects:
//
//	[
//	  {"name": "Go", "category": "Languages & Frameworks", "level": "Adopt"},
//	  {"name": "Kafka", "category": "Platforms", "level": "Trial"}
//	]
//
// Each item must have a non-empty name. Category and level are carried as
// written; classification matching happens later in the layout engine, so
// unknown labels are not an error here.
//
// The slice preserves input order. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]radar.Item, error) {
	var items []radar.Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON item list")
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

// ReadCSV decodes a CSV item list from r.
//
// The first row must be a header naming at least the name, category and
// level columns. Optional columns: score, description, link. Column order
// does not matter.
//
// The slice preserves row order. ReadCSV does not close r.
func ReadCSV(r io.Reader) ([]radar.Item, error) {
	var items []radar.Item
	if err := gocsv.Unmarshal(r, &items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode CSV item list")
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

// LoadFile reads an item list from a local file, dispatching on the file
// extension: .json uses [ReadJSON], .csv uses [ReadCSV]. Other extensions
// return an UNSUPPORTED error.
func LoadFile(path string) ([]radar.Item, error) {
	read, err := readerFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "item list file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "open item list: %s", path)
	}
	defer f.Close()

	items, err := read(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return items, nil
}

// Load reads an item list from source, which is either an HTTP(S) URL or
// a local file path. URL sources go through client with caching and retry;
// pass nil to build a default client on the fly.
func Load(ctx context.Context, client *Client, src string) ([]radar.Item, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		if client == nil {
			var err error
			client, err = NewClient(Options{})
			if err != nil {
				return nil, err
			}
		}
		return client.FetchItems(ctx, src, false)
	}
	return LoadFile(src)
}

func readerFor(path string) (func(io.Reader) ([]radar.Item, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON, nil
	case ".csv":
		return ReadCSV, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported item list format: %s", filepath.Ext(path))
	}
}

func validateItems(items []radar.Item) error {
	for i, it := range items {
		if err := errors.ValidateItemName(it.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidItem, err, "item %d", i)
		}
	}
	return nil
}
