package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/qjebbs/go-jsons"
)

// mergeFiles deep-merges the JSON files among paths that exist, in order, so
// later files win on conflicting keys and arrays are concatenated. It returns
// the merged document and the files that took part.
func mergeFiles(paths []string) ([]byte, []string, error) {
	var (
		docs   []io.Reader
		loaded []string
	)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		docs = append(docs, bytes.NewReader(data))
		loaded = append(loaded, path)
	}
	if len(docs) == 0 {
		return []byte("{}"), nil, nil
	}

	merged, err := jsons.Merge(docs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to merge %s: %w", strings.Join(loaded, ", "), err)
	}
	return merged, loaded, nil
}
