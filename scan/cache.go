package scan

import (
	"crypto/sha256"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cratesift/cratesift/classify"
	"github.com/cratesift/cratesift/scanner"
)

// defaultCacheSize bounds the scan cache. Entry files are small, so the
// dominant cost of a miss is the parse, not the read.
const defaultCacheSize = 4096

// fileCache hands structural scans to the package classifier, memoized
// by content hash. Registry mirrors hold many versions of the same crate
// whose entry files are byte-identical, so repeat parses are common.
// A fresh tree-sitter parser is created per miss; the cache itself is
// safe for concurrent use.
type fileCache struct {
	scans *lru.Cache[[sha256.Size]byte, *scanner.FileScan]
}

func newFileCache(size int) (*fileCache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}

	scans, err := lru.New[[sha256.Size]byte, *scanner.FileScan](size)
	if err != nil {
		return nil, err
	}

	return &fileCache{scans: scans}, nil
}

// ScanFile implements classify.FileScanner.
func (c *fileCache) ScanFile(path string) (*scanner.FileScan, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", classify.ErrResolution, path, err)
	}

	key := sha256.Sum256(source)
	if scan, ok := c.scans.Get(key); ok {
		return scan, nil
	}

	fileScanner, err := scanner.CreateScanner(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", classify.ErrResolution, path, err)
	}
	defer fileScanner.Close()

	scan, err := fileScanner.ScanSource(source)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	c.scans.Add(key, scan)
	return scan, nil
}
