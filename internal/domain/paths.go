package domain

import "path/filepath"

const (
	// DatabaseFile holds the persisted card snapshot.
	DatabaseFile = "ygocdb.db"
	// TokenFile holds the version token of that snapshot, plain text.
	TokenFile = "cards_md5.txt"
	// ImageCacheDirName is the disk tier of the image cache.
	ImageCacheDirName = "CardImages"
)

// Paths resolves all local-state locations under one data directory.
type Paths struct {
	DataDir       string
	DatabaseDir   string
	TokenPath     string
	ImageCacheDir string
}

// NewPaths builds the path set for a data directory. An explicit image cache
// directory overrides the default location inside dataDir.
func NewPaths(dataDir, imageCacheDir string) *Paths {
	if imageCacheDir == "" {
		imageCacheDir = filepath.Join(dataDir, ImageCacheDirName)
	}
	return &Paths{
		DataDir:       dataDir,
		DatabaseDir:   dataDir,
		TokenPath:     filepath.Join(dataDir, TokenFile),
		ImageCacheDir: imageCacheDir,
	}
}

// DatabasePath is the full path of the sqlite snapshot file.
func (p *Paths) DatabasePath() string {
	return filepath.Join(p.DatabaseDir, DatabaseFile)
}
