// Package cache stores pipeline artifacts keyed by content hashes, so
// re-running the pipeline on an unchanged dataset skips straight to the
// cached result. Backends cover local CLI use (file), server deployments
// (redis, mongo), and disabled caching (null).
package cache

import (
	"context"
	"time"
)

// TTLs per artifact class. Analyses and documents derive deterministically
// from their inputs, so these mostly bound cache growth rather than
// staleness.
const (
	TTLAnalysis = 24 * time.Hour
	TTLDocument = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage backend used by the pipeline.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A nonpositive ttl stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for the pipeline's three artifact classes.
type Keyer interface {
	// AnalysisKey keys the computed analysis by the dataset's content hash.
	AnalysisKey(datasetHash string) string

	// DocumentKey keys the assembled document by the analysis hash and the
	// layout options in effect.
	DocumentKey(analysisHash string, opts DocumentKeyOpts) string

	// ArtifactKey keys rendered bytes by the document hash and format.
	ArtifactKey(documentHash string, opts ArtifactKeyOpts) string
}

// DocumentKeyOpts are the layout inputs that change the assembled document.
type DocumentKeyOpts struct {
	CanvasHash string `json:"canvas_hash"`
	Title      string `json:"title"`
}

// ArtifactKeyOpts are the render inputs that change the serialized bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}
