package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/facturio/backend/internal/domain/printing"
)

// PDFCache stores rendered document PDFs so repeated downloads of an
// unchanged quotation or invoice skip the render pipeline.
type PDFCache interface {
	// Get returns the cached PDF bytes for a key, or false when absent
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the PDF bytes under a key with a TTL
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Invalidate removes a cached entry
	Invalidate(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}

// PDFCacheKey builds the cache key for a rendered document. The document's
// UpdatedAt is part of the key, so any edit naturally misses the cache and
// stale renders age out via TTL instead of explicit invalidation.
func PDFCacheKey(docType printing.DocType, documentID uuid.UUID, updatedAt time.Time) string {
	return fmt.Sprintf("%s:%s:%d", docType, documentID, updatedAt.UnixNano())
}
