package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BlobStore is the byte sink behind the ingestor. A written object must be
// fully readable once Put returns.
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader) error
}

// Ingestor copies validated image payloads into the blob store and hands
// back the public path to record on the entity.
type Ingestor struct {
	store        BlobStore
	publicPrefix string
}

func NewIngestor(store BlobStore, publicPrefix string) *Ingestor {
	return &Ingestor{store: store, publicPrefix: publicPrefix}
}

// Ingest stores the upload under a unique name and returns its public path.
// Call it only after ValidateImage accepted the payload. The name combines
// the ingestion instant with a random suffix, so two uploads landing in the
// same nanosecond still cannot collide.
func (ing *Ingestor) Ingest(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		mimeType, err := sniffType(fh)
		if err != nil {
			return "", err
		}
		ext = extByType[mimeType]
	}

	name := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.New().String(), ext)
	if err := ing.store.Put(ctx, name, f); err != nil {
		return "", fmt.Errorf("store cover image: %w", err)
	}

	return path.Join(ing.publicPrefix, name), nil
}
