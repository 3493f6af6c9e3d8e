package media_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookcatalog/internal/media"
	"bookcatalog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		wantErr  error
	}{
		{
			name:     "jpeg accepted",
			filename: "cover.jpg",
			content:  testutil.TinyJPEG,
		},
		{
			name:     "png accepted",
			filename: "cover.png",
			content:  testutil.TinyPNG,
		},
		{
			name:     "gif accepted",
			filename: "cover.gif",
			content:  append([]byte("GIF89a"), make([]byte, 32)...),
		},
		{
			name:     "plain text rejected",
			filename: "cover.jpg",
			content:  []byte("this is not an image at all"),
			wantErr:  media.ErrUnsupportedFormat,
		},
		{
			name:     "pdf rejected",
			filename: "cover.pdf",
			content:  append([]byte("%PDF-1.4"), make([]byte, 32)...),
			wantErr:  media.ErrUnsupportedFormat,
		},
		{
			name:     "oversized payload rejected before sniffing",
			filename: "cover.jpg",
			content:  append(append([]byte{}, testutil.TinyJPEG...), make([]byte, media.MaxImageBytes)...),
			wantErr:  media.ErrTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := testutil.FileHeader(t, tt.filename, tt.content)
			err := media.ValidateImage(fh)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIngestor_Ingest(t *testing.T) {
	t.Run("writes the blob and returns a public path", func(t *testing.T) {
		root := t.TempDir()
		store, err := media.NewFSStore(root)
		require.NoError(t, err)
		ing := media.NewIngestor(store, "/images")

		fh := testutil.FileHeader(t, "book_cover.jpg", testutil.TinyJPEG)
		publicPath, err := ing.Ingest(context.Background(), fh)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(publicPath, "/images/"), "got %q", publicPath)
		assert.True(t, strings.HasSuffix(publicPath, ".jpg"), "got %q", publicPath)

		stored := filepath.Join(root, filepath.Base(publicPath))
		data, err := os.ReadFile(stored)
		require.NoError(t, err)
		assert.Equal(t, testutil.TinyJPEG, data)
	})

	t.Run("falls back to the sniffed type when the filename has no extension", func(t *testing.T) {
		store, err := media.NewFSStore(t.TempDir())
		require.NoError(t, err)
		ing := media.NewIngestor(store, "/images")

		fh := testutil.FileHeader(t, "upload", testutil.TinyPNG)
		publicPath, err := ing.Ingest(context.Background(), fh)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(publicPath, ".png"), "got %q", publicPath)
	})

	t.Run("consecutive uploads never collide", func(t *testing.T) {
		root := t.TempDir()
		store, err := media.NewFSStore(root)
		require.NoError(t, err)
		ing := media.NewIngestor(store, "/images")

		seen := make(map[string]bool)
		for i := 0; i < 10; i++ {
			fh := testutil.FileHeader(t, "book_cover.jpg", testutil.TinyJPEG)
			publicPath, err := ing.Ingest(context.Background(), fh)
			require.NoError(t, err)
			assert.False(t, seen[publicPath], "duplicate path %q", publicPath)
			seen[publicPath] = true
		}
	})
}

func TestFSStore_Put(t *testing.T) {
	t.Run("leaves no temp files behind", func(t *testing.T) {
		root := t.TempDir()
		store, err := media.NewFSStore(root)
		require.NoError(t, err)

		require.NoError(t, store.Put(context.Background(), "a.bin", strings.NewReader("payload")))

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.bin", entries[0].Name())
	})

	t.Run("honors a canceled context", func(t *testing.T) {
		store, err := media.NewFSStore(t.TempDir())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, store.Put(ctx, "a.bin", strings.NewReader("payload")))
	})
}
