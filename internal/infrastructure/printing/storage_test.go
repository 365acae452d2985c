package printing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturio/backend/internal/domain/printing"
)

func TestNewFileSystemStorage(t *testing.T) {
	t.Run("with default base URL", func(t *testing.T) {
		tempDir := t.TempDir()
		config := &FileSystemStorageConfig{
			BasePath: tempDir,
		}

		storage, err := NewFileSystemStorage(config)
		require.NoError(t, err)
		assert.NotNil(t, storage)
		assert.Equal(t, tempDir, storage.config.BasePath)
		assert.Equal(t, "/api/v1/documents", storage.config.BaseURL)
	})

	t.Run("with custom base URL", func(t *testing.T) {
		tempDir := t.TempDir()
		config := &FileSystemStorageConfig{
			BasePath: tempDir,
			BaseURL:  "https://example.com/documents",
		}

		storage, err := NewFileSystemStorage(config)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/documents", storage.config.BaseURL)
	})
}

func TestFileSystemStorage_Store(t *testing.T) {
	tempDir := t.TempDir()
	config := &FileSystemStorageConfig{
		BasePath: tempDir,
		BaseURL:  "/api/v1/documents",
	}
	storage, err := NewFileSystemStorage(config)
	require.NoError(t, err)

	t.Run("successful store", func(t *testing.T) {
		userID := uuid.New()
		documentID := uuid.New()
		pdfData := []byte("%PDF-1.4 test pdf content")

		result, err := storage.Store(context.Background(), &StoreRequest{
			UserID:     userID,
			DocType:    printing.DocTypeQuotation,
			DocumentID: documentID,
			PDFData:    pdfData,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Path)
		assert.NotEmpty(t, result.URL)
		assert.Equal(t, int64(len(pdfData)), result.Size)

		// File name carries the doc type prefix
		assert.True(t, strings.HasSuffix(result.Path, "devis-"+documentID.String()+".pdf"))

		// Verify file exists
		fullPath := filepath.Join(tempDir, result.Path)
		_, err = os.Stat(fullPath)
		assert.NoError(t, err)

		// Verify content
		content, err := os.ReadFile(fullPath)
		require.NoError(t, err)
		assert.Equal(t, pdfData, content)
	})

	t.Run("invoice file name prefix", func(t *testing.T) {
		documentID := uuid.New()

		result, err := storage.Store(context.Background(), &StoreRequest{
			UserID:     uuid.New(),
			DocType:    printing.DocTypeInvoice,
			DocumentID: documentID,
			PDFData:    []byte("%PDF-1.4 facture"),
		})

		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(result.Path, "facture-"+documentID.String()+".pdf"))
	})

	t.Run("nil request", func(t *testing.T) {
		result, err := storage.Store(context.Background(), nil)
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "nil")
	})

	t.Run("nil user ID", func(t *testing.T) {
		result, err := storage.Store(context.Background(), &StoreRequest{
			UserID:     uuid.Nil,
			DocType:    printing.DocTypeQuotation,
			DocumentID: uuid.New(),
			PDFData:    []byte("test"),
		})
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "user")
	})

	t.Run("nil document ID", func(t *testing.T) {
		result, err := storage.Store(context.Background(), &StoreRequest{
			UserID:     uuid.New(),
			DocType:    printing.DocTypeQuotation,
			DocumentID: uuid.Nil,
			PDFData:    []byte("test"),
		})
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "document")
	})

	t.Run("empty PDF data", func(t *testing.T) {
		result, err := storage.Store(context.Background(), &StoreRequest{
			UserID:     uuid.New(),
			DocType:    printing.DocTypeQuotation,
			DocumentID: uuid.New(),
			PDFData:    []byte{},
		})
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "empty")
	})
}

func TestFileSystemStorage_Get(t *testing.T) {
	tempDir := t.TempDir()
	config := &FileSystemStorageConfig{
		BasePath: tempDir,
		BaseURL:  "/api/v1/documents",
	}
	storage, err := NewFileSystemStorage(config)
	require.NoError(t, err)

	// Store a file first
	pdfData := []byte("%PDF-1.4 test pdf content")

	result, err := storage.Store(context.Background(), &StoreRequest{
		UserID:     uuid.New(),
		DocType:    printing.DocTypeInvoice,
		DocumentID: uuid.New(),
		PDFData:    pdfData,
	})
	require.NoError(t, err)

	t.Run("successful get", func(t *testing.T) {
		reader, err := storage.Get(context.Background(), result.Path)
		require.NoError(t, err)
		defer reader.Close()

		content, err := os.ReadFile(filepath.Join(tempDir, result.Path))
		require.NoError(t, err)
		assert.Equal(t, pdfData, content)
	})

	t.Run("file not found", func(t *testing.T) {
		reader, err := storage.Get(context.Background(), "nonexistent/path.pdf")
		assert.Error(t, err)
		assert.Nil(t, reader)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("directory traversal attempt", func(t *testing.T) {
		reader, err := storage.Get(context.Background(), "../../../etc/passwd")
		assert.Error(t, err)
		assert.Nil(t, reader)
	})

	t.Run("absolute path attempt", func(t *testing.T) {
		reader, err := storage.Get(context.Background(), "/etc/passwd")
		assert.Error(t, err)
		assert.Nil(t, reader)
	})
}

func TestFileSystemStorage_Delete(t *testing.T) {
	tempDir := t.TempDir()
	config := &FileSystemStorageConfig{
		BasePath: tempDir,
		BaseURL:  "/api/v1/documents",
	}
	storage, err := NewFileSystemStorage(config)
	require.NoError(t, err)

	// Store a file first
	result, err := storage.Store(context.Background(), &StoreRequest{
		UserID:     uuid.New(),
		DocType:    printing.DocTypeQuotation,
		DocumentID: uuid.New(),
		PDFData:    []byte("%PDF-1.4 test pdf content"),
	})
	require.NoError(t, err)

	t.Run("successful delete", func(t *testing.T) {
		err := storage.Delete(context.Background(), result.Path)
		require.NoError(t, err)

		// Verify file no longer exists
		fullPath := filepath.Join(tempDir, result.Path)
		_, err = os.Stat(fullPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("delete nonexistent file", func(t *testing.T) {
		// Should not error when deleting non-existent file
		err := storage.Delete(context.Background(), "nonexistent/path.pdf")
		assert.NoError(t, err)
	})

	t.Run("directory traversal attempt", func(t *testing.T) {
		err := storage.Delete(context.Background(), "../../../etc/passwd")
		assert.Error(t, err)
	})
}

func TestFileSystemStorage_CleanupOlderThan(t *testing.T) {
	tempDir := t.TempDir()
	config := &FileSystemStorageConfig{
		BasePath: tempDir,
		BaseURL:  "/api/v1/documents",
	}
	storage, err := NewFileSystemStorage(config)
	require.NoError(t, err)

	userID := uuid.New()
	pdfData := []byte("%PDF-1.4 test")

	// Store multiple files
	for i := 0; i < 3; i++ {
		_, err := storage.Store(context.Background(), &StoreRequest{
			UserID:     userID,
			DocType:    printing.DocTypeInvoice,
			DocumentID: uuid.New(),
			PDFData:    pdfData,
		})
		require.NoError(t, err)
	}

	t.Run("cleanup with future cutoff", func(t *testing.T) {
		// Files are too new to be deleted
		deleted, err := storage.CleanupOlderThan(context.Background(), 24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 0, deleted)
	})

	t.Run("cleanup with context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		deleted, err := storage.CleanupOlderThan(ctx, 0)
		// Should either return error or early termination
		_ = deleted
		_ = err
	})
}

func TestFileSystemStorage_GetURL(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name     string
		baseURL  string
		path     string
		expected string
	}{
		{
			name:     "simple path",
			baseURL:  "/api/v1/documents",
			path:     "user-id/2026/01/devis-id.pdf",
			expected: "/api/v1/documents/user-id/2026/01/devis-id.pdf",
		},
		{
			name:     "with https base URL",
			baseURL:  "https://example.com/documents",
			path:     "user-id/2026/01/facture-id.pdf",
			expected: "https://example.com/documents/user-id/2026/01/facture-id.pdf",
		},
		{
			name:     "path with dots",
			baseURL:  "/api/v1/documents",
			path:     "user-id/2026/01/./devis-id.pdf",
			expected: "/api/v1/documents/user-id/2026/01/devis-id.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &FileSystemStorageConfig{
				BasePath: tempDir,
				BaseURL:  tt.baseURL,
			}
			storage, err := NewFileSystemStorage(config)
			require.NoError(t, err)

			url := storage.GetURL(tt.path)
			assert.Equal(t, tt.expected, url)
		})
	}
}

func TestContainsDotDot(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "normal path",
			path:     "user/2026/01/file.pdf",
			expected: false,
		},
		{
			name:     "path with dot dot",
			path:     "user/../secret/file.pdf",
			expected: true,
		},
		{
			name:     "path starting with dot dot",
			path:     "../etc/passwd",
			expected: true,
		},
		{
			name:     "path with double dot dot",
			path:     "../../secret",
			expected: true,
		},
		{
			name:     "path with single dot",
			path:     "user/./2026/file.pdf",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := containsDotDot(tt.path)
			assert.Equal(t, tt.expected, result)
		})
	}
}
