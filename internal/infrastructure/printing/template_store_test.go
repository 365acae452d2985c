package printing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/facturio/backend/internal/domain/printing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplateStore(t *testing.T) {
	t.Run("creates store with embedded templates", func(t *testing.T) {
		store, err := NewTemplateStore(nil)
		require.NoError(t, err)
		require.NotNil(t, store)

		templates := store.GetAll()
		assert.Len(t, templates, 2)
	})

	t.Run("creates store with empty config", func(t *testing.T) {
		store, err := NewTemplateStore(&TemplateStoreConfig{})
		require.NoError(t, err)
		require.NotNil(t, store)

		templates := store.GetAll()
		assert.NotEmpty(t, templates)
	})
}

func TestTemplateStore_GetByDocType(t *testing.T) {
	store, err := NewTemplateStore(nil)
	require.NoError(t, err)

	t.Run("returns templates for valid doc type", func(t *testing.T) {
		templates := store.GetByDocType(printing.DocTypeQuotation)
		assert.NotEmpty(t, templates)

		for _, tmpl := range templates {
			assert.Equal(t, printing.DocTypeQuotation, tmpl.DocType)
		}
	})

	t.Run("returns empty slice for invalid doc type", func(t *testing.T) {
		templates := store.GetByDocType(printing.DocType("INVALID"))
		assert.Empty(t, templates)
	})
}

func TestTemplateStore_GetDefault(t *testing.T) {
	store, err := NewTemplateStore(nil)
	require.NoError(t, err)

	t.Run("returns default template for each doc type", func(t *testing.T) {
		for _, docType := range printing.AllDocTypes() {
			tmpl := store.GetDefault(docType)
			require.NotNil(t, tmpl, "doc type %s should have a default template", docType)
			assert.True(t, tmpl.IsDefault)
			assert.Equal(t, docType, tmpl.DocType)
		}
	})

	t.Run("returns nil for doc type without templates", func(t *testing.T) {
		tmpl := store.GetDefault(printing.DocType("INVALID"))
		assert.Nil(t, tmpl)
	})
}

func TestTemplateStore_GetByID(t *testing.T) {
	store, err := NewTemplateStore(nil)
	require.NoError(t, err)

	t.Run("returns template by ID", func(t *testing.T) {
		templates := store.GetAll()
		require.NotEmpty(t, templates)

		first := templates[0]
		found := store.GetByID(first.ID)
		require.NotNil(t, found)
		assert.Equal(t, first.ID, found.ID)
		assert.Equal(t, first.Name, found.Name)
	})

	t.Run("returns nil for non-existent ID", func(t *testing.T) {
		found := store.GetByID("non-existent-id")
		assert.Nil(t, found)
	})
}

func TestTemplateStore_TemplateContent(t *testing.T) {
	store, err := NewTemplateStore(nil)
	require.NoError(t, err)

	t.Run("templates have loaded content", func(t *testing.T) {
		templates := store.GetAll()
		for _, tmpl := range templates {
			assert.NotEmpty(t, tmpl.Content, "template %s should have content", tmpl.Name)
			assert.Contains(t, tmpl.Content, "<html", "template %s should contain HTML", tmpl.Name)
		}
	})
}

func TestTemplateStore_StableIDs(t *testing.T) {
	t.Run("same doc type, paper size, and orientation produce same ID", func(t *testing.T) {
		id1 := generateTemplateID(printing.DocTypeQuotation, printing.PaperSizeA4, printing.OrientationPortrait)
		id2 := generateTemplateID(printing.DocTypeQuotation, printing.PaperSizeA4, printing.OrientationPortrait)
		assert.Equal(t, id1, id2)
	})

	t.Run("different paper sizes produce different IDs", func(t *testing.T) {
		id1 := generateTemplateID(printing.DocTypeQuotation, printing.PaperSizeA4, printing.OrientationPortrait)
		id2 := generateTemplateID(printing.DocTypeQuotation, printing.PaperSizeA5, printing.OrientationPortrait)
		assert.NotEqual(t, id1, id2)
	})

	t.Run("different doc types produce different IDs", func(t *testing.T) {
		id1 := generateTemplateID(printing.DocTypeQuotation, printing.PaperSizeA4, printing.OrientationPortrait)
		id2 := generateTemplateID(printing.DocTypeInvoice, printing.PaperSizeA4, printing.OrientationPortrait)
		assert.NotEqual(t, id1, id2)
	})
}

func TestTemplateStore_ToTemplate(t *testing.T) {
	store, err := NewTemplateStore(nil)
	require.NoError(t, err)

	t.Run("converts static template to domain template", func(t *testing.T) {
		templates := store.GetAll()
		require.NotEmpty(t, templates)

		static := &templates[0]
		domain := static.ToTemplate()

		require.NotNil(t, domain)
		assert.Equal(t, static.DocType, domain.DocumentType)
		assert.Equal(t, static.Name, domain.Name)
		assert.Equal(t, static.Content, domain.Content)
		assert.Equal(t, static.PaperSize, domain.PaperSize)
		assert.Equal(t, static.Orientation, domain.Orientation)
		assert.Equal(t, static.Margins, domain.Margins)
	})
}

func TestTemplateStore_ExternalDir(t *testing.T) {
	t.Run("loads from external dir when file exists", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "templates")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		customContent := `<!DOCTYPE html><html><body>Modèle personnalisé</body></html>`
		err = os.WriteFile(filepath.Join(tmpDir, "quotation_a4.html"), []byte(customContent), 0644)
		require.NoError(t, err)

		store, err := NewTemplateStore(&TemplateStoreConfig{
			ExternalDir: tmpDir,
		})
		require.NoError(t, err)

		tmpl := store.GetDefault(printing.DocTypeQuotation)
		require.NotNil(t, tmpl)

		assert.Contains(t, tmpl.Content, "Modèle personnalisé")
	})

	t.Run("falls back to embedded when external file not found", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "templates")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		store, err := NewTemplateStore(&TemplateStoreConfig{
			ExternalDir: tmpDir,
		})
		require.NoError(t, err)

		templates := store.GetAll()
		assert.NotEmpty(t, templates)
	})
}

func TestTemplateStore_Reload(t *testing.T) {
	t.Run("reload refreshes templates", func(t *testing.T) {
		store, err := NewTemplateStore(nil)
		require.NoError(t, err)

		countBefore := len(store.GetAll())

		err = store.Reload()
		require.NoError(t, err)

		countAfter := len(store.GetAll())
		assert.Equal(t, countBefore, countAfter)
	})
}
