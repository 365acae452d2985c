package printing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/facturio/backend/internal/domain/printing"
	"github.com/facturio/backend/internal/domain/shared"
	"github.com/facturio/backend/internal/infrastructure/cache"
	infra "github.com/facturio/backend/internal/infrastructure/printing"
	"github.com/facturio/backend/internal/infrastructure/printing/providers"
)

// ObjectStorageService defines the interface for archiving rendered
// documents in S3-compatible object storage
type ObjectStorageService interface {
	// Upload stores data under the given key
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	// GenerateDownloadURL creates a presigned URL for retrieving a stored object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	// DeleteObject removes a stored object
	DeleteObject(ctx context.Context, storageKey string) error
	// ObjectExists checks whether an object is stored
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// RenderService turns quotations and invoices into HTML previews and
// downloadable PDFs. Templates come from the built-in store, document data
// from type-specific providers, and finished PDFs are cached and archived.
type RenderService struct {
	templateStore  *infra.TemplateStore
	templateEngine *infra.TemplateEngine
	pdfRenderer    infra.PDFRenderer
	registry       *providers.DataProviderRegistry
	pdfStorage     infra.PDFStorage
	pdfCache       cache.PDFCache
	archive        ObjectStorageService
	cacheTTL       time.Duration
	logger         *zap.Logger
}

// RenderServiceOption is a functional option for configuring RenderService
type RenderServiceOption func(*RenderService)

// WithPDFCache enables caching of rendered PDFs
func WithPDFCache(c cache.PDFCache, ttl time.Duration) RenderServiceOption {
	return func(s *RenderService) {
		s.pdfCache = c
		s.cacheTTL = ttl
	}
}

// WithPDFStorage enables keeping a copy of each rendered PDF on disk
func WithPDFStorage(storage infra.PDFStorage) RenderServiceOption {
	return func(s *RenderService) {
		s.pdfStorage = storage
	}
}

// WithArchive enables archiving rendered PDFs to object storage
func WithArchive(archive ObjectStorageService) RenderServiceOption {
	return func(s *RenderService) {
		s.archive = archive
	}
}

// NewRenderService creates a new RenderService
func NewRenderService(
	templateStore *infra.TemplateStore,
	templateEngine *infra.TemplateEngine,
	pdfRenderer infra.PDFRenderer,
	registry *providers.DataProviderRegistry,
	logger *zap.Logger,
	opts ...RenderServiceOption,
) *RenderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &RenderService{
		templateStore:  templateStore,
		templateEngine: templateEngine,
		pdfRenderer:    pdfRenderer,
		registry:       registry,
		cacheTTL:       time.Hour,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview renders a document to HTML without producing a PDF
func (s *RenderService) Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	docType := printing.DocType(req.DocumentType)
	if !docType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid document type")
	}

	data, err := s.registry.LoadData(ctx, docType, req.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load document data: %w", err)
	}

	tmpl, err := s.resolveTemplate(docType, req.TemplateID)
	if err != nil {
		return nil, err
	}

	result, err := s.templateEngine.Render(ctx, &infra.RenderTemplateRequest{
		Template: tmpl.ToTemplate(),
		Data:     data,
	})
	if err != nil {
		var renderErr *infra.RenderError
		if errors.As(err, &renderErr) {
			return nil, shared.NewDomainError(renderErr.Code, renderErr.Message)
		}
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	return &PreviewResponse{
		HTML:        result.HTML,
		TemplateID:  tmpl.ID,
		PaperSize:   string(tmpl.PaperSize),
		Orientation: string(tmpl.Orientation),
		Margins: MarginsDTO{
			Top:    tmpl.Margins.Top,
			Right:  tmpl.Margins.Right,
			Bottom: tmpl.Margins.Bottom,
			Left:   tmpl.Margins.Left,
		},
	}, nil
}

// GeneratePDF renders a document to PDF.
// Repeated requests for an unchanged document are served from the cache;
// any edit changes the document's UpdatedAt and thereby the cache key.
func (s *RenderService) GeneratePDF(ctx context.Context, req GeneratePDFRequest) (*GeneratePDFResponse, error) {
	docType := printing.DocType(req.DocumentType)
	if !docType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid document type")
	}

	data, err := s.registry.LoadData(ctx, docType, req.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load document data: %w", err)
	}

	fileName := fmt.Sprintf("%s-%s.pdf", docType.FilePrefix(), req.DocumentID)
	cacheKey := cache.PDFCacheKey(docType, req.DocumentID, data.Meta.UpdatedAt)

	if s.pdfCache != nil {
		cached, found, err := s.pdfCache.Get(ctx, cacheKey)
		if err != nil {
			s.logger.Warn("PDF cache read failed", zap.Error(err))
		} else if found {
			return &GeneratePDFResponse{
				PDFData:     cached,
				FileName:    fileName,
				ContentType: "application/pdf",
				Size:        int64(len(cached)),
				FromCache:   true,
			}, nil
		}
	}

	tmpl, err := s.resolveTemplate(docType, req.TemplateID)
	if err != nil {
		return nil, err
	}

	htmlResult, err := s.templateEngine.Render(ctx, &infra.RenderTemplateRequest{
		Template: tmpl.ToTemplate(),
		Data:     data,
	})
	if err != nil {
		var renderErr *infra.RenderError
		if errors.As(err, &renderErr) {
			return nil, shared.NewDomainError(renderErr.Code, renderErr.Message)
		}
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	pdfResult, err := s.pdfRenderer.Render(ctx, &infra.RenderRequest{
		HTML:        htmlResult.HTML,
		PaperSize:   tmpl.PaperSize,
		Orientation: tmpl.Orientation,
		Margins:     tmpl.Margins,
		Title:       fmt.Sprintf("%s %s", docType.DisplayName(), data.Meta.DocNo),
	})
	if err != nil {
		s.logger.Error("PDF rendering failed",
			zap.Error(err),
			zap.String("docType", string(docType)),
			zap.String("documentId", req.DocumentID.String()))
		var renderErr *infra.RenderError
		if errors.As(err, &renderErr) {
			return nil, shared.NewDomainError(renderErr.Code, renderErr.Message)
		}
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	resp := &GeneratePDFResponse{
		PDFData:     pdfResult.PDFData,
		FileName:    fileName,
		ContentType: "application/pdf",
		Size:        int64(len(pdfResult.PDFData)),
	}

	if s.pdfCache != nil {
		if err := s.pdfCache.Set(ctx, cacheKey, pdfResult.PDFData, s.cacheTTL); err != nil {
			s.logger.Warn("PDF cache write failed", zap.Error(err))
		}
	}

	if s.pdfStorage != nil {
		if _, err := s.pdfStorage.Store(ctx, &infra.StoreRequest{
			UserID:     data.OwnerID,
			DocType:    docType,
			DocumentID: req.DocumentID,
			PDFData:    pdfResult.PDFData,
		}); err != nil {
			s.logger.Warn("PDF file storage failed", zap.Error(err))
		}
	}

	// Archiving is best effort: the caller gets the PDF either way
	if s.archive != nil {
		storageKey := fmt.Sprintf("%s/%s", data.OwnerID, fileName)
		if err := s.archive.Upload(ctx, storageKey, pdfResult.PDFData, "application/pdf"); err != nil {
			s.logger.Warn("PDF archive upload failed",
				zap.Error(err),
				zap.String("storageKey", storageKey))
		} else if url, _, err := s.archive.GenerateDownloadURL(ctx, storageKey, 0); err == nil {
			resp.ArchiveURL = url
		}
	}

	s.logger.Info("PDF generated",
		zap.String("docType", string(docType)),
		zap.String("documentId", req.DocumentID.String()),
		zap.String("fileName", fileName),
		zap.Int("pages", pdfResult.PageCount),
		zap.Duration("duration", pdfResult.RenderDuration))

	return resp, nil
}

// ListTemplates returns the built-in templates, optionally filtered by
// document type
func (s *RenderService) ListTemplates(docType string) ([]TemplateResponse, error) {
	var templates []infra.StaticTemplate
	if docType == "" {
		templates = s.templateStore.GetAll()
	} else {
		dt := printing.DocType(docType)
		if !dt.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid document type")
		}
		templates = s.templateStore.GetByDocType(dt)
	}

	result := make([]TemplateResponse, len(templates))
	for i := range templates {
		result[i] = toTemplateResponse(&templates[i])
	}
	return result, nil
}

// GetDocumentTypes returns all renderable document types
func (s *RenderService) GetDocumentTypes() []DocumentTypeResponse {
	docTypes := printing.AllDocTypes()
	result := make([]DocumentTypeResponse, len(docTypes))
	for i, dt := range docTypes {
		result[i] = DocumentTypeResponse{
			Code:        string(dt),
			DisplayName: dt.DisplayName(),
		}
	}
	return result
}

// GetPaperSizes returns all available paper sizes
func (s *RenderService) GetPaperSizes() []PaperSizeResponse {
	paperSizes := printing.AllPaperSizes()
	result := make([]PaperSizeResponse, len(paperSizes))
	for i, ps := range paperSizes {
		w, h := ps.Dimensions()
		result[i] = PaperSizeResponse{
			Code:   string(ps),
			Width:  w,
			Height: h,
		}
	}
	return result
}

// resolveTemplate picks the requested template or falls back to the doc
// type's default
func (s *RenderService) resolveTemplate(docType printing.DocType, templateID *string) (*infra.StaticTemplate, error) {
	if templateID != nil && *templateID != "" {
		tmpl := s.templateStore.GetByID(*templateID)
		if tmpl == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		if tmpl.DocType != docType {
			return nil, shared.NewDomainError("INVALID_INPUT", "Template does not match the document type")
		}
		return tmpl, nil
	}

	tmpl := s.templateStore.GetDefault(docType)
	if tmpl == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "No default template found for this document type")
	}
	return tmpl, nil
}

func toTemplateResponse(t *infra.StaticTemplate) TemplateResponse {
	return TemplateResponse{
		ID:           t.ID,
		DocumentType: string(t.DocType),
		Name:         t.Name,
		Description:  t.Description,
		PaperSize:    string(t.PaperSize),
		Orientation:  string(t.Orientation),
		Margins: MarginsDTO{
			Top:    t.Margins.Top,
			Right:  t.Margins.Right,
			Bottom: t.Margins.Bottom,
			Left:   t.Margins.Left,
		},
		IsDefault: t.IsDefault,
	}
}
