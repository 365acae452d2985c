package handler

import (
	"net/http"

	printingapp "github.com/facturio/backend/internal/application/printing"
	"github.com/facturio/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RenderHandler handles document rendering API endpoints
type RenderHandler struct {
	BaseHandler
	renderService *printingapp.RenderService
}

// NewRenderHandler creates a new RenderHandler
func NewRenderHandler(renderService *printingapp.RenderService) *RenderHandler {
	return &RenderHandler{
		renderService: renderService,
	}
}

// =============================================================================
// Request Types
// =============================================================================

// PreviewDocumentRequest represents a request to preview a document
//
//	@Description	Request body for previewing a document as HTML
type PreviewDocumentRequest struct {
	DocumentType string  `json:"document_type" binding:"required" example:"quotation"`
	DocumentID   string  `json:"document_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	TemplateID   *string `json:"template_id" example:"invoice-default"`
}

// GeneratePDFHTTPRequest represents a request to render a document to PDF
//
//	@Description	Request body for generating a PDF
type GeneratePDFHTTPRequest struct {
	DocumentType string  `json:"document_type" binding:"required" example:"invoice"`
	DocumentID   string  `json:"document_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	TemplateID   *string `json:"template_id" example:"invoice-default"`
}

// =============================================================================
// Template Query Endpoints (Read-only)
// =============================================================================

// ListTemplates godoc
//
//	@ID				listRenderTemplates
//	@Summary		List render templates
//	@Description	Retrieve the built-in templates, optionally filtered by document type
//	@Tags			render-templates
//	@Produce		json
//	@Param			doc_type	query		string	false	"Document type"	Enums(quotation, invoice)
//	@Success		200			{object}	APIResponse[[]printingapp.TemplateResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/render/templates [get]
func (h *RenderHandler) ListTemplates(c *gin.Context) {
	result, err := h.renderService.ListTemplates(c.Query("doc_type"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// =============================================================================
// Preview and PDF Generation Endpoints
// =============================================================================

// PreviewDocument godoc
//
//	@ID				previewDocument
//	@Summary		Preview document as HTML
//	@Description	Render a quotation or invoice to HTML using a template
//	@Tags			render
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PreviewDocumentRequest	true	"Preview request"
//	@Success		200		{object}	APIResponse[printingapp.PreviewResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/render/preview [post]
func (h *RenderHandler) PreviewDocument(c *gin.Context) {
	var req PreviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	documentID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	result, err := h.renderService.Preview(c.Request.Context(), printingapp.PreviewRequest{
		DocumentType: req.DocumentType,
		DocumentID:   documentID,
		TemplateID:   req.TemplateID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GeneratePDF godoc
//
//	@ID				generateDocumentPDF
//	@Summary		Generate PDF
//	@Description	Render a quotation or invoice to PDF and stream it back.
//	The file name follows the devis-<id>.pdf / facture-<id>.pdf convention.
//	@Tags			render
//	@Accept			json
//	@Produce		application/pdf
//	@Param			request	body		GeneratePDFHTTPRequest	true	"PDF generation request"
//	@Success		200		{file}		binary	"PDF file"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/render/pdf [post]
func (h *RenderHandler) GeneratePDF(c *gin.Context) {
	var req GeneratePDFHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	documentID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	result, err := h.renderService.GeneratePDF(c.Request.Context(), printingapp.GeneratePDFRequest{
		DocumentType: req.DocumentType,
		DocumentID:   documentID,
		TemplateID:   req.TemplateID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	if result.ArchiveURL != "" {
		c.Header("X-Archive-URL", result.ArchiveURL)
	}
	c.Data(http.StatusOK, result.ContentType, result.PDFData)
}

// DownloadPDF godoc
//
//	@ID				downloadDocumentPDF
//	@Summary		Download document PDF
//	@Description	Render a document to PDF via path parameters, for direct
//	browser downloads
//	@Tags			render
//	@Produce		application/pdf
//	@Param			doc_type	path		string	true	"Document type"	Enums(quotation, invoice)
//	@Param			id			path		string	true	"Document ID"	format(uuid)
//	@Success		200			{file}		binary	"PDF file"
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/render/{doc_type}/{id}/pdf [get]
func (h *RenderHandler) DownloadPDF(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	result, err := h.renderService.GeneratePDF(c.Request.Context(), printingapp.GeneratePDFRequest{
		DocumentType: c.Param("doc_type"),
		DocumentID:   documentID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.PDFData)
}

// =============================================================================
// Reference Data Endpoints
// =============================================================================

// GetDocumentTypes godoc
//
//	@ID				getRenderDocumentTypes
//	@Summary		Get renderable document types
//	@Tags			render-reference
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]printingapp.DocumentTypeResponse]
//	@Security		BearerAuth
//	@Router			/render/document-types [get]
func (h *RenderHandler) GetDocumentTypes(c *gin.Context) {
	h.Success(c, h.renderService.GetDocumentTypes())
}

// GetPaperSizes godoc
//
//	@ID				getRenderPaperSizes
//	@Summary		Get available paper sizes
//	@Tags			render-reference
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]printingapp.PaperSizeResponse]
//	@Security		BearerAuth
//	@Router			/render/paper-sizes [get]
func (h *RenderHandler) GetPaperSizes(c *gin.Context) {
	h.Success(c, h.renderService.GetPaperSizes())
}

// RenderRoutes creates the route group for rendering endpoints
func RenderRoutes(handler *RenderHandler, authMiddleware gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("render", "/render")
	group.Use(authMiddleware)

	// Template queries (read-only from the built-in store)
	group.GET("/templates", handler.ListTemplates)

	// Preview and PDF generation
	group.POST("/preview", handler.PreviewDocument)
	group.POST("/pdf", handler.GeneratePDF)
	group.GET("/:doc_type/:id/pdf", handler.DownloadPDF)

	// Reference data
	group.GET("/document-types", handler.GetDocumentTypes)
	group.GET("/paper-sizes", handler.GetPaperSizes)

	return group
}
