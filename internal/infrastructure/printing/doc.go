// Package printing provides infrastructure for rendering quotations and
// invoices to PDF.
//
// This package contains:
// - PDFRenderer interface for rendering HTML to PDF
// - ChromedpRenderer implementation using headless Chrome
// - WkhtmltopdfRenderer implementation using the wkhtmltopdf command-line tool
// - TemplateEngine for executing HTML document templates
// - TemplateStore serving the built-in devis and facture templates
// - PDFStorage interface for storing and managing generated PDF files
// - FileSystemStorage implementation for local file system storage
//
// Example usage:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{
//	    DefaultTimeout: 30 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	result, err := renderer.Render(ctx, &RenderRequest{
//	    HTML:        "<html>...</html>",
//	    PaperSize:   printing.PaperSizeA4,
//	    Orientation: printing.OrientationPortrait,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Generated PDF: %d bytes\n", len(result.PDFData))
package printing
