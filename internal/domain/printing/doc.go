// Package printing contains the document rendering bounded context.
// It defines the document types that can be rendered to PDF (quotations
// and invoices), page geometry value objects, and the render template
// describing how a document is laid out.
package printing
