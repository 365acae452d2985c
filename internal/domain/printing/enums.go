package printing

// DocType represents the type of business document that can be rendered
type DocType string

const (
	DocTypeQuotation DocType = "QUOTATION"
	DocTypeInvoice   DocType = "INVOICE"
)

// IsValid checks if the DocType is a valid value
func (d DocType) IsValid() bool {
	switch d {
	case DocTypeQuotation, DocTypeInvoice:
		return true
	}
	return false
}

func (d DocType) String() string {
	return string(d)
}

// DisplayName returns the document title as printed on the PDF
func (d DocType) DisplayName() string {
	switch d {
	case DocTypeQuotation:
		return "Devis"
	case DocTypeInvoice:
		return "Facture"
	default:
		return string(d)
	}
}

// FilePrefix returns the slug used to build downloaded file names,
// e.g. "devis-42.pdf" for a quotation
func (d DocType) FilePrefix() string {
	switch d {
	case DocTypeQuotation:
		return "devis"
	case DocTypeInvoice:
		return "facture"
	default:
		return "document"
	}
}

// AllDocTypes returns all valid document types
func AllDocTypes() []DocType {
	return []DocType{
		DocTypeQuotation,
		DocTypeInvoice,
	}
}

// PaperSize represents the physical page format of the rendered PDF
type PaperSize string

const (
	PaperSizeA4 PaperSize = "A4"
	PaperSizeA5 PaperSize = "A5"
)

// IsValid checks if the PaperSize is a valid value
func (p PaperSize) IsValid() bool {
	switch p {
	case PaperSizeA4, PaperSizeA5:
		return true
	}
	return false
}

func (p PaperSize) String() string {
	return string(p)
}

// Dimensions returns the page width and height in millimeters for
// portrait orientation
func (p PaperSize) Dimensions() (width, height float64) {
	switch p {
	case PaperSizeA4:
		return 210, 297
	case PaperSizeA5:
		return 148, 210
	default:
		return 210, 297
	}
}

// AllPaperSizes returns every supported paper size
func AllPaperSizes() []PaperSize {
	return []PaperSize{PaperSizeA4, PaperSizeA5}
}

// Orientation represents the page orientation of the rendered PDF
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// IsValid checks if the Orientation is a valid value
func (o Orientation) IsValid() bool {
	switch o {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

func (o Orientation) String() string {
	return string(o)
}
