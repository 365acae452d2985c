// Package billing provides the domain models for commercial documents.
//
// This package implements the billing bounded context, which is responsible for:
//   - Quotations and invoices with their line items
//   - Totals computation (subtotal, tax amount, grand total)
//   - Document lifecycle transitions (draft/sent/approved, unpaid/paid/overdue)
//   - Deriving invoices from approved quotations
//
// Key Aggregates:
//   - Quotation: A priced proposal sent to a client
//   - Invoice: A payable document, optionally derived from a quotation
//
// Value Objects:
//   - LineItem: A single billable line with quantity, unit price and tax rate
//   - Totals: The computed monetary totals of a document
//
// The billing domain integrates with:
//   - Directory domain: For client records and company profiles
//   - Printing domain: As the data source for rendered documents
package billing
