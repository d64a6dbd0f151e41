// Package entity defines the core business entities for the domain layer.
package entity

// PageLineItem is one candidate expense line extracted from a scanned ledger
// page. All fields are untrusted model output: the date may be malformed, the
// amount may be a bad guess and the category guess may be empty.
type PageLineItem struct {
	Date              string
	ItemName          string
	Amount            int64
	SuggestedCategory string
}

// PageAnalysis is the structured result of analyzing one ledger page image.
// It is a value object owned by the vision service and is never persisted.
type PageAnalysis struct {
	Items      []PageLineItem
	Confidence float64
	RawText    string
}
