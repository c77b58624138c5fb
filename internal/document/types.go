// Package document converts uploaded books into raw text for chunking.
package document

// Metadata describes a converted document.
type Metadata struct {
	Title     string
	Author    string
	PageCount int
	HasImages bool
}

// RawDocument is the immutable result of converting a book file.
type RawDocument struct {
	Text        string
	Metadata    Metadata
	IsImageOnly bool
}

// imageOnlyThreshold is the minimum trimmed text length, in characters, for a
// document to count as having extractable text.
const imageOnlyThreshold = 100
