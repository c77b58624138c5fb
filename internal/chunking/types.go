// Package chunking turns extracted document text into ordered, size-bounded chunks
// that are adapted one at a time.
package chunking

import "strings"

const (
	// DefaultTargetWords is the chunk budget used when the caller passes a non-positive target.
	DefaultTargetWords = 1500
	// MinChunkWords is the noise filter: chunks with this many words or fewer are dropped.
	MinChunkWords = 50
	// OversizeMultiplier bounds a detected chapter before it is re-split by size.
	OversizeMultiplier = 1.5
)

// Chunk is a bounded span of document text in original document order.
type Chunk struct {
	Title     string
	Content   string
	WordCount int
}

// CountWords counts whitespace-delimited tokens.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

func newChunk(title, content string) Chunk {
	return Chunk{Title: title, Content: content, WordCount: CountWords(content)}
}
