package chunking

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	fallbackPrefix    = "Part"
	introductionTitle = "Introduction"
)

// Assembler combines chapter detection with size-based splitting.
type Assembler struct {
	targetWords int
	md          goldmark.Markdown
}

// NewAssembler creates an assembler with the given chunk budget.
// A non-positive budget falls back to DefaultTargetWords.
func NewAssembler(targetWords int) *Assembler {
	if targetWords <= 0 {
		targetWords = DefaultTargetWords
	}
	return &Assembler{targetWords: targetWords, md: goldmark.New()}
}

// TargetWords returns the chunk budget.
func (a *Assembler) TargetWords() int {
	return a.targetWords
}

// Assemble returns the ordered chunks for rawText. Every returned chunk has more than
// MinChunkWords words, unless the whole document is that short, in which case it is
// returned as a single chunk. Text without any words yields no chunks.
func (a *Assembler) Assemble(rawText string) []Chunk {
	rawText = strings.ReplaceAll(rawText, "\r\n", "\n")
	lines := strings.Split(rawText, "\n")
	boundaries := Detect(lines)

	var candidates []Chunk
	if len(boundaries) == 0 {
		candidates = Split(rawText, a.targetWords, fallbackPrefix)
	} else {
		candidates = a.assembleChapters(lines, boundaries)
	}

	chunks := make([]Chunk, 0, len(candidates))
	for _, c := range candidates {
		if c.WordCount > MinChunkWords {
			chunks = append(chunks, c)
		}
	}

	if len(chunks) == 0 {
		whole := strings.TrimSpace(rawText)
		if CountWords(whole) > 0 {
			chunks = append(chunks, newChunk(fallbackPrefix+" 1", whole))
		}
	}
	return chunks
}

func (a *Assembler) assembleChapters(lines []string, boundaries []int) []Chunk {
	var chunks []Chunk

	if preamble := strings.TrimSpace(strings.Join(lines[:boundaries[0]], "\n")); preamble != "" {
		chunks = append(chunks, a.boundSpan(introductionTitle, preamble)...)
	}

	for i, start := range boundaries {
		end := len(lines)
		if i+1 < len(boundaries) {
			end = boundaries[i+1]
		}

		title := a.plainTitle(lines[start])
		if title == "" {
			title = fmt.Sprintf("Chapter %d", i+1)
		}
		content := strings.TrimSpace(strings.Join(lines[start+1:end], "\n"))
		chunks = append(chunks, a.boundSpan(title, content)...)
	}
	return chunks
}

// boundSpan keeps a span as one chunk unless it exceeds the oversize threshold.
func (a *Assembler) boundSpan(title, content string) []Chunk {
	c := newChunk(title, content)
	if float64(c.WordCount) <= OversizeMultiplier*float64(a.targetWords) {
		return []Chunk{c}
	}
	return Split(content, a.targetWords, title+", Part")
}

// plainTitle renders a marker line (which may carry markdown such as "## Chapter 3: The *Storm*")
// as plain text.
func (a *Assembler) plainTitle(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	source := []byte(line)
	doc := a.md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	if title := strings.TrimSpace(b.String()); title != "" {
		return title
	}
	return line
}

// Assemble is a convenience wrapper around NewAssembler(targetWords).Assemble(rawText).
func Assemble(rawText string, targetWords int) []Chunk {
	return NewAssembler(targetWords).Assemble(rawText)
}
