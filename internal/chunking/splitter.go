package chunking

import (
	"fmt"
	"regexp"
	"strings"
)

var paragraphBreak = regexp.MustCompile(`\n[ \t\r]*\n`)

// Split greedily packs paragraphs into chunks of at most targetWords words.
// Boundaries only fall between paragraphs, so a single paragraph larger than
// the target becomes one oversized chunk. Chunks are titled "{titlePrefix} {n}".
func Split(text string, targetWords int, titlePrefix string) []Chunk {
	if targetWords <= 0 {
		targetWords = DefaultTargetWords
	}

	var (
		chunks       []Chunk
		current      []string
		currentWords int
	)

	flush := func() {
		if len(current) == 0 {
			return
		}
		title := fmt.Sprintf("%s %d", titlePrefix, len(chunks)+1)
		chunks = append(chunks, Chunk{
			Title:     title,
			Content:   strings.Join(current, "\n\n"),
			WordCount: currentWords,
		})
		current = nil
		currentWords = 0
	}

	for _, para := range paragraphs(text) {
		words := CountWords(para)
		if currentWords+words > targetWords && currentWords > 0 {
			flush()
		}
		current = append(current, para)
		currentWords += words
	}
	flush()

	return chunks
}

func paragraphs(text string) []string {
	raw := paragraphBreak.Split(text, -1)
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
