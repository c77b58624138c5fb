package chunking

import (
	"fmt"
	"strings"
	"testing"
)

// words returns n distinct filler words.
func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(w, " ")
}

func paras(count, wordsEach int) string {
	p := make([]string, count)
	for i := range p {
		p[i] = words(wordsEach)
	}
	return strings.Join(p, "\n\n")
}

func TestSplit_ThousandWordsIntoFiveParts(t *testing.T) {
	chunks := Split(paras(20, 50), 200, "Part")

	if len(chunks) != 5 {
		t.Fatalf("Split() returned %d chunks, want 5", len(chunks))
	}
	for i, c := range chunks {
		wantTitle := fmt.Sprintf("Part %d", i+1)
		if c.Title != wantTitle {
			t.Errorf("chunk %d title = %q, want %q", i, c.Title, wantTitle)
		}
		if c.WordCount > 200 {
			t.Errorf("chunk %d has %d words, want <= 200", i, c.WordCount)
		}
		if c.WordCount != CountWords(c.Content) {
			t.Errorf("chunk %d WordCount = %d, content has %d", i, c.WordCount, CountWords(c.Content))
		}
	}
}

func TestSplit_OversizedParagraphIsKeptWhole(t *testing.T) {
	text := words(30) + "\n\n" + words(500) + "\n\n" + words(30)
	chunks := Split(text, 100, "Part")

	if len(chunks) != 3 {
		t.Fatalf("Split() returned %d chunks, want 3", len(chunks))
	}
	if chunks[1].WordCount != 500 {
		t.Errorf("oversized chunk has %d words, want 500", chunks[1].WordCount)
	}
}

func TestSplit_BoundsUnlessSingleParagraphExceeds(t *testing.T) {
	text := strings.Join([]string{words(70), words(40), words(90), words(10), words(120), words(5)}, "\n\n")
	for _, c := range Split(text, 100, "Part") {
		if c.WordCount > 100 && strings.Contains(c.Content, "\n\n") {
			t.Errorf("chunk %q has %d words across several paragraphs", c.Title, c.WordCount)
		}
	}
}

func TestSplit_BoundariesFallOnParagraphs(t *testing.T) {
	text := "alpha beta\n\ngamma delta\n  \nepsilon zeta"
	chunks := Split(text, 2, "Section")

	want := []string{"alpha beta", "gamma delta", "epsilon zeta"}
	if len(chunks) != len(want) {
		t.Fatalf("Split() returned %d chunks, want %d", len(chunks), len(want))
	}
	for i, c := range chunks {
		if c.Content != want[i] {
			t.Errorf("chunk %d content = %q, want %q", i, c.Content, want[i])
		}
		if c.Title != fmt.Sprintf("Section %d", i+1) {
			t.Errorf("chunk %d title = %q", i, c.Title)
		}
	}
}

func TestSplit_Empty(t *testing.T) {
	if chunks := Split("  \n\n \n", 100, "Part"); len(chunks) != 0 {
		t.Errorf("Split() on blank text returned %d chunks, want 0", len(chunks))
	}
}

func TestSplit_NonPositiveTargetUsesDefault(t *testing.T) {
	chunks := Split(paras(4, 500), 0, "Part")
	if len(chunks) != 2 {
		t.Errorf("Split() with default target returned %d chunks, want 2", len(chunks))
	}
}
