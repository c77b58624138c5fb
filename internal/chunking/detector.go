package chunking

import (
	"regexp"
	"strings"
)

// markerPatterns are tried in priority order against each trimmed line.
var markerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^#+\s+(?:chapter|kapitel)\s+\d+`),
	regexp.MustCompile(`(?i)^(?:chapter|kapitel)\s+\d+`),
	regexp.MustCompile(`(?i)^M{0,3}(?:CM|CD|D?C{0,3})(?:XC|XL|L?X{0,3})(?:IX|IV|V?I{0,3})\.?$`),
	regexp.MustCompile(`(?i)^(?:part|teil)\s+\d+`),
}

// Detect returns the indices of lines that start a new chapter.
// An empty result means the text carries no recognizable structure.
func Detect(lines []string) []int {
	var boundaries []int
	for i, line := range lines {
		if isMarker(strings.TrimSpace(line)) {
			boundaries = append(boundaries, i)
		}
	}
	return boundaries
}

func isMarker(line string) bool {
	// The numeral pattern also matches a bare "." since every group is optional.
	if strings.TrimSuffix(line, ".") == "" {
		return false
	}
	for _, p := range markerPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
