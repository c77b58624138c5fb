package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// kerningSpace is the TJ displacement (in thousandths of an em) treated as a word gap.
const kerningSpace = -200

func readPDF(path string) (*RawDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	pages := make([]string, 0, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if text := pageText(ctx, pageNr); text != "" {
			pages = append(pages, text)
		}
	}

	return &RawDocument{
		Text: strings.Join(pages, "\n\n"),
		Metadata: Metadata{
			Title:     strings.TrimSpace(ctx.Title),
			Author:    strings.TrimSpace(ctx.Author),
			PageCount: ctx.PageCount,
			HasImages: hasImageStreams(ctx),
		},
	}, nil
}

func pageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return textFromContentStream(data)
}

func hasImageStreams(ctx *model.Context) bool {
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				return true
			}
		}
	}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}

// operand is a content stream operand: a string, a number, or a TJ array of both.
type operand struct {
	str   string
	isStr bool
	num   float64
	array []operand
}

// textFromContentStream pulls shown text out of a page content stream. Line
// structure is kept: positioning operators and text object ends start a new line,
// and a vertical move larger than two lines opens a paragraph break.
func textFromContentStream(data []byte) string {
	var (
		sb       strings.Builder
		operands []operand
		stack    [][]operand
	)
	newline := func() {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
	}
	var show func(ops []operand)
	show = func(ops []operand) {
		for _, o := range ops {
			switch {
			case o.isStr:
				sb.WriteString(o.str)
			case o.array != nil:
				show(o.array)
			case o.num <= kerningSpace:
				sb.WriteByte(' ')
			}
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case isPDFSpace(c):
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			raw, next := readLiteral(data, i)
			operands = append(operands, operand{str: decodePDFString(raw), isStr: true})
			i = next
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			// Inline dictionaries carry no text.
			i = skipDict(data, i)
		case c == '<':
			end := bytes.IndexByte(data[i:], '>')
			if end < 0 {
				i = len(data)
				continue
			}
			operands = append(operands, operand{str: decodeHexString(data[i+1 : i+end]), isStr: true})
			i += end + 1
		case c == '[':
			stack = append(stack, operands)
			operands = nil
			i++
		case c == ']':
			arr := operands
			if arr == nil {
				arr = []operand{}
			}
			if n := len(stack); n > 0 {
				operands = stack[n-1]
				stack = stack[:n-1]
			} else {
				operands = nil
			}
			operands = append(operands, operand{array: arr})
			i++
		default:
			j := i
			for j < len(data) && !isPDFSpace(data[j]) && !isPDFDelimiter(data[j]) {
				j++
			}
			if j == i {
				i++
				continue
			}
			tok := string(data[i:j])
			i = j
			if n, err := strconv.ParseFloat(tok, 64); err == nil {
				operands = append(operands, operand{num: n})
				continue
			}
			if strings.HasPrefix(tok, "/") {
				operands = append(operands, operand{})
				continue
			}
			switch tok {
			case "Tj", "TJ":
				show(operands)
			case "'", "\"":
				newline()
				show(operands)
			case "Td", "TD":
				newline()
				if n := len(operands); n >= 2 && operands[n-1].num < -24 {
					sb.WriteByte('\n')
				}
			case "T*", "ET", "Tm":
				newline()
			}
			operands = operands[:0]
		}
	}

	return normalizeLines(sb.String())
}

func isPDFSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == 0
}

func isPDFDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// readLiteral returns the raw bytes of the balanced string literal starting at
// data[start] == '(' and the index just past its closing parenthesis.
func readLiteral(data []byte, start int) ([]byte, int) {
	depth := 0
	for i := start; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return data[start+1 : i], i + 1
			}
		}
	}
	return data[start+1:], len(data)
}

func skipDict(data []byte, start int) int {
	depth := 0
	for i := start; i+1 < len(data); i++ {
		switch {
		case data[i] == '<' && data[i+1] == '<':
			depth++
			i++
		case data[i] == '>' && data[i+1] == '>':
			depth--
			i++
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(data)
}

func decodeHexString(hex []byte) string {
	var digits []byte
	for _, c := range hex {
		if !isPDFSpace(c) {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			return ""
		}
		out = append(out, byte(v))
	}
	return string(out)
}

func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] < '0' || raw[i] > '7' {
				sb.WriteByte(raw[i])
				continue
			}
			val := int(raw[i] - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\r]+`)
	extraBlankLines = regexp.MustCompile(`\n{3,}`)
)

// normalizeLines collapses runs of spaces, trims every line and keeps at most one
// empty line between paragraphs.
func normalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(horizontalSpace.ReplaceAllString(l, " "))
	}
	return strings.TrimSpace(extraBlankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}
