package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Extraction is the result of stripping markdown structure from a document:
// the prose that feeds the readability formulas, plus the byte accounting
// needed for technical-density ratios.
type Extraction struct {
	Prose          string
	CodeBlockChars int
	TableChars     int
	TotalChars     int
	Frontmatter    map[string]interface{}
	Warnings       []string
}

// Extract separates a markdown document into cleaned prose and structural
// content. Fenced code blocks, inline code spans, and pipe-table rows are
// removed from the prose and their lengths accumulated; heading markers,
// list bullets, blockquote markers, link URLs, and YAML frontmatter are
// stripped without counting toward the code/table totals.
//
// An unterminated code fence fails open: the remainder of the document is
// treated as code content and a warning is recorded.
func Extract(content []byte) *Extraction {
	e := &Extraction{TotalChars: len(content)}

	frontmatter, body := ParseFrontmatter(content)
	e.Frontmatter = frontmatter

	body = e.stripTables(body)

	md := goldmark.New()
	reader := text.NewReader(body)
	doc := md.Parser().Parse(reader)

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			if entering {
				e.CodeBlockChars += blockLen(n)
				return ast.WalkSkipChildren, nil
			}
		case *ast.CodeBlock:
			if entering {
				e.CodeBlockChars += blockLen(n)
				return ast.WalkSkipChildren, nil
			}
		case *ast.CodeSpan:
			if entering {
				e.CodeBlockChars += inlineLen(n)
				return ast.WalkSkipChildren, nil
			}
		case *ast.HTMLBlock, *ast.RawHTML:
			if entering {
				return ast.WalkSkipChildren, nil
			}
		case *ast.AutoLink:
			if entering {
				sb.Write(node.Label(body))
			}
		case *ast.Text:
			if entering {
				sb.Write(node.Segment.Value(body))
				if node.SoftLineBreak() || node.HardLineBreak() {
					sb.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				sb.Write(node.Value)
			}
		default:
			// Block boundaries terminate prose runs so sentences from
			// adjacent paragraphs and headings never merge.
			if !entering && n.Type() == ast.TypeBlock {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})

	e.Prose = strings.TrimSpace(sb.String())
	return e
}

// stripTables removes pipe-delimited table rows before markdown parsing,
// accumulating their length into TableChars. Rows inside code fences are
// left alone. The same pass detects an unterminated fence.
func (e *Extraction) stripTables(body []byte) []byte {
	lines := strings.Split(string(body), "\n")
	kept := make([]string, 0, len(lines))

	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			kept = append(kept, line)
			continue
		}
		if !inFence && strings.HasPrefix(trimmed, "|") {
			e.TableChars += len(line)
			continue
		}
		kept = append(kept, line)
	}

	if inFence {
		e.Warnings = append(e.Warnings, "unterminated code fence: remaining content treated as code")
	}

	return []byte(strings.Join(kept, "\n"))
}

func blockLen(n ast.Node) int {
	total := 0
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		total += seg.Len()
	}
	return total
}

func inlineLen(n ast.Node) int {
	total := 0
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			total += t.Segment.Len()
		}
	}
	return total
}

// ParseFrontmatter extracts a YAML frontmatter block between --- delimiters.
// Returns the parsed frontmatter and the remaining content without it.
// Malformed YAML is ignored and the content returned untouched; the claims
// inside frontmatter are advisory only.
func ParseFrontmatter(content []byte) (map[string]interface{}, []byte) {
	s := string(content)

	if !strings.HasPrefix(s, "---") {
		return nil, content
	}

	rest := s[3:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		return nil, content
	}

	var frontmatter map[string]interface{}
	if err := yaml.Unmarshal([]byte(rest[:endIdx]), &frontmatter); err != nil {
		return nil, content
	}

	remaining := rest[endIdx+4:]
	remaining = strings.TrimPrefix(remaining, "\n")

	return frontmatter, []byte(remaining)
}
