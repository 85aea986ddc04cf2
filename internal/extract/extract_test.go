package extract

import (
	"strings"
	"testing"
)

func TestExtractProse(t *testing.T) {
	input := "# Title\n\nSome prose here.\n\n> A quoted thought.\n\n- item one\n- item two\n"
	e := Extract([]byte(input))

	for _, want := range []string{"Title", "Some prose here.", "A quoted thought.", "item one", "item two"} {
		if !strings.Contains(e.Prose, want) {
			t.Errorf("prose missing %q, got %q", want, e.Prose)
		}
	}
	if strings.Contains(e.Prose, "#") || strings.Contains(e.Prose, ">") || strings.Contains(e.Prose, "- ") {
		t.Errorf("structural markers leaked into prose: %q", e.Prose)
	}
	if e.TotalChars != len(input) {
		t.Errorf("TotalChars = %d, want %d", e.TotalChars, len(input))
	}
	if e.CodeBlockChars != 0 || e.TableChars != 0 {
		t.Errorf("unexpected structural chars: code=%d table=%d", e.CodeBlockChars, e.TableChars)
	}
}

func TestExtractFencedCode(t *testing.T) {
	input := "Before.\n\n```go\nfunc main() {}\n```\n\nAfter.\n"
	e := Extract([]byte(input))

	if strings.Contains(e.Prose, "func main") {
		t.Errorf("code leaked into prose: %q", e.Prose)
	}
	want := len("func main() {}\n")
	if e.CodeBlockChars != want {
		t.Errorf("CodeBlockChars = %d, want %d", e.CodeBlockChars, want)
	}
	if !strings.Contains(e.Prose, "Before.") || !strings.Contains(e.Prose, "After.") {
		t.Errorf("surrounding prose lost: %q", e.Prose)
	}
}

func TestExtractInlineCode(t *testing.T) {
	input := "Use `go build` to compile.\n"
	e := Extract([]byte(input))

	if strings.Contains(e.Prose, "go build") {
		t.Errorf("inline code leaked into prose: %q", e.Prose)
	}
	if e.CodeBlockChars != len("go build") {
		t.Errorf("CodeBlockChars = %d, want %d", e.CodeBlockChars, len("go build"))
	}
}

func TestExtractTables(t *testing.T) {
	input := "| a | b |\n| - | - |\n| 1 | 2 |\n\nProse after table.\n"
	e := Extract([]byte(input))

	want := len("| a | b |") + len("| - | - |") + len("| 1 | 2 |")
	if e.TableChars != want {
		t.Errorf("TableChars = %d, want %d", e.TableChars, want)
	}
	if strings.Contains(e.Prose, "|") {
		t.Errorf("table rows leaked into prose: %q", e.Prose)
	}
	if !strings.Contains(e.Prose, "Prose after table.") {
		t.Errorf("prose lost: %q", e.Prose)
	}
}

func TestExtractTableInsideFenceIsCode(t *testing.T) {
	input := "```\n| not | a | table |\n```\n"
	e := Extract([]byte(input))

	if e.TableChars != 0 {
		t.Errorf("TableChars = %d, want 0 for piped rows inside a fence", e.TableChars)
	}
	if e.CodeBlockChars == 0 {
		t.Error("expected fence content counted as code")
	}
}

func TestExtractLinks(t *testing.T) {
	input := "See [the guide](https://example.com/guide) and ![alt text](img.png).\n"
	e := Extract([]byte(input))

	if !strings.Contains(e.Prose, "the guide") {
		t.Errorf("link text lost: %q", e.Prose)
	}
	if strings.Contains(e.Prose, "https://example.com/guide") || strings.Contains(e.Prose, "img.png") {
		t.Errorf("link URL leaked into prose: %q", e.Prose)
	}
}

func TestExtractFrontmatter(t *testing.T) {
	input := "---\ntitle: Guide\ndoc_type: reference\n---\n\nBody text here.\n"
	e := Extract([]byte(input))

	if e.Frontmatter == nil {
		t.Fatal("expected frontmatter")
	}
	if got := e.Frontmatter["doc_type"]; got != "reference" {
		t.Errorf("doc_type = %v, want reference", got)
	}
	if strings.Contains(e.Prose, "title:") {
		t.Errorf("frontmatter leaked into prose: %q", e.Prose)
	}
	if !strings.Contains(e.Prose, "Body text here.") {
		t.Errorf("body lost: %q", e.Prose)
	}
	if e.TotalChars != len(input) {
		t.Errorf("TotalChars = %d, want %d (frontmatter included)", e.TotalChars, len(input))
	}
}

func TestExtractUnterminatedFenceFailsOpen(t *testing.T) {
	input := "Prose.\n\n```\nabandoned code\nmore abandoned code\n"
	e := Extract([]byte(input))

	if len(e.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", e.Warnings)
	}
	if e.CodeBlockChars == 0 {
		t.Error("remainder after unterminated fence should count as code")
	}
	if strings.Contains(e.Prose, "abandoned") {
		t.Errorf("unterminated fence content leaked into prose: %q", e.Prose)
	}
	if !strings.Contains(e.Prose, "Prose.") {
		t.Errorf("prose before the fence lost: %q", e.Prose)
	}
}

func TestExtractEmpty(t *testing.T) {
	e := Extract(nil)
	if e.Prose != "" || e.TotalChars != 0 || e.CodeBlockChars != 0 || e.TableChars != 0 {
		t.Errorf("Extract(nil) = %+v, want zero value", e)
	}
}

func TestParseFrontmatterMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no opening delimiter", "title: x\n---\nbody"},
		{"unclosed", "---\ntitle: x\nbody"},
		{"invalid yaml", "---\n\t:bad\n---\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, rest := ParseFrontmatter([]byte(tt.input))
			if fm != nil {
				t.Errorf("expected nil frontmatter, got %v", fm)
			}
			if string(rest) != tt.input {
				t.Errorf("content should be untouched, got %q", rest)
			}
		})
	}
}
