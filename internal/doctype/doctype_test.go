package doctype

import (
	"testing"
)

func TestDocTypeString(t *testing.T) {
	tests := []struct {
		docType  DocType
		expected string
	}{
		{DocTypeMain, "main"},
		{DocTypeReadme, "readme"},
		{DocTypeGettingStarted, "getting-started"},
		{DocTypeReference, "reference"},
		{DocType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.docType.String(); got != tt.expected {
				t.Errorf("DocType.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected DocType
		ok       bool
	}{
		{"main", DocTypeMain, true},
		{"Readme", DocTypeReadme, true},
		{"getting-started", DocTypeGettingStarted, true},
		{"getting_started", DocTypeGettingStarted, true},
		{"REFERENCE", DocTypeReference, true},
		{" reference ", DocTypeReference, true},
		{"bogus", DocTypeMain, false},
		{"", DocTypeMain, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("Parse(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestInfer(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected DocType
	}{
		{"readme at root", "README.md", DocTypeReadme},
		{"readme lowercase", "docs/readme.md", DocTypeReadme},
		{"readme with suffix", "readme-dev.md", DocTypeReadme},
		{"quickstart", "docs/quickstart.md", DocTypeGettingStarted},
		{"getting started file", "getting-started.md", DocTypeGettingStarted},
		{"tutorial dir", "docs/tutorial/first-steps.md", DocTypeGettingStarted},
		{"installation", "docs/installation.md", DocTypeGettingStarted},
		{"api reference", "docs/api-reference.md", DocTypeReference},
		{"reference dir", "docs/reference/types.md", DocTypeReference},
		{"glossary", "glossary.md", DocTypeReference},
		{"changelog", "CHANGELOG.md", DocTypeReference},
		{"api dir", "api/endpoints.md", DocTypeReference},
		{"plain guide", "docs/architecture.md", DocTypeMain},
		{"root doc", "CONTRIBUTING.md", DocTypeMain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Infer(tt.path, nil); got != tt.expected {
				t.Errorf("Infer(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestInferFrontmatterHint(t *testing.T) {
	fm := map[string]interface{}{"doc_type": "reference"}
	if got := Infer("docs/random.md", fm); got != DocTypeReference {
		t.Errorf("frontmatter hint should win, got %v", got)
	}

	// Invalid hints fall back to path heuristics
	bad := map[string]interface{}{"doc_type": "nonsense"}
	if got := Infer("README.md", bad); got != DocTypeReadme {
		t.Errorf("invalid hint should fall back to path inference, got %v", got)
	}
}
