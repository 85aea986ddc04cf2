package doctype

import (
	"path/filepath"
	"strings"
)

// DocType represents the semantic purpose of a documentation file.
// The type selects which readability thresholds apply.
type DocType int

const (
	// DocTypeMain is general documentation content (guides, concepts, overviews)
	DocTypeMain DocType = iota
	// DocTypeReadme is entry-point content (README files)
	DocTypeReadme
	// DocTypeGettingStarted is onboarding content (quickstarts, tutorials)
	DocTypeGettingStarted
	// DocTypeReference is lookup content (API references, glossaries, changelogs)
	DocTypeReference
)

func (t DocType) String() string {
	switch t {
	case DocTypeMain:
		return "main"
	case DocTypeReadme:
		return "readme"
	case DocTypeGettingStarted:
		return "getting-started"
	case DocTypeReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Parse converts a type name (as found in config keys or frontmatter)
// to a DocType. The second return value is false for unknown names.
func Parse(s string) (DocType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "main":
		return DocTypeMain, true
	case "readme":
		return DocTypeReadme, true
	case "getting-started", "getting_started", "gettingstarted":
		return DocTypeGettingStarted, true
	case "reference":
		return DocTypeReference, true
	default:
		return DocTypeMain, false
	}
}

// All returns every document type, in threshold-table order.
func All() []DocType {
	return []DocType{DocTypeMain, DocTypeReadme, DocTypeGettingStarted, DocTypeReference}
}

// Infer maps a document path and optional frontmatter hint to a DocType.
// The frontmatter `doc_type` key wins over path heuristics so authors can
// override the inference. Pure function of its inputs; no filesystem access.
func Infer(path string, frontmatter map[string]interface{}) DocType {
	if frontmatter != nil {
		if hint, ok := frontmatter["doc_type"].(string); ok {
			if t, ok := Parse(hint); ok {
				return t
			}
		}
	}

	base := strings.ToLower(filepath.Base(path))
	name := strings.TrimSuffix(strings.TrimSuffix(base, ".markdown"), ".md")
	dir := strings.ToLower(filepath.ToSlash(filepath.Dir(path)))

	if strings.HasPrefix(name, "readme") {
		return DocTypeReadme
	}

	gettingStarted := []string{
		"getting-started", "getting_started", "gettingstarted",
		"quickstart", "quick-start", "tutorial", "installation", "install",
	}
	for _, gs := range gettingStarted {
		if strings.Contains(name, gs) || strings.Contains(dir, "/"+gs) || strings.HasPrefix(dir, gs) {
			return DocTypeGettingStarted
		}
	}

	reference := []string{"reference", "glossary", "changelog", "api"}
	for _, ref := range reference {
		if name == ref || strings.HasSuffix(name, "-"+ref) || strings.HasSuffix(name, "_"+ref) ||
			strings.Contains(dir, "/"+ref) || strings.HasPrefix(dir, ref) {
			return DocTypeReference
		}
	}

	return DocTypeMain
}
