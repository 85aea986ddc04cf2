package textstat

import (
	"regexp"
	"strings"
	"unicode"
)

// Counts holds the token statistics derived from cleaned prose.
// All counts are non-negative; Sentences is at least 1 whenever Words > 0.
type Counts struct {
	Words     int
	Sentences int
	Syllables int
}

// wordPattern matches maximal runs of alphanumeric characters with
// internal hyphens or apostrophes ("well-known", "don't"). Punctuation-only
// tokens never match.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’\x2D][\p{L}\p{N}]+)*`)

// Analyze tokenizes cleaned prose into word, sentence, and syllable counts.
// If the text has words but no detected sentence boundary, the whole text
// counts as one sentence so downstream ratios stay defined.
func Analyze(prose string) Counts {
	words := Words(prose)

	c := Counts{
		Words:     len(words),
		Sentences: CountSentences(prose),
	}
	for _, w := range words {
		c.Syllables += CountSyllables(w)
	}

	if c.Words > 0 && c.Sentences == 0 {
		c.Sentences = 1
	}
	return c
}

// Words returns the word tokens of the text.
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// CountSentences counts sentence boundaries: a '.', '!', or '?' followed by
// whitespace and an uppercase letter, or by end of text. A period followed
// directly by a lowercase letter or digit (abbreviations, version numbers)
// is not a boundary, and terminators inside URL or path tokens are ignored.
func CountSentences(text string) int {
	runes := []rune(text)
	count := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		if inPathToken(runes, i) {
			continue
		}

		// Collapse runs of terminators ("?!", "...") into one boundary.
		j := i + 1
		for j < len(runes) && (runes[j] == '.' || runes[j] == '!' || runes[j] == '?') {
			j++
		}

		if j >= len(runes) {
			count++
			break
		}

		next := runes[j]
		if unicode.IsLower(next) || unicode.IsDigit(next) {
			i = j - 1
			continue
		}

		if unicode.IsSpace(next) {
			k := j
			for k < len(runes) && unicode.IsSpace(runes[k]) {
				k++
			}
			if k >= len(runes) || unicode.IsUpper(runes[k]) {
				count++
			}
		}

		i = j - 1
	}

	return count
}

// inPathToken reports whether position i falls inside a whitespace-delimited
// token that looks like a URL or filesystem path.
func inPathToken(runes []rune, i int) bool {
	start := i
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	end := i
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}
	token := string(runes[start:end])
	return strings.Contains(token, "://") || strings.Contains(token, "/")
}

// CountSyllables estimates syllables for a single word by counting maximal
// vowel-letter clusters, subtracting one for a silent trailing 'e' that is
// not part of a vowel cluster. Every word counts at least one syllable.
func CountSyllables(word string) int {
	w := strings.ToLower(word)

	clusters := 0
	prevVowel := false
	lastVowelAlone := false
	var lastLetter rune

	for _, r := range w {
		if !unicode.IsLetter(r) {
			prevVowel = false
			continue
		}
		v := isVowel(r)
		if v && !prevVowel {
			clusters++
			lastVowelAlone = true
		} else if v {
			lastVowelAlone = false
		}
		prevVowel = v
		lastLetter = r
	}

	// Silent e: "make" ends in an 'e' forming its own cluster after a
	// consonant, so the cluster does not voice. "see" keeps its cluster.
	if lastLetter == 'e' && lastVowelAlone && clusters > 1 {
		clusters--
	}

	if clusters < 1 {
		return 1
	}
	return clusters
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
