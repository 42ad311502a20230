package services

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/carebridge/backend/internal/domain/entities"
)

// TranslationPair maps a source term to its translation
type TranslationPair struct {
	Term        string `yaml:"term" json:"term"`
	Translation string `yaml:"translation" json:"translation"`
}

// Dictionary holds, per "{source}-{target}" key, the term pairs applied in order
type Dictionary map[string][]TranslationPair

// DefaultDictionary returns the built-in English to Spanish medical terms
func DefaultDictionary() Dictionary {
	return Dictionary{
		"en-es": {
			{Term: "chest pain", Translation: "dolor en el pecho"},
			{Term: "headache", Translation: "dolor de cabeza"},
			{Term: "fever", Translation: "fiebre"},
			{Term: "nausea", Translation: "náuseas"},
			{Term: "dizzy", Translation: "mareo"},
			{Term: "sharp pain", Translation: "dolor agudo"},
			{Term: "dull pain", Translation: "dolor sordo"},
		},
	}
}

// LoadDictionary reads a YAML dictionary whose top-level keys are language
// pairs and whose values are ordered lists of term/translation entries.
func LoadDictionary(path string) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", path, err)
	}
	return ParseDictionary(data)
}

// ParseDictionary decodes a YAML dictionary
func ParseDictionary(data []byte) (Dictionary, error) {
	var dict Dictionary
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary: %w", err)
	}
	for pair, entries := range dict {
		if !strings.Contains(pair, "-") {
			return nil, fmt.Errorf("invalid language pair %q", pair)
		}
		for i, entry := range entries {
			if entry.Term == "" {
				return nil, fmt.Errorf("%s entry %d: empty term", pair, i)
			}
		}
	}
	return dict, nil
}

type compiledPair struct {
	pattern     *regexp.Regexp
	translation string
}

// TranslationService substitutes known medical terms between languages
type TranslationService struct {
	pairs map[string][]compiledPair
}

// NewTranslationService compiles dict for substitution
func NewTranslationService(dict Dictionary) *TranslationService {
	pairs := make(map[string][]compiledPair, len(dict))
	for key, entries := range dict {
		compiled := make([]compiledPair, 0, len(entries))
		for _, entry := range entries {
			compiled = append(compiled, compiledPair{
				pattern:     regexp.MustCompile("(?i)" + regexp.QuoteMeta(entry.Term)),
				translation: entry.Translation,
			})
		}
		pairs[key] = compiled
	}
	return &TranslationService{pairs: pairs}
}

// Translate replaces every case-insensitive occurrence of each dictionary
// term, in dictionary order. Terms are literal text. Text for an unknown
// language pair is returned unchanged.
func (s *TranslationService) Translate(text, source, target string) string {
	pairs, ok := s.pairs[entities.LanguagePair(source, target)]
	if !ok {
		return text
	}

	translated := text
	for _, p := range pairs {
		translated = p.pattern.ReplaceAllLiteralString(translated, p.translation)
	}
	return translated
}

// Supports reports whether a dictionary exists for the language pair
func (s *TranslationService) Supports(source, target string) bool {
	_, ok := s.pairs[entities.LanguagePair(source, target)]
	return ok
}
