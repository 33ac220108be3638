package alquran

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// DefaultArabicEdition is the edition served by /ayah/{ref} without an edition segment.
const DefaultArabicEdition = "quran-uthmani"

// Translations maps the short names accepted on the command line to
// AlQuran.cloud edition identifiers.
var Translations = map[string]string{
	"sahih":      "en.sahih",
	"pickthall":  "en.pickthall",
	"yusufali":   "en.yusufali",
	"asad":       "en.asad",
	"hilali":     "en.hilali",
	"shakir":     "en.shakir",
	"wahiduddin": "en.wahiduddin",
	"clearquran": "en.clearquran",
}

// editionRegex matches raw identifiers like "en.sahih" or "ur.jalandhry".
var editionRegex = regexp.MustCompile(`^[a-z]{2,3}\.[a-z0-9-]+$`)

// TranslationNames returns the aliases in Translations, sorted.
func TranslationNames() []string {
	names := make([]string, 0, len(Translations))
	for name := range Translations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ResolveEdition turns an alias or an edition identifier into an identifier.
func ResolveEdition(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if edition, ok := Translations[name]; ok {
		return edition, nil
	}
	if editionRegex.MatchString(name) {
		return name, nil
	}
	return "", fmt.Errorf("%w %q, choose one of: %s", ErrUnknownEdition, name, strings.Join(TranslationNames(), ", "))
}
