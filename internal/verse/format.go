package verse

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"derrclan.com/ayah/internal/chapters"
)

const (
	// rlm marks the start of right-to-left text so terminals lay it out correctly.
	rlm = "\u200f"

	ruleWidth = 60
)

// Format renders r as a plain-text block for mode. The Arabic text always
// comes before the translation.
func Format(r *Result, mode Mode) string {
	rule := strings.Repeat("=", ruleWidth)
	var lines []string

	// Header with verse reference
	englishName := r.SurahEnglishName
	if englishName == "" {
		englishName = "Unknown"
		if c, err := chapters.Lookup(r.Reference.Chapter); err == nil && c != nil {
			englishName = c.EnglishName
		}
	}
	arabicName := ""
	if r.SurahName != "" {
		arabicName = rlm + r.SurahName
	}
	lines = append(lines,
		rule,
		fmt.Sprintf("Verse: %s | Surah: %s (%s)", r.Reference, englishName, arabicName),
		rule,
	)

	if mode.WantsArabic() && r.Arabic != nil {
		lines = append(lines, "\n Arabic Text:", rlm+r.Arabic.Text)
		if r.Arabic.NumberInSurah > 0 {
			lines = append(lines, fmt.Sprintf("   └─ Verse %d in Surah", r.Arabic.NumberInSurah))
		}
	}

	if mode.WantsTranslation() && r.Translation != nil {
		editionName := r.Translation.EditionName
		if editionName == "" {
			editionName = "Unknown"
		}
		lines = append(lines,
			"\n English Translation:",
			norm.NFC.String(r.Translation.Text),
			fmt.Sprintf("   └─ Translation: %s", editionName),
		)
	}

	if r.Juz > 0 || r.Page > 0 {
		lines = append(lines, "\n Location:")
		if r.Juz > 0 {
			lines = append(lines, fmt.Sprintf("   └─ Juz (Para): %d", r.Juz))
		}
		if r.Page > 0 {
			lines = append(lines, fmt.Sprintf("   └─ Page: %d", r.Page))
		}
	}

	lines = append(lines, "\n"+rule)
	return strings.Join(lines, "\n") + "\n"
}
