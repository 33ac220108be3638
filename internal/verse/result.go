package verse

import (
	"errors"
	"fmt"
	"strings"

	"derrclan.com/ayah/internal/alquran"
)

var ErrMissingField = errors.New("missing field")

// Text is one edition's rendering of a verse.
type Text struct {
	Text          string
	NumberInSurah int
	Edition       string
	EditionName   string
}

// Result is a fetched verse ready for formatting.
type Result struct {
	Reference Reference

	SurahName        string // Arabic
	SurahEnglishName string
	Juz              int
	Page             int

	Arabic      *Text
	Translation *Text
}

// Decode builds a Result from the payload for mode. Texts the mode does not
// ask for are ignored even when present.
func Decode(ref Reference, payload alquran.Payload, mode Mode) (*Result, error) {
	result := &Result{Reference: ref}

	if mode.WantsArabic() {
		text, meta, err := decodeText(payload.Arabic, "Arabic text")
		if err != nil {
			return nil, err
		}
		result.Arabic = text
		result.setLocation(meta)
	}

	if mode.WantsTranslation() {
		text, meta, err := decodeText(payload.Translation, "translation text")
		if err != nil {
			return nil, err
		}
		text.Text = alquran.PlainText(text.Text)
		if text.Text == "" {
			return nil, fmt.Errorf("%w: translation text is empty once markup is removed", ErrMissingField)
		}
		result.Translation = text
		if result.SurahEnglishName == "" {
			result.setLocation(meta)
		}
	}

	return result, nil
}

func decodeText(body []byte, field string) (*Text, *alquran.Ayah, error) {
	if len(body) == 0 {
		return nil, nil, fmt.Errorf("%w: %s was not returned", ErrMissingField, field)
	}

	ayah, err := alquran.ParseAyah(body)
	if err != nil {
		return nil, nil, err
	}

	text := strings.TrimSpace(strings.TrimPrefix(ayah.Text, "\ufeff"))
	if text == "" {
		return nil, nil, fmt.Errorf("%w: response has no %s", ErrMissingField, field)
	}

	return &Text{
		Text:          text,
		NumberInSurah: ayah.NumberInSurah,
		Edition:       ayah.Edition.Identifier,
		EditionName:   ayah.Edition.EnglishName,
	}, ayah, nil
}

func (r *Result) setLocation(a *alquran.Ayah) {
	r.SurahName = a.Surah.Name
	r.SurahEnglishName = a.Surah.EnglishName
	r.Juz = a.Juz
	r.Page = a.Page
}
