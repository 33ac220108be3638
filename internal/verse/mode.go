package verse

import "fmt"

// Mode selects which texts are fetched and printed.
type Mode int

const (
	ModeBoth Mode = iota // Arabic followed by the translation
	ModeArabic
	ModeTranslation
)

// ParseMode maps the --format values to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "both":
		return ModeBoth, nil
	case "arabic":
		return ModeArabic, nil
	case "translation":
		return ModeTranslation, nil
	}
	return ModeBoth, fmt.Errorf("unknown format %q, choose one of: arabic, translation, both", s)
}

func (m Mode) String() string {
	switch m {
	case ModeArabic:
		return "arabic"
	case ModeTranslation:
		return "translation"
	}
	return "both"
}

// WantsArabic reports whether the Arabic text is part of the output.
func (m Mode) WantsArabic() bool {
	return m != ModeTranslation
}

// WantsTranslation reports whether a translation is part of the output.
func (m Mode) WantsTranslation() bool {
	return m != ModeArabic
}
