package verse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"derrclan.com/ayah/internal/chapters"
)

var (
	ErrInvalidFormat     = errors.New("invalid format")
	ErrChapterOutOfRange = errors.New("chapter out of range")
	ErrVerseOutOfRange   = errors.New("verse out of range")
)

// referenceRegex matches "chapter:verse", e.g. "2:255".
var referenceRegex = regexp.MustCompile(`^(\d+):(\d+)$`)

// Reference identifies a single verse.
type Reference struct {
	Chapter int
	Verse   int
}

// String renders the reference as "chapter:verse".
func (r Reference) String() string {
	return fmt.Sprintf("%d:%d", r.Chapter, r.Verse)
}

// ParseReference parses and validates a "chapter:verse" string. Verse bounds
// are checked against the embedded chapter table.
func ParseReference(s string) (Reference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Reference{}, fmt.Errorf("%w: input cannot be empty", ErrInvalidFormat)
	}

	m := referenceRegex.FindStringSubmatch(s)
	if m == nil {
		return Reference{}, fmt.Errorf("%w: %q, please use 'chapter:verse' (e.g. '2:255', '3:10')", ErrInvalidFormat, s)
	}

	// Digits that overflow an int are out of range rather than malformed.
	chapter, err := strconv.Atoi(m[1])
	if err != nil {
		chapter = -1
	}
	verse, err := strconv.Atoi(m[2])
	if err != nil {
		verse = -1
	}

	if chapter < 1 || chapter > chapters.Count {
		return Reference{}, fmt.Errorf("%w: chapter number must be between 1 and %d, got %s", ErrChapterOutOfRange, chapters.Count, m[1])
	}

	c, err := chapters.Lookup(chapter)
	if err != nil {
		return Reference{}, err
	}
	if c == nil {
		return Reference{}, fmt.Errorf("%w: unknown chapter %d", ErrChapterOutOfRange, chapter)
	}

	if verse < 1 || verse > c.Verses {
		return Reference{}, fmt.Errorf("%w: chapter %d has %d verses, verse number must be between 1 and %d, got %s",
			ErrVerseOutOfRange, chapter, c.Verses, c.Verses, m[2])
	}

	return Reference{Chapter: chapter, Verse: verse}, nil
}
