package chapters

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

//go:embed chapters.json
var chaptersJSON []byte

// Count is the number of chapters in the Quran.
const Count = 114

var (
	// Chapter table, indexed by chapter number - 1. Loaded on first use.
	table      []Chapter
	tableMutex sync.RWMutex
)

// Chapter describes one surah.
type Chapter struct {
	Number      int    `json:"number"`
	Verses      int    `json:"verses"`
	EnglishName string `json:"englishName"`
}

// Lookup returns the chapter with the given number (1-114).
// A number outside the table is not an error; it returns nil.
func Lookup(number int) (*Chapter, error) {
	all, err := All()
	if err != nil {
		return nil, err
	}
	if number < 1 || number > len(all) {
		return nil, nil
	}
	c := all[number-1]
	return &c, nil
}

// All returns every chapter in order.
func All() ([]Chapter, error) {
	tableMutex.RLock()
	loaded := table
	tableMutex.RUnlock()

	if loaded == nil {
		if err := loadTable(); err != nil {
			return nil, fmt.Errorf("failed to load chapter table: %w", err)
		}
		tableMutex.RLock()
		loaded = table
		tableMutex.RUnlock()
	}

	return loaded, nil
}

func loadTable() error {
	tableMutex.Lock()
	defer tableMutex.Unlock()
	if table != nil {
		return nil
	}

	var parsed []Chapter
	if err := json.Unmarshal(chaptersJSON, &parsed); err != nil {
		return fmt.Errorf("failed to unmarshal chapters.json: %w", err)
	}
	if len(parsed) != Count {
		return fmt.Errorf("chapters.json has %d chapters, want %d", len(parsed), Count)
	}
	for i, c := range parsed {
		if c.Number != i+1 {
			return fmt.Errorf("chapters.json entry %d has number %d", i, c.Number)
		}
	}

	table = parsed
	slog.Debug("loaded chapter table", "chapters", len(parsed))
	return nil
}
