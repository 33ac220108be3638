package alquran

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope is the wrapper every AlQuran.cloud response is sent in.
// Data is an object on success and a message string on failure.
type Envelope struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Surah is the chapter metadata attached to each ayah.
type Surah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
	RevelationType         string `json:"revelationType"`
}

// Edition describes the text set an ayah was served from.
type Edition struct {
	Identifier  string `json:"identifier"`
	Language    string `json:"language"`
	Name        string `json:"name"`
	EnglishName string `json:"englishName"`
	Format      string `json:"format"`
	Type        string `json:"type"`
	Direction   string `json:"direction"`
}

// Ayah is the "data" object of an /ayah response.
type Ayah struct {
	Number        int     `json:"number"`
	Text          string  `json:"text"`
	NumberInSurah int     `json:"numberInSurah"`
	Juz           int     `json:"juz"`
	Manzil        int     `json:"manzil"`
	Page          int     `json:"page"`
	Ruku          int     `json:"ruku"`
	HizbQuarter   int     `json:"hizbQuarter"`
	Surah         Surah   `json:"surah"`
	Edition       Edition `json:"edition"`
}

// ParseAyah decodes an /ayah response body. A non-200 envelope code is
// reported as an *HTTPError; anything that is not an envelope wrapping an
// ayah object is ErrMalformedResponse.
func ParseAyah(body []byte) (*Ayah, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrMalformedResponse, err)
	}

	if env.Code != http.StatusOK {
		if env.Code == 0 {
			return nil, fmt.Errorf("%w: response has no status code", ErrMalformedResponse)
		}
		return nil, &HTTPError{StatusCode: env.Code, Status: env.Status}
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("%w: response has no ayah data", ErrMalformedResponse)
	}

	var ayah Ayah
	if err := json.Unmarshal(data, &ayah); err != nil {
		return nil, fmt.Errorf("%w: failed to decode ayah: %w", ErrMalformedResponse, err)
	}

	return &ayah, nil
}
