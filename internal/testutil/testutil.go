package testutil

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// AyahFixture is the subset of an /ayah response the tests care about.
type AyahFixture struct {
	Chapter            int
	Verse              int
	Text               string
	SurahName          string
	SurahEnglishName   string
	Edition            string
	EditionEnglishName string
	Juz                int
	Page               int
}

// Ayat al-Kursi in the default Arabic edition and in Sahih International.
var (
	ArabicAyatAlKursi = AyahFixture{
		Chapter:            2,
		Verse:              255,
		Text:               "اللَّهُ لَا إِلَٰهَ إِلَّا هُوَ الْحَيُّ الْقَيُّومُ",
		SurahName:          "سُورَةُ البَقَرَةِ",
		SurahEnglishName:   "Al-Baqara",
		Edition:            "quran-uthmani",
		EditionEnglishName: "Uthmani",
		Juz:                3,
		Page:               42,
	}

	SahihAyatAlKursi = AyahFixture{
		Chapter:            2,
		Verse:              255,
		Text:               "Allah - there is no deity except Him, the Ever-Living, the Sustainer of [all] existence.",
		SurahName:          "سُورَةُ البَقَرَةِ",
		SurahEnglishName:   "Al-Baqara",
		Edition:            "en.sahih",
		EditionEnglishName: "Saheeh International",
		Juz:                3,
		Page:               42,
	}
)

// AyahJSON renders f as a successful AlQuran.cloud /ayah response body.
func AyahJSON(f AyahFixture) []byte {
	body := map[string]any{
		"code":   200,
		"status": "OK",
		"data": map[string]any{
			"number":        0,
			"text":          f.Text,
			"numberInSurah": f.Verse,
			"juz":           f.Juz,
			"page":          f.Page,
			"surah": map[string]any{
				"number":      f.Chapter,
				"name":        f.SurahName,
				"englishName": f.SurahEnglishName,
			},
			"edition": map[string]any{
				"identifier":  f.Edition,
				"englishName": f.EditionEnglishName,
			},
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		panic(fmt.Sprintf("testutil: failed to marshal fixture: %v", err))
	}
	return b
}

// ErrorJSON renders the body AlQuran.cloud sends alongside an error status.
func ErrorJSON(code int, status, message string) []byte {
	b, _ := json.Marshal(map[string]any{
		"code":   code,
		"status": status,
		"data":   message,
	})
	return b
}

// Response is one canned reply of a FakeAPI route.
type Response struct {
	Status int
	Body   []byte
}

// FakeAPI stands in for the AlQuran.cloud API. Each path replies with its
// responses in order and keeps repeating the last one.
type FakeAPI struct {
	Server *httptest.Server

	mu     sync.Mutex
	routes map[string][]Response
	calls  map[string]int
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends.
// Unrouted paths get a 404 envelope.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		routes: make(map[string][]Response),
		calls:  make(map[string]int),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL to hand to a client.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// Handle routes path to the given responses.
func (f *FakeAPI) Handle(path string, responses ...Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = responses
}

// Calls returns how many requests path has received.
func (f *FakeAPI) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	n := f.calls[r.URL.Path]
	f.calls[r.URL.Path] = n + 1
	responses := f.routes[r.URL.Path]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if len(responses) == 0 {
		w.WriteHeader(http.StatusNotFound)
		w.Write(ErrorJSON(http.StatusNotFound, "Not Found", "Not found"))
		return
	}

	resp := responses[min(n, len(responses)-1)]
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	w.Write(resp.Body)
}

// NewTestLogger returns a logger that discards everything.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
