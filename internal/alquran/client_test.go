package alquran

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"derrclan.com/ayah/internal/testutil"
)

func testClient(baseURL string, retries int) *Client {
	return NewClient(baseURL,
		WithTimeout(2*time.Second),
		WithRetries(retries, time.Millisecond),
		WithLogger(testutil.NewTestLogger()),
	)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(DefaultBaseURL)

	if c.httpClient.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", c.httpClient.Timeout, DefaultTimeout)
	}
	if c.retries != DefaultRetries {
		t.Errorf("retries = %d, want %d", c.retries, DefaultRetries)
	}
	if c.retryDelay != DefaultRetryDelay {
		t.Errorf("retry delay = %v, want %v", c.retryDelay, DefaultRetryDelay)
	}
}

func TestFetchAyah_Headers(t *testing.T) {
	var gotUA, gotAccept string
	hc := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			gotUA = r.Header.Get("User-Agent")
			gotAccept = r.Header.Get("Accept")
			return http.DefaultTransport.RoundTrip(r)
		}),
	}
	api := testutil.NewFakeAPI(t)
	api.Handle("/ayah/2:255", testutil.Response{Body: testutil.AyahJSON(testutil.ArabicAyatAlKursi)})

	c := NewClient(api.URL(), WithHTTPClient(hc), WithLogger(testutil.NewTestLogger()))
	if _, err := c.FetchAyah(context.Background(), "2:255", ""); err != nil {
		t.Fatalf("FetchAyah() error = %v", err)
	}
	if gotUA != "ayah/1.0" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "ayah/1.0")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestFetchAyah_Arabic(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	want := testutil.AyahJSON(testutil.ArabicAyatAlKursi)
	api.Handle("/ayah/2:255", testutil.Response{Body: want})

	got, err := testClient(api.URL(), 3).FetchAyah(context.Background(), "2:255", "")
	if err != nil {
		t.Fatalf("FetchAyah() error = %v", err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	if n := api.Calls("/ayah/2:255"); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestFetchAyah_Edition(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/ayah/2:255/en.sahih", testutil.Response{Body: testutil.AyahJSON(testutil.SahihAyatAlKursi)})

	body, err := testClient(api.URL(), 0).FetchAyah(context.Background(), "2:255", "en.sahih")
	if err != nil {
		t.Fatalf("FetchAyah() error = %v", err)
	}
	ayah, err := ParseAyah(body)
	if err != nil {
		t.Fatalf("ParseAyah() error = %v", err)
	}
	if ayah.Edition.Identifier != "en.sahih" {
		t.Errorf("edition = %q, want en.sahih", ayah.Edition.Identifier)
	}
}

func TestFetchAyah_Retries(t *testing.T) {
	ok := testutil.Response{Body: testutil.AyahJSON(testutil.ArabicAyatAlKursi)}
	unavailable := testutil.Response{Status: http.StatusServiceUnavailable, Body: []byte("down")}
	notFound := testutil.Response{Status: http.StatusNotFound, Body: testutil.ErrorJSON(404, "Not Found", "Not found")}
	tooMany := testutil.Response{Status: http.StatusTooManyRequests}

	tests := []struct {
		name      string
		responses []testutil.Response
		retries   int
		wantErr   error
		wantCode  int
		wantCalls int
	}{
		{
			name:      "recovers after server errors",
			responses: []testutil.Response{unavailable, unavailable, ok},
			retries:   3,
			wantCalls: 3,
		},
		{
			name:      "server errors exhaust retries",
			responses: []testutil.Response{unavailable},
			retries:   2,
			wantErr:   ErrHTTP,
			wantCode:  http.StatusServiceUnavailable,
			wantCalls: 3,
		},
		{
			name:      "not found is not retried",
			responses: []testutil.Response{notFound, ok},
			retries:   3,
			wantErr:   ErrHTTP,
			wantCode:  http.StatusNotFound,
			wantCalls: 1,
		},
		{
			name:      "too many requests is not retried",
			responses: []testutil.Response{tooMany, ok},
			retries:   3,
			wantErr:   ErrHTTP,
			wantCode:  http.StatusTooManyRequests,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := testutil.NewFakeAPI(t)
			api.Handle("/ayah/2:255", tt.responses...)

			_, err := testClient(api.URL(), tt.retries).FetchAyah(context.Background(), "2:255", "")
			if tt.wantErr == nil && err != nil {
				t.Fatalf("FetchAyah() error = %v", err)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FetchAyah() error = %v, want %v", err, tt.wantErr)
				}
				var httpErr *HTTPError
				if !errors.As(err, &httpErr) || httpErr.StatusCode != tt.wantCode {
					t.Errorf("FetchAyah() error = %v, want status %d", err, tt.wantCode)
				}
			}
			if n := api.Calls("/ayah/2:255"); n != tt.wantCalls {
				t.Errorf("calls = %d, want %d", n, tt.wantCalls)
			}
		})
	}
}

func TestFetchAyah_NetworkErrorAfterAllAttempts(t *testing.T) {
	// Grab a free port and close it so every dial is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	attempts := 0
	hc := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			attempts++
			return http.DefaultTransport.RoundTrip(r)
		}),
	}
	c := NewClient("http://"+addr+"/v1",
		WithHTTPClient(hc),
		WithRetries(3, time.Millisecond),
		WithLogger(testutil.NewTestLogger()),
	)

	body, err := c.FetchAyah(context.Background(), "1:1", "")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("FetchAyah() error = %v, want ErrNetwork", err)
	}
	if body != nil {
		t.Errorf("FetchAyah() body = %q, want nil", body)
	}
	if attempts != 4 {
		t.Errorf("attempts = %d, want 4", attempts)
	}
}

func TestFetchAyah_MalformedBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "not json", body: "<html>oops</html>", wantErr: ErrMalformedResponse},
		{name: "no data", body: `{"code":200,"status":"OK"}`, wantErr: ErrMalformedResponse},
		{name: "envelope error", body: `{"code":400,"status":"Bad Request","data":"Please specify an Ayah number"}`, wantErr: ErrHTTP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := testutil.NewFakeAPI(t)
			api.Handle("/ayah/1:1", testutil.Response{Body: []byte(tt.body)})

			_, err := testClient(api.URL(), 3).FetchAyah(context.Background(), "1:1", "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FetchAyah() error = %v, want %v", err, tt.wantErr)
			}
			if n := api.Calls("/ayah/1:1"); n != 1 {
				t.Errorf("calls = %d, want 1", n)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	arabic := testutil.AyahJSON(testutil.ArabicAyatAlKursi)
	sahih := testutil.AyahJSON(testutil.SahihAyatAlKursi)

	tests := []struct {
		name string
		req  Request
		want Payload
	}{
		{
			name: "both",
			req:  Request{Key: "2:255", ArabicEdition: DefaultArabicEdition, TranslationEdition: "en.sahih"},
			want: Payload{Arabic: arabic, Translation: sahih},
		},
		{
			name: "arabic only",
			req:  Request{Key: "2:255", ArabicEdition: DefaultArabicEdition},
			want: Payload{Arabic: arabic},
		},
		{
			name: "translation only",
			req:  Request{Key: "2:255", TranslationEdition: "en.sahih"},
			want: Payload{Translation: sahih},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := testutil.NewFakeAPI(t)
			api.Handle("/ayah/2:255", testutil.Response{Body: arabic})
			api.Handle("/ayah/2:255/en.sahih", testutil.Response{Body: sahih})

			got, err := testClient(api.URL(), 0).Fetch(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Fetch() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetch_TranslationFailureDiscardsArabic(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/ayah/2:255", testutil.Response{Body: testutil.AyahJSON(testutil.ArabicAyatAlKursi)})

	got, err := testClient(api.URL(), 0).Fetch(context.Background(), Request{
		Key:                "2:255",
		ArabicEdition:      DefaultArabicEdition,
		TranslationEdition: "en.missing",
	})
	if !errors.Is(err, ErrHTTP) {
		t.Fatalf("Fetch() error = %v, want ErrHTTP", err)
	}
	if diff := cmp.Diff(Payload{}, got); diff != "" {
		t.Errorf("Fetch() returned partial payload:\n%s", diff)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
