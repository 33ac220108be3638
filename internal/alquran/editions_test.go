package alquran

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveEdition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "alias", input: "sahih", want: "en.sahih"},
		{name: "alias any case", input: " Pickthall ", want: "en.pickthall"},
		{name: "raw identifier", input: "en.hilali", want: "en.hilali"},
		{name: "other language", input: "ur.jalandhry", want: "ur.jalandhry"},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown alias", input: "kjv", wantErr: true},
		{name: "path injection", input: "../surah/1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveEdition(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownEdition) {
					t.Fatalf("ResolveEdition(%q) error = %v, want ErrUnknownEdition", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveEdition(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ResolveEdition(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTranslationNames(t *testing.T) {
	want := []string{"asad", "clearquran", "hilali", "pickthall", "sahih", "shakir", "wahiduddin", "yusufali"}
	if diff := cmp.Diff(want, TranslationNames()); diff != "" {
		t.Errorf("TranslationNames() mismatch (-want +got):\n%s", diff)
	}
}
