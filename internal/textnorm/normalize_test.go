package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercases", "Malaria OUTBREAK", "malaria outbreak"},
		{"strips punctuation", "Cases: 14, deaths: 2!", "cases 14 deaths 2"},
		{"collapses whitespace", "  spreading \t rapidly \n in  the  north ", "spreading rapidly in the north"},
		{"keeps digits", "H5N1 confirmed in 3 provinces", "h5n1 confirmed in 3 provinces"},
		{"folds diacritics", "Choléra à São Paulo", "cholera a sao paulo"},
		{"punctuation only", "?!...", ""},
		{"hyphenated words split", "mosquito-borne illness", "mosquito borne illness"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Malaria outbreak, spreading rapidly!",
		"  MIXED   Case\twith\nweird   spacing  ",
		"déjà vu: fièvre élevée",
		"plain already normalized text",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}
