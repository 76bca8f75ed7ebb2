package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Black Bean & Corn Tacos!!", "black-bean-corn-tacos"},
		{"inner runs and edges", "  --Multi   Space--  ", "multi-space"},
		{"already slug", "black-bean-corn-tacos", "black-bean-corn-tacos"},
		{"leading and trailing junk", "  Spicy!! Chicken  ", "spicy-chicken"},
		{"punctuation runs collapse", "Mac 'n' Cheese, Deluxe!!!", "mac-n-cheese-deluxe"},
		{"unicode stripped", "Crème Brûlée", "cr-me-br-l-e"},
		{"digits kept", "5-Minute Oats", "5-minute-oats"},
		{"all junk", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.input))
		})
	}
}
