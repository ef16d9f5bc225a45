package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Mount Bromo Sunrise", "mount-bromo-sunrise"},
		{"Kawah Ijén — Blue Fire!", "kawah-ijen-blue-fire"},
		{"  3D/2N  Nusa Penida ", "3d-2n-nusa-penida"},
		{"Тур на Bali", "bali"},
		{"Тур", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_Truncates(t *testing.T) {
	got := Slugify(strings.Repeat("abc ", 40))
	assert.LessOrEqual(t, len(got), maxSlugLen)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestSlugFor(t *testing.T) {
	assert.Equal(t, "custom", slugFor("Custom", "Title"))
	assert.Equal(t, "title", slugFor("", "Title"))
	assert.Len(t, slugFor("", "Тур"), 8)
}
