package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "case folded and punctuation stripped",
			text: "Loving #rust and #Go!",
			want: []string{"rust", "go"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "no hashtags",
			text: "just some plain text",
			want: []string{},
		},
		{
			name: "duplicates collapse after lowercasing",
			text: "#go #GO #Go",
			want: []string{"go"},
		},
		{
			name: "digits and underscore are word characters",
			text: "#tag_1 and #2024",
			want: []string{"tag_1", "2024"},
		},
		{
			name: "hyphen terminates a tag",
			text: "#tag-two",
			want: []string{"tag"},
		},
		{
			name: "bare hash is not a tag",
			text: "# nothing here",
			want: []string{},
		},
		{
			name: "first occurrence order",
			text: "#beta then #alpha then #beta again",
			want: []string{"beta", "alpha"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHashtags(tt.text))
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "go", NormalizeTag("go"))
	assert.Equal(t, "go", NormalizeTag("#Go"))
	assert.Equal(t, "go", NormalizeTag("  #GO  "))
}
