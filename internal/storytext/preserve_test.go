package storytext

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestCountLinks(t *testing.T) {
	assert.Equal(t, 0, CountLinks("plain text"))
	assert.Equal(t, 2, CountLinks(`<a href="a">x</a> and <a href="b">y</a>`))
	assert.Equal(t, 0, CountLinks(`<a class="x" href="a">x</a>`))
}

func TestPreserveHyperlinks(t *testing.T) {
	existing := `Apple <a href="a">reported</a> sales. See <a href="b">more</a>.`

	tests := []struct {
		name      string
		candidate string
		want      string
	}{
		{
			name:      "candidate dropped a link",
			candidate: `Apple <a href="a">reported</a> record sales.`,
			want:      existing,
		},
		{
			name:      "candidate keeps link count",
			candidate: `Apple <a href="a">said</a> sales rose. <a href="c">Details</a>.`,
			want:      `Apple <a href="a">said</a> sales rose. <a href="c">Details</a>.`,
		},
		{
			name:      "candidate adds links",
			candidate: `<a href="a">x</a> <a href="b">y</a> <a href="c">z</a>`,
			want:      `<a href="a">x</a> <a href="b">y</a> <a href="c">z</a>`,
		},
		{
			name:      "empty candidate",
			candidate: "",
			want:      existing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreserveHyperlinks(existing, tt.candidate))
		})
	}
}
