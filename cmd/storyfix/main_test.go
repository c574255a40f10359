package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestRunAppliesPlacement(t *testing.T) {
	in := strings.NewReader("AAPL Price Action: old.\n\nLead.\nWhat To Know: x\nBody.")
	var out bytes.Buffer

	err := run(in, &out, options{
		alsoRead: "Also Read: more",
		readNext: "Read Next: next",
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, "Lead.\nWhat To Know: x\nAlso Read: more\nBody.\n\nAAPL Price Action: old.\n\nRead Next: next\n", out.String())
}

func TestRunLinksSource(t *testing.T) {
	var out bytes.Buffer

	err := run(strings.NewReader("Apple reported sales."), &out, options{sourceURL: "https://www.reuters.com/a"})

	assert.Equal(t, nil, err)
	assert.Equal(t, "Apple <a href=\"https://www.reuters.com/a\">reported</a> sales.\n", out.String())
}

func TestRunKeepsExistingWhenLinksDropped(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "existing.txt")
	os.WriteFile(existing, []byte(`Apple <a href="x">reported</a> sales.`), 0o644)

	var out bytes.Buffer
	err := run(strings.NewReader("Apple reported sales."), &out, options{existing: existing})

	assert.Equal(t, nil, err)
	assert.Equal(t, "Apple <a href=\"x\">reported</a> sales.\n", out.String())
}

func TestRunMissingExistingFile(t *testing.T) {
	var out bytes.Buffer
	err := run(strings.NewReader("x"), &out, options{existing: filepath.Join(t.TempDir(), "missing")})
	assert.NotEqual(t, nil, err)
}
