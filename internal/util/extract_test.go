package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseWhitespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello  world", "hello world"},
		{"line\none\n\nline two", "line one line two"},
		{"\t tabs\tand   spaces \n", "tabs and spaces"},
		{"", ""},
		{"   ", ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, CollapseWhitespace(c.in))
	}
}

func TestExtractPDFTextMissingFile(t *testing.T) {
	_, err := ExtractPDFText(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
}

func TestExtractPDFTextNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a pdf"), 0o644))

	_, err := ExtractPDFText(path)
	require.Error(t, err)
}
