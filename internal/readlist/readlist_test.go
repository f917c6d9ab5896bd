// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package readlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleList = `// Papers for the reading group
https://sci-hub.se/10.1000/xyz123

https://en.wikipedia.org/wiki/Cat !ignore
   https://github.com/user/repo/blob/main/file.txt
not-a-url
ftp://example.com/file.pdf
// end
`

func TestRead(t *testing.T) {
	list, err := Read(strings.NewReader(sampleList), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://sci-hub.se/10.1000/xyz123",
		"https://github.com/user/repo/blob/main/file.txt",
	}, list.URLs)
	assert.Equal(t, []string{"Papers for the reading group", "end"}, list.Comments)
	assert.Equal(t, 1, list.Ignored)
	assert.Equal(t, []string{"not-a-url", "ftp://example.com/file.pdf"}, list.Invalid)
}

func TestRead_NoIgnore(t *testing.T) {
	list, err := Read(strings.NewReader(sampleList), Options{NoIgnore: true, NoComments: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://sci-hub.se/10.1000/xyz123",
		"https://en.wikipedia.org/wiki/Cat",
		"https://github.com/user/repo/blob/main/file.txt",
	}, list.URLs)
	assert.Empty(t, list.Comments)
	assert.Zero(t, list.Ignored)
}

func TestRead_Empty(t *testing.T) {
	list, err := Read(strings.NewReader(""), Options{})
	require.NoError(t, err)
	assert.Empty(t, list.URLs)
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://example.com/a.pdf"))
	assert.NoError(t, ValidateURL("http://example.com"))
	assert.Error(t, ValidateURL("example.com/a.pdf"))
	assert.Error(t, ValidateURL("https://"))
	assert.Error(t, ValidateURL("mailto:a@b.c"))
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(txt, []byte("https://example.com\n"), 0o644))
	assert.NoError(t, ValidateFile(txt))

	md := filepath.Join(dir, "list.md")
	require.NoError(t, os.WriteFile(md, []byte(""), 0o644))
	assert.ErrorContains(t, ValidateFile(md), "is not a .txt")

	assert.ErrorContains(t, ValidateFile(filepath.Join(dir, "missing.txt")), "does not exist")

	sub := filepath.Join(dir, "sub.txt")
	require.NoError(t, os.Mkdir(sub, 0o755))
	assert.ErrorContains(t, ValidateFile(sub), "is a directory")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleList), 0o644))

	list, err := ReadFile(path, Options{})
	require.NoError(t, err)
	assert.Len(t, list.URLs, 2)

	_, err = ReadFile(filepath.Join(t.TempDir(), "nope.txt"), Options{})
	assert.Error(t, err)
}
