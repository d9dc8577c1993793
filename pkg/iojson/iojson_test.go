package iojson

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]int{"tokens": 3}))
	assert.Equal(t, "{\n  \"tokens\": 3\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, make(chan int)))
	assert.Empty(t, out.String())

	var e Error
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &e))
	assert.Equal(t, "error marshaling in iojson.Write", e.Message)
	assert.Contains(t, e.Data, "json_error")
}

func TestFileReader(t *testing.T) {
	type request struct {
		Text  string `json:"text"`
		Fuzzy bool   `json:"fuzzy"`
	}

	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"text":"aspirin","fuzzy":true}`), 0o644))

	var fr FileReader[request]
	fr.Set(path)

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, request{Text: "aspirin", Fuzzy: true}, got)
}

func TestFileReader_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

	var fr FileReader[map[string]any]
	fr.Set(path)

	_, err := fr.Read()
	assert.ErrorContains(t, err, "decode JSON")
}

func TestReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o644))

	got, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", got)

	_, err = ReadText(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "open file")
}

func TestReadText_Stdin(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	prev := stdin
	stdin = r
	t.Cleanup(func() { stdin = prev })

	_, err = w.WriteString("piped")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := ReadText("")
	require.NoError(t, err)
	assert.Equal(t, "piped", got)
}
