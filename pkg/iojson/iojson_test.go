package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLine(&buf, item{Name: "a", Score: 1.5}))
	require.NoError(t, WriteLine(&buf, item{Name: "b"}))

	assert.Equal(t, "{\"name\":\"a\",\"score\":1.5}\n{\"name\":\"b\",\"score\":0}\n", buf.String())
}

func TestWriteLine_MarshalError(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, WriteLine(&buf, make(chan int)))
	assert.Empty(t, buf.String())
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, []item{{Name: "a"}}))
	assert.Contains(t, out.String(), "\n  {\n")

	out.Reset()
	require.NoError(t, WriteWith(&out, &errOut, make(chan int)))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}

func TestFileReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"a","score":0.5}]`), 0o644))

	fr := &FileReader[item]{fileFlagValue: path}
	assert.True(t, fr.Provided())

	got, err := fr.ReadStream()
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "a", Score: 0.5}}, got)
}

func TestFileReader_Stdin(t *testing.T) {
	fr := &FileReader[item]{stdin: strings.NewReader(`[{"name":"piped"}]`)}
	assert.True(t, fr.Provided())

	got, err := fr.ReadStream()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "piped", got[0].Name)
}

func TestFileReader_BadJSON(t *testing.T) {
	fr := &FileReader[item]{stdin: strings.NewReader(`{nope`)}

	_, err := fr.ReadStream()
	require.ErrorContains(t, err, "decode JSON")
}

func TestFileReader_Flag(t *testing.T) {
	fr := &FileReader[item]{}
	f := fr.Flag()
	assert.Equal(t, "results", f.Name)
	assert.Equal(t, []string{"f"}, f.Aliases)
}

func TestFileReader_ReadStream(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "json lines", input: "{\"name\":\"a\"}\n{\"name\":\"b\"}\n", want: []string{"a", "b"}},
		{name: "array", input: `[{"name":"a"},{"name":"b"}]`, want: []string{"a", "b"}},
		{name: "empty", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := &FileReader[item]{stdin: strings.NewReader(tt.input)}

			got, err := fr.ReadStream()
			require.NoError(t, err)

			var names []string
			for _, it := range got {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFileReader_ReadStreamBadLine(t *testing.T) {
	fr := &FileReader[item]{stdin: strings.NewReader("{\"name\":\"a\"}\n{nope")}

	_, err := fr.ReadStream()
	require.ErrorContains(t, err, "decode JSON")
}

func TestFileReader_MissingFile(t *testing.T) {
	fr := &FileReader[item]{fileFlagValue: filepath.Join(t.TempDir(), "missing.json")}

	_, err := fr.ReadStream()
	require.ErrorContains(t, err, "open file")
}
