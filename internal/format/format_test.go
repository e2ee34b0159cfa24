package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"text", " JSON ", "Text"} {
		_, err := Parse(s)
		require.NoError(t, err, s)
	}
	_, err := Parse("yaml")
	require.ErrorContains(t, err, "invalid format: yaml")
	require.Contains(t, GetHelpText(), "json")
}

func TestWrite(t *testing.T) {
	t.Parallel()

	l := Listing{Root: "/pics", Page: 2, Files: []string{"a.png", "b/c.png"}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Text, l))
	require.Equal(t, "a.png\nb/c.png\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, JSON, l))
	var got Listing
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, l, got)

	buf.Reset()
	require.NoError(t, Write(&buf, JSON, Listing{Page: 1, Last: true}))
	require.Contains(t, buf.String(), `"files": []`)
}
