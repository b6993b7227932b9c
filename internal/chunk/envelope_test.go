package chunk

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressDecompress(t *testing.T) {
	payload := `{"id":"n1","title":"Путь дракона","volumes":[]}` + strings.Repeat(" ", 1000)

	env, err := Compress(payload)
	require.NoError(t, err)
	assert.True(t, IsEnvelope(env))
	assert.Less(t, len(env), len(payload))

	var decoded Envelope
	require.NoError(t, json.Unmarshal([]byte(env), &decoded))
	assert.Equal(t, FormatGzip, decoded.Format)

	got, err := Decompress(env)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDecompress_PlainJSONPassesThrough(t *testing.T) {
	tests := []string{
		`{"id":"n1","title":"x"}`,
		`{"format":"gzip","data":"abc","extra":1}`,
		`{"format":"markdown","title":"not an envelope"}`,
		`[1,2,3]`,
		`not json at all`,
	}

	for _, content := range tests {
		assert.False(t, IsEnvelope(content), content)
		got, err := Decompress(content)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	}
}

func TestDecompress_Errors(t *testing.T) {
	_, err := Decompress(`{"format":"brotli","data":"AAAA"}`)
	assert.ErrorContains(t, err, "unsupported envelope format")

	_, err = Decompress(`{"format":"gzip","data":"%%%not-base64"}`)
	assert.ErrorContains(t, err, "failed to decode envelope data")

	_, err = Decompress(`{"format":"gzip","data":"aGVsbG8="}`)
	assert.ErrorContains(t, err, "gzip")
}

func TestCompressedPayloadSurvivesChunking(t *testing.T) {
	payload := strings.Repeat(`{"text":"龍と剣"}`, 500)
	env, err := Compress(payload)
	require.NoError(t, err)

	set, err := Encode(env, 64)
	require.NoError(t, err)

	got, err := Decompress(Decode(set.Chunks))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
