package vcs

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRef(t *testing.T) {
	owner, name, err := splitRef("acme/widgets")
	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widgets", name)
}

func TestSplitRef_Invalid(t *testing.T) {
	for _, ref := range []string{"", "acme", "/widgets", "acme/"} {
		_, _, err := splitRef(ref)
		assert.Error(t, err, "ref %q", ref)
	}
}

func TestSplitRef_KeepsNestedPath(t *testing.T) {
	// Everything after the first slash belongs to the repository name as
	// far as this layer is concerned; upstream decides validity.
	owner, name, err := splitRef("acme/widgets/extra")
	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widgets/extra", name)
}

func TestFileContentDecode_Base64(t *testing.T) {
	file := &FileContent{
		Encoding: "base64",
		Raw:      base64.StdEncoding.EncodeToString([]byte("hello")),
	}

	decoded, err := file.Decode()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(decoded))
}

func TestFileContentDecode_Base64WithNewlines(t *testing.T) {
	// The contents API wraps base64 payloads in newlines.
	file := &FileContent{Encoding: "base64", Raw: "aGVs\nbG8=\n"}

	decoded, err := file.Decode()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(decoded))
}

func TestFileContentDecode_None(t *testing.T) {
	file := &FileContent{Encoding: "none", Raw: "plain"}

	decoded, err := file.Decode()
	require.NoError(t, err)
	assert.Equal(t, "plain", string(decoded))
}

func TestFileContentDecode_UnsupportedEncoding(t *testing.T) {
	file := &FileContent{Encoding: "rot13", Raw: "uryyb"}

	_, err := file.Decode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rot13")
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "Not Found"}
	assert.Equal(t, "Not Found (HTTP 404)", err.Error())
}
