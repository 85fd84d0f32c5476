package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"otodoke_life/internal/letter/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out)
	return out.String(), err
}

func TestEncodeThenDecode(t *testing.T) {
	for _, scheme := range []string{"compact", "legacy"} {
		t.Run(scheme, func(t *testing.T) {
			url, err := runCLI(t, "encode", "-m", "ありがとう", "--to", "母", "--from", "太郎", "--scheme", scheme, "--base-url", "https://example.com/")
			require.NoError(t, err)
			url = strings.TrimSpace(url)
			assert.True(t, strings.HasPrefix(url, "https://example.com/letter#"), url)

			out, err := runCLI(t, "decode", url)
			require.NoError(t, err)

			var record domain.MessageRecord
			require.NoError(t, json.Unmarshal([]byte(out), &record))
			assert.Equal(t, "ありがとう", record.Message)
			assert.Equal(t, "母", record.RecipientName)
			assert.Equal(t, "太郎", record.WriterName)
			assert.Equal(t, domain.Scheme(scheme), record.Scheme)
		})
	}
}

func TestEncodeJSON(t *testing.T) {
	out, err := runCLI(t, "encode", "--message", "hi", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"letterUrl": "https://otodokelife.com/letter#`)
	assert.Contains(t, out, `"scheme": "compact"`)
}

func TestEncodeValidation(t *testing.T) {
	_, err := runCLI(t, "encode", "--message", "   ")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = runCLI(t, "encode", "--message", "hi", "--scheme", "zip")
	require.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	_, err := runCLI(t, "decode")
	require.Error(t, err)

	_, err = runCLI(t, "decode", "")
	assert.True(t, domain.IsKind(err, domain.KindNoData))

	_, err = runCLI(t, "decode", "data=!!!")
	assert.True(t, domain.IsKind(err, domain.KindCorrupt))
}

func TestClassify(t *testing.T) {
	out, err := runCLI(t, "classify", "hello")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "short\t5/"), out)

	out, err = runCLI(t, "classify", strings.Repeat("あ", domain.MaxMessageLength+1))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "too_long\t"), out)
}

func TestSitemap(t *testing.T) {
	out, err := runCLI(t, "sitemap", "--base-url", "https://example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "<loc>https://example.com</loc>")
	assert.Contains(t, out, "<loc>https://example.com/terms</loc>")

	path := filepath.Join(t.TempDir(), "sitemap.xml")
	out, err = runCLI(t, "sitemap", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(written), "<loc>https://otodokelife.com/faq</loc>")
}

func TestUnknownCommand(t *testing.T) {
	out, err := runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, out, "classify|decode|encode|sitemap")

	_, err = runCLI(t, "publish")
	assert.EqualError(t, err, `unknown command "publish"`)
}
