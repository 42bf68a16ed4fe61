package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRecognizeCommand(t *testing.T) {
	out, err := execute(t, "recognize", "--culture", "en-us", "--options", "",
		"--reference", "2024-06-10T09:00:00Z", "--format", formatJSON, "call", "me", "tomorrow")
	require.NoError(t, err)

	var got []recognizedJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "tomorrow", got[0].Text)
	assert.Equal(t, "2024-06-11", got[0].Timex)
}

func TestExtractCommandChinese(t *testing.T) {
	out, err := execute(t, "extract", "--culture", "zh-cn", "--options", "",
		"--reference", "2024-06-10T09:00:00Z", "--format", formatTable, "我们明天见")
	require.NoError(t, err)
	assert.Contains(t, out, "明天")
	assert.Contains(t, out, "date")
}

func TestCommandErrors(t *testing.T) {
	_, err := execute(t, "recognize", "--culture", "fr-fr", "--options", "", "--format", formatTable, "demain")
	assert.Error(t, err)

	_, err = execute(t, "recognize", "--culture", "en-us", "--options", "Bogus", "--format", formatTable, "tomorrow")
	assert.Error(t, err)

	_, err = execute(t, "recognize", "--culture", "en-us", "--options", "", "--reference", "not a time", "--format", formatTable, "tomorrow")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--format", formatJSON)
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version, info["version"])
	assert.Equal(t, "en-us,zh-cn", info["cultures"])
}

func TestCacheFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	args := []string{"--culture", "en-us", "--options", "", "--reference", "2024-06-10T09:00:00Z", "--cache-path", path}

	first, err := execute(t, append([]string{"extract", "--format", formatJSON}, append(args, "see you tomorrow")...)...)
	require.NoError(t, err)
	second, err := execute(t, append([]string{"extract", "--format", formatJSON}, append(args, "see you tomorrow")...)...)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	out, err := execute(t, "cache", "stats", "--cache-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "1")

	out, err = execute(t, "cache", "clear", "--cache-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	out, err = execute(t, "cache", "sweep", "--cache-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "removed 0 expired entries, 0 left")

	// later commands in this process must not see the file
	_, err = execute(t, "cache", "stats", "--cache-path", "")
	assert.Error(t, err)
}
