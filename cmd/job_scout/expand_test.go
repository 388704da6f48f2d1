package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpecFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spec.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSpecFile(t *testing.T) {
	path := writeSpecFile(t, `{"role": "백엔드 개발자", "location": "서울", "career": {"level": "신입"}, "skills": ["Go", "SQL"]}`)

	spec, err := loadSpecFile(path)
	require.NoError(t, err)
	assert.Equal(t, "백엔드 개발자", spec.Role)
	assert.Equal(t, "신입", spec.Career.Level)
	assert.Equal(t, []string{"Go", "SQL"}, spec.Skills)
}

func TestLoadSpecFile_SchemaViolation(t *testing.T) {
	path := writeSpecFile(t, `{"role": "백엔드 개발자", "skills": "Go"}`)

	_, err := loadSpecFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is invalid")
}

func TestLoadSpecFile_Missing(t *testing.T) {
	_, err := loadSpecFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read spec file")
}
