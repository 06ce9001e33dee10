package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadRulesTopLevelKey(t *testing.T) {
	path := writeRulesFile(t, `categories:
  - name: Software
    keywords: ["aws", "github"]
  - name: Shopping
    keywords: ["amazon", "target"]
`)

	rules, err := NewRuleStore(path).LoadRules()
	require.NoError(t, err)
	require.Len(t, rules, 2)

	// File order is match priority and must survive the round trip.
	assert.Equal(t, "Software", rules[0].Name)
	assert.Equal(t, []string{"aws", "github"}, rules[0].Keywords)
	assert.Equal(t, "Shopping", rules[1].Name)
}

func TestLoadRulesBareList(t *testing.T) {
	path := writeRulesFile(t, `- name: Groceries
  keywords: ["kroger"]
`)

	rules, err := NewRuleStore(path).LoadRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "Groceries", rules[0].Name)
}

func TestLoadRulesMissingFile(t *testing.T) {
	rules, err := NewRuleStore(filepath.Join(t.TempDir(), "nope.yaml")).LoadRules()
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestLoadRulesUnusableContent(t *testing.T) {
	path := writeRulesFile(t, `just a string`)

	_, err := NewRuleStore(path).LoadRules()
	assert.Error(t, err)
}
