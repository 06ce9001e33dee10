// Package store loads category rulebooks from YAML files, letting a
// deployment override the built-in keyword taxonomy without recompiling.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"banktocfo/cfopack/internal/config"
	"banktocfo/cfopack/internal/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = config.Logger

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// RuleStore manages loading of category rulebooks.
type RuleStore struct {
	RulesFile string
}

// NewRuleStore creates a store for the given rules file. An empty filename
// falls back to "categories.yaml".
func NewRuleStore(rulesFile string) *RuleStore {
	if rulesFile == "" {
		rulesFile = "categories.yaml"
	}
	return &RuleStore{RulesFile: rulesFile}
}

// findRulesFile looks for the rules file in standard locations.
func (s *RuleStore) findRulesFile() (string, error) {
	if filepath.IsAbs(s.RulesFile) {
		if _, err := os.Stat(s.RulesFile); err == nil {
			return s.RulesFile, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		s.RulesFile,
		filepath.Join("config", s.RulesFile),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "cfopack", s.RulesFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules loads the category rulebook from the YAML file. A missing file
// is not an error: the caller keeps the built-in taxonomy and gets an empty
// slice back.
func (s *RuleStore) LoadRules() ([]models.CategoryRule, error) {
	filePath, err := s.findRulesFile()
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Category rules file not found: %s, using built-in taxonomy", s.RulesFile)
			return []models.CategoryRule{}, nil
		}
		return nil, fmt.Errorf("error resolving category rules file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading category rules file: %w", err)
	}

	// Preferred structure: a top-level "categories" list. Order in the
	// file is match priority, so a sequence is the only acceptable shape.
	var rulebook models.CategoryRulebook
	if err := yaml.Unmarshal(data, &rulebook); err == nil && len(rulebook.Categories) > 0 {
		log.Debugf("Loaded %d category rules from %s", len(rulebook.Categories), filePath)
		return rulebook.Categories, nil
	}

	// Fallback: a bare list of rules without the top-level key.
	var rules []models.CategoryRule
	if err := yaml.Unmarshal(data, &rules); err == nil && len(rules) > 0 {
		log.Debugf("Loaded %d category rules from %s (bare list)", len(rules), filePath)
		return rules, nil
	}

	return nil, fmt.Errorf("category rules file %s has no usable rules", filePath)
}
