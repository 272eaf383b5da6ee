package config

import (
	"path/filepath"
	"strings"
)

// ProjectConfig holds configuration for one project subtree.
// This allows customizing scan behavior per project in a monorepo.
type ProjectConfig struct {
	// ImportDepth overrides the global import depth for this project.
	// If zero, the global ImportDepth is used.
	ImportDepth int `yaml:"importDepth,omitempty"`

	// IgnorePatterns are path globs to skip during discovery.
	// Patterns are matched against paths relative to the scan target.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// FollowPatterns are path globs to restrict discovery to.
	// If specified, only paths matching these patterns are scanned.
	FollowPatterns []string `yaml:"followPatterns,omitempty"`

	// DisabledRules lists rule IDs excluded when scanning this project.
	DisabledRules []string `yaml:"disabledRules,omitempty"`

	// SeverityOverrides re-bands rules for this project, keyed by rule ID
	// with a severity name as the value.
	SeverityOverrides map[string]string `yaml:"severityOverrides,omitempty"`

	// MinSeverity drops findings below the named severity for this project.
	MinSeverity string `yaml:"minSeverity,omitempty"`

	// FailOn overrides the severity that makes a scan of this project
	// exit non-zero.
	FailOn string `yaml:"failOn,omitempty"`
}

// File represents the structure of the .gaslint.yaml configuration file.
type File struct {
	// Projects maps path prefixes to their project-specific configurations.
	// Keys are paths relative to where gaslint runs (e.g. "contracts/core").
	Projects map[string]ProjectConfig `yaml:"projects,omitempty"`

	// Defaults contains default project configuration applied to all targets
	// unless overridden in a matching project section.
	Defaults ProjectConfig `yaml:"defaults,omitempty"`
}

// GetProjectConfig returns the effective configuration for a target path.
// It merges the longest matching project section over the defaults.
//
// Merge semantics follow the field type: scalars override when set, pattern
// lists replace wholesale, disabled rules accumulate (a project can disable
// more but not re-enable a default disable), and severity overrides merge
// per key with the project winning.
func (cf *File) GetProjectConfig(target string) ProjectConfig {
	// Start with defaults
	result := cf.Defaults

	var bestKey string
	for key := range cf.Projects {
		if !matchesProject(target, key) {
			continue
		}
		if len(key) > len(bestKey) {
			bestKey = key
		}
	}
	if bestKey == "" {
		return result
	}

	project := cf.Projects[bestKey]
	if project.ImportDepth != 0 {
		result.ImportDepth = project.ImportDepth
	}
	if len(project.IgnorePatterns) > 0 {
		result.IgnorePatterns = project.IgnorePatterns
	}
	if len(project.FollowPatterns) > 0 {
		result.FollowPatterns = project.FollowPatterns
	}
	if len(project.DisabledRules) > 0 {
		result.DisabledRules = unionRules(result.DisabledRules, project.DisabledRules)
	}
	if len(project.SeverityOverrides) > 0 {
		if result.SeverityOverrides == nil {
			result.SeverityOverrides = make(map[string]string)
		}
		for k, v := range project.SeverityOverrides {
			result.SeverityOverrides[k] = v
		}
	}
	if project.MinSeverity != "" {
		result.MinSeverity = project.MinSeverity
	}
	if project.FailOn != "" {
		result.FailOn = project.FailOn
	}

	return result
}

// matchesProject reports whether a section key covers the target path.
// A key matches its own path and everything underneath it.
func matchesProject(target, key string) bool {
	t := filepath.ToSlash(filepath.Clean(target))
	k := filepath.ToSlash(filepath.Clean(key))
	return t == k || strings.HasPrefix(t, k+"/")
}

// unionRules appends additions to base, skipping duplicates and
// preserving order.
func unionRules(base, additions []string) []string {
	seen := make(map[string]bool, len(base))
	result := make([]string, 0, len(base)+len(additions))
	for _, id := range base {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	for _, id := range additions {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}

// validate checks the rule IDs and severity names in every section.
func (cf *File) validate() error {
	if err := cf.Defaults.validate(); err != nil {
		return err
	}
	for _, project := range cf.Projects {
		if err := project.validate(); err != nil {
			return err
		}
	}
	return nil
}

// validate checks one section's rule IDs and severity names.
func (pc *ProjectConfig) validate() error {
	if err := validateRuleIDs(pc.DisabledRules); err != nil {
		return err
	}
	if err := validateOverrides(pc.SeverityOverrides); err != nil {
		return err
	}
	if err := validateSeverityName(pc.MinSeverity); err != nil {
		return err
	}
	return validateSeverityName(pc.FailOn)
}
