package scan

import (
	"path/filepath"
	"strings"
)

// skipDirs are directory names never worth descending into when hunting
// for manifests.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	"target":       true,
	"node_modules": true,
	"vendor":       true,
}

// ExcludeMatcher filters walked paths against user-supplied patterns.
// Patterns match path segments anywhere under the scan root, with basic
// wildcard support.
type ExcludeMatcher struct {
	rootDir  string
	patterns []string
}

// NewExcludeMatcher creates a matcher for paths under rootDir.
func NewExcludeMatcher(rootDir string, patterns []string) *ExcludeMatcher {
	return &ExcludeMatcher{
		rootDir:  rootDir,
		patterns: patterns,
	}
}

// ShouldSkip checks if a directory entry should be skipped during the
// manifest walk.
func (em *ExcludeMatcher) ShouldSkip(path string, isDir bool) bool {
	name := filepath.Base(path)

	if isDir && path != em.rootDir && (skipDirs[name] || strings.HasPrefix(name, ".")) {
		return true
	}

	if len(em.patterns) == 0 {
		return false
	}

	relPath, err := filepath.Rel(em.rootDir, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range em.patterns {
		if em.matchPattern(pattern, relPath) {
			return true
		}
	}

	return false
}

// matchPattern checks a pattern against the relative path and each of
// its trailing sub-paths, so `foo/*` excludes foo anywhere in the tree.
func (em *ExcludeMatcher) matchPattern(pattern, path string) bool {
	pattern = strings.TrimSuffix(pattern, "/")

	if matchSegments(pattern, path) {
		return true
	}

	parts := strings.Split(path, "/")
	for i := range parts {
		if matchSegments(pattern, strings.Join(parts[i:], "/")) {
			return true
		}
	}

	if !strings.Contains(pattern, "/") {
		for _, part := range parts {
			if matchWildcard(pattern, part) {
				return true
			}
		}
	}

	return false
}

func matchSegments(pattern, path string) bool {
	if !strings.Contains(pattern, "/") {
		return matchWildcard(pattern, path)
	}

	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")
	if len(patternParts) > len(pathParts) {
		return false
	}

	for i, pp := range patternParts {
		if !matchWildcard(pp, pathParts[i]) {
			return false
		}
	}
	return true
}

// matchWildcard performs basic wildcard matching on one path segment.
func matchWildcard(pattern, text string) bool {
	if pattern == text || pattern == "*" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		return strings.Contains(text, pattern[1:len(pattern)-1])
	}
	if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(text, pattern[1:])
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(text, pattern[:len(pattern)-1])
	}

	return false
}
