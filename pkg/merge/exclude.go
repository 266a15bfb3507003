package merge

import (
	"path"
	"path/filepath"
	"strings"
)

// isHidden reports whether a directory entry is excluded from the walk
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// shouldExclude checks a path relative to the first tree against patterns.
// Patterns support:
//   - base name globs: *.tmp, *.log
//   - directory patterns: build/, node_modules/
//   - path globs: cache/*, **/thumbs/*
func shouldExclude(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	normalizedPath := filepath.ToSlash(relativePath)
	baseName := filepath.Base(relativePath)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		normalizedPattern := filepath.ToSlash(pattern)

		if strings.HasSuffix(normalizedPattern, "/") {
			dirPattern := strings.TrimSuffix(normalizedPattern, "/")
			if normalizedPath == dirPattern || baseName == dirPattern ||
				strings.HasPrefix(normalizedPath, dirPattern+"/") {
				return true
			}
			continue
		}

		if rest, ok := strings.CutPrefix(normalizedPattern, "**/"); ok {
			if matchGlob(baseName, rest) || matchGlob(normalizedPath, rest) ||
				matchAnySuffix(normalizedPath, rest) {
				return true
			}
			continue
		}

		if strings.Contains(normalizedPattern, "/") {
			if matchGlob(normalizedPath, normalizedPattern) {
				return true
			}
			continue
		}

		if matchGlob(baseName, normalizedPattern) {
			return true
		}
	}

	return false
}

func matchGlob(name, pattern string) bool {
	matched, _ := path.Match(pattern, name)
	return matched
}

// matchAnySuffix matches pattern against every trailing sub-path of p
func matchAnySuffix(p, pattern string) bool {
	for i := 0; i < len(p); i++ {
		if p[i] == '/' && matchGlob(p[i+1:], pattern) {
			return true
		}
	}
	return false
}
