package diag

import (
	"fmt"
	"sort"
	"strings"
)

// SuggestField suggests possible field names when an unknown field appears
// on an entry. It uses Levenshtein distance to find the closest match.
func SuggestField(unknown string, validFields []string) string {
	if len(validFields) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string
	for _, field := range validFields {
		dist := levenshteinDistance(unknown, field)
		if dist < minDistance {
			minDistance = dist
			bestMatch = field
		}
	}

	// Only suggest if the distance is reasonable (< 5 edits)
	if minDistance < 5 {
		return fmt.Sprintf("did you mean %q?", bestMatch)
	}

	fields := append([]string(nil), validFields...)
	sort.Strings(fields)
	if len(fields) > 5 {
		return fmt.Sprintf("valid fields include: %s, ...", strings.Join(fields[:5], ", "))
	}
	return fmt.Sprintf("valid fields: %s", strings.Join(fields, ", "))
}

// levenshteinDistance computes the edit distance between two strings. Used
// for did-you-mean suggestions on unknown fields and enum values.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
