package services

import (
	"regexp"
	"strings"

	"github.com/cardbridge/atena/internal/textnorm"
)

// departmentSeparators split a department path into its hierarchy levels:
// angle brackets, slashes, pipes, and whitespace runs.
var departmentSeparators = regexp.MustCompile(`[＞>／/｜|]+|[ 　]+`)

// SplitDepartment distributes hierarchy levels over the two department
// columns. Levels paired onto one column are joined with a full-width plus
// surrounded by ideographic spaces; all output is full-width.
func SplitDepartment(dept string) (string, string) {
	normalized, _ := textnorm.Normalize(dept, textnorm.General)
	if normalized == "" {
		return "", ""
	}

	var parts []string
	for _, p := range departmentSeparators.Split(normalized, -1) {
		if p != "" {
			parts = append(parts, textnorm.Widen(p))
		}
	}

	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	case 2:
		return parts[0], parts[1]
	case 3:
		return joinLevels(parts[:2]), parts[2]
	case 4:
		return joinLevels(parts[:2]), joinLevels(parts[2:4])
	case 5:
		return joinLevels(parts[:3]), joinLevels(parts[3:5])
	default:
		return joinLevels(parts[:3]), joinLevels(parts[3:6])
	}
}

func joinLevels(levels []string) string {
	return strings.Join(levels, "　＋　")
}
