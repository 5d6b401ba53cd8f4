// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Command suggestion for typo correction.
package cli

import (
	"slices"
	"strings"
)

// validCommands lists the command names and aliases ParseArgs accepts.
var validCommands = []string{
	"tui", "ask", "chat", "catalog", "config", "version", "help",
	"preguntar", "repl", "catalogo", "cat", "ayuda",
}

// SuggestCommand returns the closest valid command to input, or "" when
// nothing is close enough or input is already valid. Inputs of four or
// more characters may be two edits away, shorter ones only one.
func SuggestCommand(input string) string {
	input = strings.ToLower(input)
	n := len([]rune(input))
	if n < 2 || slices.Contains(validCommands, input) {
		return ""
	}
	limit := 1
	if n >= 4 {
		limit = 2
	}

	best, bestDist := "", limit+1
	for _, cmd := range validCommands {
		// Ties keep the earlier entry, so names beat aliases.
		if d := levenshteinDistance(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

// levenshteinDistance is the rune edit distance between s1 and s2, kept to
// two rows of the usual table.
func levenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := range a {
		diag := row[0]
		row[0] = i + 1
		for j := range b {
			cost := 1
			if a[i] == b[j] {
				cost = 0
			}
			diag, row[j+1] = row[j+1], min(row[j+1]+1, row[j]+1, diag+cost)
		}
	}
	return row[len(b)]
}
