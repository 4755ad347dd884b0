// Package repository holds helpers shared by the storage backends.
package repository

import "strings"

// LikeEscape is the escape character used with ContainsPattern.
const LikeEscape = `\`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern returns a lower-cased LIKE pattern matching any text that
// contains term. Wildcards inside term match literally.
func ContainsPattern(term string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(term)) + "%"
}
