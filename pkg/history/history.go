// Package history implements the command-history redaction filter.
// Lines matching a case-insensitive deny-list are kept out of persistent
// history. This is a convenience filter, not a security boundary.
package history

import "strings"

// DefaultDenyList is the built-in set of sensitive substrings.
var DefaultDenyList = []string{
	"password",
	"secret",
	"token",
	"apikey",
	"connectionstring",
}

// Filter decides which command lines are recorded to history.
type Filter struct {
	denyList []string
}

// NewFilter builds a Filter. An empty deny list falls back to the default.
func NewFilter(denyList []string) *Filter {
	if len(denyList) == 0 {
		denyList = DefaultDenyList
	}
	lowered := make([]string, len(denyList))
	for i, p := range denyList {
		lowered[i] = strings.ToLower(p)
	}
	return &Filter{denyList: lowered}
}

// ShouldRecord reports whether the line may be written to persistent
// history: false iff any deny-list pattern is a case-insensitive
// substring of the line.
func (f *Filter) ShouldRecord(line string) bool {
	lowered := strings.ToLower(line)
	for _, pattern := range f.denyList {
		if strings.Contains(lowered, pattern) {
			return false
		}
	}
	return true
}
