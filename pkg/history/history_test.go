package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldRecord(t *testing.T) {
	f := NewFilter(nil)

	tests := []struct {
		name string
		line string
		want bool
	}{
		{"plain command", "git status", true},
		{"bearer token mixed case", "curl -H 'Authorization: Bearer TOKEN123'", false},
		{"password assignment", "export DB_PASSWORD=hunter2", false},
		{"secret in path", "cat /vault/Secrets/app", false},
		{"apikey flag", "tool --apiKey abc", false},
		{"connection string", "az storage --ConnectionString foo", false},
		{"substring inside word counts", "git log --oneline tokenizer.go", false},
		{"empty line", "", true},
		{"unrelated env var", "export EDITOR=vim", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.ShouldRecord(tt.line))
		})
	}
}

func TestCustomDenyList(t *testing.T) {
	f := NewFilter([]string{"hunter2"})

	assert.False(t, f.ShouldRecord("echo HUNTER2"))
	// Default patterns no longer apply when a custom list is given
	assert.True(t, f.ShouldRecord("export PASSWORD=x"))
}

func TestEmptyDenyListUsesDefaults(t *testing.T) {
	f := NewFilter([]string{})
	assert.False(t, f.ShouldRecord("echo my-secret"))
}
