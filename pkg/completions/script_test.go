package completions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZshRegistration(t *testing.T) {
	got := ZshRegistration("/usr/local/bin/spry", "az")
	assert.Contains(t, got, "compdef _spry_complete_az az")
	assert.Contains(t, got, "/usr/local/bin/spry complete az --")
}

func TestBashRegistration(t *testing.T) {
	got := BashRegistration("/usr/local/bin/spry", "docker")
	assert.Contains(t, got, "complete -F _spry_complete_docker docker")
}

func TestRegistrationDispatch(t *testing.T) {
	assert.Contains(t, Registration("bash", "spry", "az"), "COMPREPLY")
	assert.Contains(t, Registration("zsh", "spry", "az"), "compadd")
}
