package completions

import "fmt"

// ZshRegistration emits the zsh glue that routes completion requests
// for a tool through `spry complete`.
func ZshRegistration(binary, tool string) string {
	return fmt.Sprintf(`_spry_complete_%[2]s() {
  local -a candidates
  candidates=(${(f)"$(%[1]s complete %[2]s -- "${words[@]:1}")"})
  (( ${#candidates} )) && compadd -a candidates
}
compdef _spry_complete_%[2]s %[2]s
`, binary, tool)
}

// BashRegistration emits the bash glue for the same routing.
func BashRegistration(binary, tool string) string {
	return fmt.Sprintf(`_spry_complete_%[2]s() {
  mapfile -t COMPREPLY < <(%[1]s complete %[2]s -- "${COMP_WORDS[@]:1}")
}
complete -F _spry_complete_%[2]s %[2]s
`, binary, tool)
}

// Registration dispatches on shell.
func Registration(shell, binary, tool string) string {
	if shell == "bash" {
		return BashRegistration(binary, tool)
	}
	return ZshRegistration(binary, tool)
}
