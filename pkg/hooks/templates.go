package hooks

// Shell hook templates. The generated scripts carry the whole two-phase
// contract on the shell side: paint the placeholder prompt immediately,
// then run the deferred phase from a one-shot prompt hook once the
// session is idle, swap in the themed prompt and repaint the line.

const zshHookTemplate = `# spry shell integration for zsh. Generated, do not edit manually
# Source this file from your ~/.zshrc:
#   source "$($SPRY_BIN hook path zsh)"

PROMPT={{shellQuote .PlaceholderPrompt}}

# Synchronous path: everything below is usable before the deferred
# phase finishes.
alias ..='cd ..'
alias ...='cd ../..'
spry-reload() { exec zsh; }
spry-edit-profile() { "${EDITOR:-vi}" {{shellQuote .ConfigPath}}; }

_spry_deferred_done=0
_spry_run_deferred() {
  (( _spry_deferred_done )) && return
  _spry_deferred_done=1
  eval "$({{.Binary}} init deferred --shell zsh)"
  add-zsh-hook -d precmd _spry_run_deferred
  zle && zle reset-prompt
}

autoload -Uz add-zsh-hook
add-zsh-hook precmd _spry_run_deferred
{{- if .HistoryFilter}}

# Keep lines with credential-looking substrings out of persistent history.
_spry_history_check() {
  {{.Binary}} history check -- "${1%%$'\n'}"
}
add-zsh-hook zshaddhistory _spry_history_check
{{- end}}
`

const bashHookTemplate = `# spry shell integration for bash. Generated, do not edit manually
# Source this file from your ~/.bashrc:
#   source "$($SPRY_BIN hook path bash)"

PS1={{shellQuote .PlaceholderPrompt}}

# Synchronous path: everything below is usable before the deferred
# phase finishes.
alias ..='cd ..'
alias ...='cd ../..'
spry-reload() { exec bash; }
spry-edit-profile() { "${EDITOR:-vi}" {{shellQuote .ConfigPath}}; }

_spry_run_deferred() {
  [ -n "$_spry_deferred_done" ] && return
  _spry_deferred_done=1
  eval "$({{.Binary}} init deferred --shell bash)"
  PROMPT_COMMAND=${PROMPT_COMMAND//_spry_run_deferred${PROMPT_COMMAND:+;}/}
}

PROMPT_COMMAND="_spry_run_deferred${PROMPT_COMMAND:+;}${PROMPT_COMMAND}"
{{- if .HistoryFilter}}

# Keep lines with credential-looking substrings out of persistent history.
_spry_history_check() {
  local last
  last=$(HISTTIMEFORMAT= history 1 | sed 's/^ *[0-9]* *//')
  if ! {{.Binary}} history check -- "$last"; then
    history -d "$(history 1 | awk '{print $1}')"
  fi
}
PROMPT_COMMAND="_spry_history_check${PROMPT_COMMAND:+;}${PROMPT_COMMAND}"
{{- end}}
`
