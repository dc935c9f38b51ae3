package cli

var completionScripts = map[string]string{
	"bash": bashCompletionScript,
	"zsh":  zshCompletionScript,
	"fish": fishCompletionScript,
}

const bashCompletionScript = `# bash completion for ab
_ab_completion() {
  local cur first
  COMPREPLY=()
  cur="${COMP_WORDS[COMP_CWORD]}"

  if [[ ${COMP_CWORD} -eq 1 ]]; then
    COMPREPLY=( $(compgen -W "$(ab __complete verbs 2>/dev/null)" -- "$cur") )
    return 0
  fi

  first="${COMP_WORDS[1]}"
  if [[ "$first" == "completion" ]]; then
    COMPREPLY=( $(compgen -W "bash zsh fish" -- "$cur") )
    return 0
  fi

  if [[ "$first" == "help" ]]; then
    COMPREPLY=( $(compgen -W "$(ab __complete verbs 2>/dev/null)" -- "$cur") )
    return 0
  fi

  if [[ "$cur" == -* ]]; then
    COMPREPLY=( $(compgen -W "$(ab __complete flags "$first" 2>/dev/null)" -- "$cur") )
    return 0
  fi

  COMPREPLY=( $(compgen -f -- "$cur") )
}
complete -F _ab_completion ab
`

const zshCompletionScript = `#compdef ab
_ab_completion() {
  local -a verbs flags

  if (( CURRENT == 2 )); then
    verbs=(${(f)"$(ab __complete verbs 2>/dev/null)"})
    _describe 'ab command' verbs
    return
  fi

  if [[ "${words[2]}" == "completion" ]]; then
    _values 'shell' bash zsh fish
    return
  fi

  if [[ "${words[2]}" == "help" ]]; then
    verbs=(${(f)"$(ab __complete verbs 2>/dev/null)"})
    _describe 'ab command' verbs
    return
  fi

  if [[ "${words[CURRENT]}" == -* ]]; then
    flags=(${(f)"$(ab __complete flags ${words[2]} 2>/dev/null)"})
    _describe 'flag' flags
    return
  fi

  _files
}
compdef _ab_completion ab
`

const fishCompletionScript = `function __ab_words
    commandline -opc
end

function __ab_verb
    set -l w (__ab_words)
    if test (count $w) -ge 2
        echo $w[2]
    end
end

complete -c ab -n 'test (count (__ab_words)) -eq 1' -f -a "(ab __complete verbs 2>/dev/null)"
complete -c ab -n 'set -l w (__ab_words); test (count $w) -eq 2; and test "$w[2]" = completion' -f -a "bash zsh fish"
complete -c ab -n 'set -l w (__ab_words); test (count $w) -eq 2; and test "$w[2]" = help' -f -a "(ab __complete verbs 2>/dev/null)"
complete -c ab -n 'set -l w (__ab_words); test (count $w) -ge 2; and test "$w[2]" != completion; and test "$w[2]" != help' -a "(ab __complete flags (__ab_verb) 2>/dev/null)"
`
