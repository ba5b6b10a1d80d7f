// Package cmd provides CLI utilities for apim-gov
package cmd

import (
	"fmt"
	"sort"
	"strings"
)

// Commands available in apim-gov
var commands = []string{
	"init",
	"config",
	"artifact",
	"compliance",
	"overview",
	"watch",
	"policies",
	"delete-policy",
	"violations",
	"subscription-policies",
	"completion",
	"version",
	"help",
}

// flagSpec describes one flag offered after a command.
type flagSpec struct {
	long  string
	short string
	desc  string
	value bool // takes an argument
}

var (
	flagJSON    = flagSpec{long: "json", desc: "JSON output"}
	flagQuiet   = flagSpec{long: "quiet", short: "q", desc: "Minimal output"}
	flagYes     = flagSpec{long: "yes", short: "y", desc: "Skip confirmation"}
	flagVerbose = flagSpec{long: "verbose", short: "v", desc: "Debug logging"}
)

// commandFlags lists the flags each command accepts.
var commandFlags = map[string][]flagSpec{
	"compliance": {
		{long: "revision", desc: "Artifact is a revision"},
		{long: "interactive", short: "i", desc: "Browse tracked artifacts"},
		flagJSON, flagQuiet, flagVerbose,
	},
	"overview":              {flagJSON, flagQuiet, flagVerbose},
	"watch":                 {flagVerbose},
	"policies":              {{long: "search", desc: "Filter by name or description", value: true}, flagJSON, flagQuiet, flagVerbose},
	"delete-policy":         {flagYes, flagJSON, flagQuiet, flagVerbose},
	"violations":            {{long: "severity", desc: "ERROR, WARN or INFO", value: true}, flagJSON, flagQuiet, flagVerbose},
	"subscription-policies": {flagYes, flagJSON, flagVerbose},
	"artifact":              {{long: "name", desc: "Display name", value: true}, {long: "revision", desc: "Artifact is a revision"}, flagJSON},
	"config":                {flagJSON},
}

// commandWords lists the fixed words completed after a command.
var commandWords = map[string][]string{
	"completion": {"bash", "zsh", "fish", "powershell"},
	"artifact":   {"add", "remove", "select", "list"},
	"config":     {"get", "set"},
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// flagWords returns "--long -s" words for a command.
func flagWords(cmd string) []string {
	var words []string
	for _, f := range commandFlags[cmd] {
		words = append(words, "--"+f.long)
		if f.short != "" {
			words = append(words, "-"+f.short)
		}
	}
	return words
}

// argWords returns every completion word offered after cmd.
func argWords(cmd string) []string {
	return append(append([]string{}, commandWords[cmd]...), flagWords(cmd)...)
}

// GenerateBashCompletion generates bash completion script
func GenerateBashCompletion() string {
	var cases strings.Builder
	for _, cmd := range commands {
		words := argWords(cmd)
		if len(words) == 0 {
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            opts=\"%s\"\n            ;;\n", cmd, strings.Join(words, " "))
	}

	return fmt.Sprintf(`# bash completion for apim-gov
_apim_gov_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[1]}"

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "%s" -- ${cur}) )
        return 0
    fi

    opts=""
    case "${prev}" in
%s    esac

    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
}

complete -F _apim_gov_completions apim-gov
`, strings.Join(commands, " "), cases.String())
}

// GenerateZshCompletion generates zsh completion script
func GenerateZshCompletion() string {
	cmdList := make([]string, len(commands))
	for i, cmd := range commands {
		cmdList[i] = fmt.Sprintf("    '%s:%s'", cmd, getCommandDescription(cmd))
	}

	var cases strings.Builder
	for _, cmd := range commands {
		flags := commandFlags[cmd]
		words := commandWords[cmd]
		if len(flags) == 0 && len(words) == 0 {
			continue
		}
		fmt.Fprintf(&cases, "                %s)\n                    _arguments", cmd)
		if len(words) > 0 {
			fmt.Fprintf(&cases, " \\\n                        '1:arg:(%s)'", strings.Join(words, " "))
		}
		for _, f := range flags {
			suffix := ""
			if f.value {
				suffix = ":" + f.long + ":"
			}
			fmt.Fprintf(&cases, " \\\n                        '--%s[%s]%s'", f.long, f.desc, suffix)
			if f.short != "" {
				fmt.Fprintf(&cases, " \\\n                        '-%s[%s]%s'", f.short, f.desc, suffix)
			}
		}
		cases.WriteString("\n                    ;;\n")
	}

	return fmt.Sprintf(`#compdef apim-gov

_apim_gov() {
    local -a commands
    commands=(
%s
    )

    _arguments -C \
        '1: :->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
%s            esac
            ;;
    esac
}

_apim_gov "$@"
`, strings.Join(cmdList, "\n"), cases.String())
}

// GenerateFishCompletion generates fish completion script
func GenerateFishCompletion() string {
	var completions []string

	for _, cmd := range commands {
		completions = append(completions, fmt.Sprintf("complete -c apim-gov -f -n '__fish_use_subcommand' -a '%s' -d '%s'", cmd, getCommandDescription(cmd)))
	}

	for _, cmd := range sortedKeys(commandWords) {
		completions = append(completions, fmt.Sprintf("complete -c apim-gov -n '__fish_seen_subcommand_from %s' -f -a '%s'", cmd, strings.Join(commandWords[cmd], " ")))
	}

	for _, cmd := range sortedKeys(commandFlags) {
		completions = append(completions, fmt.Sprintf("# %s flags", cmd))
		for _, f := range commandFlags[cmd] {
			line := fmt.Sprintf("complete -c apim-gov -n '__fish_seen_subcommand_from %s' -l %s", cmd, f.long)
			if f.short != "" {
				line += " -s " + f.short
			}
			line += fmt.Sprintf(" -d '%s'", f.desc)
			if f.value {
				line += " -r"
			}
			completions = append(completions, line)
		}
	}

	return strings.Join(completions, "\n")
}

// GeneratePowerShellCompletion generates PowerShell completion script
func GeneratePowerShellCompletion() string {
	quote := func(words []string) string {
		out := make([]string, len(words))
		for i, w := range words {
			out[i] = fmt.Sprintf("'%s'", w)
		}
		return strings.Join(out, ", ")
	}

	var cases strings.Builder
	for _, cmd := range commands {
		words := argWords(cmd)
		if len(words) == 0 {
			continue
		}
		fmt.Fprintf(&cases, `            '%s' {
                @(%s) |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
`, cmd, quote(words))
	}

	return fmt.Sprintf(`# PowerShell completion for apim-gov
Register-ArgumentCompleter -Native -CommandName apim-gov -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $commands = @(%s)

    $line = $commandAst.ToString()
    $tokens = $line.Split(' ')

    if ($tokens.Count -eq 2) {
        $commands | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
    }
    elseif ($tokens.Count -gt 2) {
        $subcommand = $tokens[1]

        switch ($subcommand) {
%s        }
    }
}
`, quote(commands), cases.String())
}

// getCommandDescription returns a short description for a command
func getCommandDescription(cmd string) string {
	descriptions := map[string]string{
		"init":                  "Create console configuration",
		"config":                "Get or set configuration values",
		"artifact":              "Manage tracked artifacts",
		"compliance":            "Show compliance summary",
		"overview":              "Compliance of all tracked artifacts",
		"watch":                 "Follow the selected artifact",
		"policies":              "List governance policies",
		"delete-policy":         "Delete a governance policy",
		"violations":            "Show ruleset violations",
		"subscription-policies": "Edit API subscription policies",
		"completion":            "Generate shell completion script",
		"version":               "Show version information",
		"help":                  "Show help information",
	}

	if desc, ok := descriptions[cmd]; ok {
		return desc
	}
	return ""
}
