package cmd

import (
	"fmt"
	"os"
)

type CompletionCmd struct {
	Shell string `arg:"" help:"Shell type: bash, zsh, or fish"`
}

func (c *CompletionCmd) Run() error {
	switch c.Shell {
	case "bash":
		return c.generateBash()
	case "zsh":
		return c.generateZsh()
	case "fish":
		return c.generateFish()
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", c.Shell)
	}
}

func (c *CompletionCmd) generateBash() error {
	script := `# bash completion for cratepack

_cratepack_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main commands
    if [[ ${COMP_CWORD} -eq 1 ]]; then
        opts="pack init version completion"
        COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        return 0
    fi

    # Options for pack command
    if [[ ${COMP_WORDS[1]} == "pack" ]]; then
        case "${prev}" in
            -o|--output)
                COMPREPLY=( $(compgen -f -X '!*.json' -- ${cur}) )
                return 0
                ;;
            --dataset-dir)
                COMPREPLY=( $(compgen -d -- ${cur}) )
                return 0
                ;;
            *)
                if [[ ${cur} == -* ]]; then
                    opts="-o --output --report --dataset-dir -h --help"
                    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
                else
                    COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml|json)' -- ${cur}) )
                fi
                return 0
                ;;
        esac
    fi

    # Options for init command
    if [[ ${COMP_WORDS[1]} == "init" ]]; then
        case "${prev}" in
            -o|--output)
                COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml)' -- ${cur}) )
                return 0
                ;;
            *)
                opts="-o --output -h --help"
                COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
                return 0
                ;;
        esac
    fi

    # Options for completion command
    if [[ ${COMP_WORDS[1]} == "completion" ]]; then
        if [[ ${COMP_CWORD} -eq 2 ]]; then
            opts="bash zsh fish"
            COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        fi
        return 0
    fi
}

complete -F _cratepack_completions cratepack
`
	fmt.Print(script)
	return nil
}

func (c *CompletionCmd) generateZsh() error {
	script := `#compdef cratepack

_cratepack() {
    local -a commands
    commands=(
        'pack:Pack an order and write a packed order'
        'init:Generate a default run configuration YAML file'
        'version:Show version information'
        'completion:Generate shell completion script'
    )

    local -a pack_opts
    pack_opts=(
        '(-o --output)'{-o,--output}'[Output file path]:output file:_files -g "*.json"'
        '--report[Print each variant'"'"'s center-of-gravity and utilization diagnostics]'
        '--dataset-dir[Write the info.json/order{N}.json dataset layout to this directory]:dataset directory:_files -/'
        '(-h --help)'{-h,--help}'[Show help]'
        '1:run configuration:_files -g "*.{yaml,yml,json}"'
    )

    local -a init_opts
    init_opts=(
        '(-o --output)'{-o,--output}'[Output YAML file path]:output file:_files -g "*.{yaml,yml}"'
        '(-h --help)'{-h,--help}'[Show help]'
    )

    local -a completion_shells
    completion_shells=(
        'bash:Generate bash completion'
        'zsh:Generate zsh completion'
        'fish:Generate fish completion'
    )

    _arguments -C \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                pack)
                    _arguments $pack_opts
                    ;;
                init)
                    _arguments $init_opts
                    ;;
                completion)
                    _describe 'shell' completion_shells
                    ;;
                version)
                    _arguments '(-h --help)'{-h,--help}'[Show help]'
                    ;;
            esac
            ;;
    esac
}

_cratepack
`
	fmt.Print(script)
	return nil
}

func (c *CompletionCmd) generateFish() error {
	script := `# fish completion for cratepack

# Main commands
complete -c cratepack -f -n "__fish_use_subcommand" -a "pack" -d "Pack an order and write a packed order"
complete -c cratepack -f -n "__fish_use_subcommand" -a "init" -d "Generate a default run configuration YAML file"
complete -c cratepack -f -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c cratepack -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

# pack command options
complete -c cratepack -f -n "__fish_seen_subcommand_from pack" -s o -l output -d "Output file path" -r -a "(__fish_complete_suffix .json)"
complete -c cratepack -f -n "__fish_seen_subcommand_from pack" -l report -d "Print each variant's center-of-gravity and utilization diagnostics"
complete -c cratepack -f -n "__fish_seen_subcommand_from pack" -l dataset-dir -d "Write the info.json/order{N}.json dataset layout to this directory" -r -a "(__fish_complete_directories)"
complete -c cratepack -f -n "__fish_seen_subcommand_from pack" -s h -l help -d "Show help"
complete -c cratepack -n "__fish_seen_subcommand_from pack" -a "(__fish_complete_suffix .yaml)" -d "run configuration"
complete -c cratepack -n "__fish_seen_subcommand_from pack" -a "(__fish_complete_suffix .yml)" -d "run configuration"
complete -c cratepack -n "__fish_seen_subcommand_from pack" -a "(__fish_complete_suffix .json)" -d "run configuration"

# init command options
complete -c cratepack -f -n "__fish_seen_subcommand_from init" -s o -l output -d "Output YAML file path" -r -a "(__fish_complete_suffix .yaml; __fish_complete_suffix .yml)"
complete -c cratepack -f -n "__fish_seen_subcommand_from init" -s h -l help -d "Show help"

# completion command options
complete -c cratepack -f -n "__fish_seen_subcommand_from completion" -a "bash" -d "Generate bash completion"
complete -c cratepack -f -n "__fish_seen_subcommand_from completion" -a "zsh" -d "Generate zsh completion"
complete -c cratepack -f -n "__fish_seen_subcommand_from completion" -a "fish" -d "Generate fish completion"

# version command options
complete -c cratepack -f -n "__fish_seen_subcommand_from version" -s h -l help -d "Show help"
`
	fmt.Print(script)
	return nil
}

func (c *CompletionCmd) Help() string {
	return `
Generate shell completion scripts for cratepack.

Examples:
  # Bash
  cratepack completion bash > /etc/bash_completion.d/cratepack
  # or
  cratepack completion bash > ~/.local/share/bash-completion/completions/cratepack

  # Zsh
  cratepack completion zsh > ~/.zsh/completion/_cratepack
  # or add to .zshrc:
  autoload -U compinit && compinit

  # Fish
  cratepack completion fish > ~/.config/fish/completions/cratepack.fish
`
}

// For testing purposes
func generateCompletionToFile(shell, filepath string) error {
	// Save current stdout
	oldStdout := os.Stdout

	// Create file
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	// Redirect stdout to file
	os.Stdout = file

	// Generate completion
	cmd := &CompletionCmd{Shell: shell}
	err = cmd.Run()

	// Restore stdout
	os.Stdout = oldStdout

	return err
}
