package main

import (
	"flag"
	"fmt"
	"io"
	"slices"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

const (
	COMPLETE_SUBCMD              = "complete"
	SERVE_SUBCMD                 = "serve"
	KINDS_SUBCMD                 = "kinds"
	INSTALL_COMPLETIONS_SUBCMD   = "install-completions"
	UNINSTALL_COMPLETIONS_SUBCMD = "uninstall-completions"
	HELP_SUBCMD                  = "help"
)

var (
	SUBCOMMANDS = []string{
		COMPLETE_SUBCMD, SERVE_SUBCMD, KINDS_SUBCMD, INSTALL_COMPLETIONS_SUBCMD, UNINSTALL_COMPLETIONS_SUBCMD, HELP_SUBCMD,
	}

	SUBCOMMAND_DESCRIPTIONS = [][2]string{
		{COMPLETE_SUBCMD, "print the completions at a position of an analyzed document (JSON file with the tree and the semantic model)"},
		{SERVE_SUBCMD, "serve completion requests over JSON-RPC on stdin/stdout, documents are pushed with the ctxcompletion/setDocument notification"},
		{KINDS_SUBCMD, "list the node kinds having a completion provider"},
		{INSTALL_COMPLETIONS_SUBCMD, "install CLI completions by addding the completion command to the detected rc file (supported shells are bash, zsh and fish)"},
		{UNINSTALL_COMPLETIONS_SUBCMD, "uninstall CLI completions by removing the completion command from the detected rc file"},
		{HELP_SUBCMD, "show the general help or command-specific help"},
	}

	SUBCOMMAND_DESCRIPTION_MAP = map[string]string{}

	CMD_HELP = "commands:\n"

	cmd = &complete.Command{
		Sub: map[string]*complete.Command{
			COMPLETE_SUBCMD: {
				Flags: map[string]complete.Predictor{
					"offset":      predict.Nothing,
					"line":        predict.Nothing,
					"character":   predict.Nothing,
					"module":      predict.Nothing,
					"config":      predict.Files("*.yaml"),
					"max-items":   predict.Nothing,
					"no-snippets": predict.Nothing,
					"lsp":         predict.Nothing,
				},
				Args: predict.Files("*.json"),
			},
			SERVE_SUBCMD: {
				Flags: map[string]complete.Predictor{
					"config":      predict.Files("*.yaml"),
					"max-items":   predict.Nothing,
					"no-snippets": predict.Nothing,
				},
			},
			KINDS_SUBCMD:                 {},
			INSTALL_COMPLETIONS_SUBCMD:   {},
			UNINSTALL_COMPLETIONS_SUBCMD: {},
			HELP_SUBCMD:                  {},
		},
	}
)

func init() {
	for _, entry := range SUBCOMMAND_DESCRIPTIONS {
		subcmd, desc := entry[0], entry[1]
		SUBCOMMAND_DESCRIPTION_MAP[subcmd] = desc
		CMD_HELP += "\t" + subcmd + " - " + desc + "\n"
	}
	CMD_HELP += "\nType `" + COMMAND_NAME + " help <command>` to get command-specific help.\n"
}

// parseInterspersed parses the flags located before and after the positional arguments.
func parseInterspersed(flags *flag.FlagSet, args []string) (positional []string, _ error) {
	for {
		if err := flags.Parse(args); err != nil {
			return nil, err
		}
		args = flags.Args()
		if len(args) == 0 {
			return positional, nil
		}
		if args[0] == "--" {
			return append(positional, args[1:]...), nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func showHelp(flags *flag.FlagSet, args []string, out io.Writer) bool {
	//only show help
	if slices.Contains(args, "-h") || slices.Contains(args, "--help") {

		subcmd := flags.Name()
		if desc, ok := SUBCOMMAND_DESCRIPTION_MAP[subcmd]; ok {
			fmt.Fprintln(out, desc)
		}

		flags.SetOutput(out)
		fmt.Fprint(out, "\noptions:\n")
		flags.PrintDefaults()

		return true
	}

	return false
}
