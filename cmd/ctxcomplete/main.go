package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"unicode"

	"github.com/posener/complete/v2/install"
)

const (
	ERROR_STATUS_CODE = 1
	COMMAND_NAME      = "ctxcomplete"
)

func main() {
	//handle completions
	cmd.Complete(COMMAND_NAME)

	statusCode := _main(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr)
	if statusCode != 0 {
		os.Exit(statusCode)
	}
}

func _main(ctx context.Context, args []string, inR io.Reader, outW io.Writer, errW io.Writer) (statusCode int) {
	if len(args) == 1 {
		fmt.Fprint(errW, CMD_HELP)
		return ERROR_STATUS_CODE
	}

	mainSubCommand := args[1]
	mainSubCommandArgs := args[2:]

	//if the command has the shape help <subcommand> ... we modify the arguments to ask the subcommand to print its help message.
	if mainSubCommand == HELP_SUBCMD && len(mainSubCommandArgs) > 0 && mainSubCommandArgs[0] != "" && unicode.IsLetter(rune(mainSubCommandArgs[0][0])) {
		mainSubCommand = mainSubCommandArgs[0]
		mainSubCommandArgs = []string{"-h"}
	}

	switch mainSubCommand {
	case HELP_SUBCMD, "--help", "-h":
		fmt.Fprint(outW, CMD_HELP)
		return
	case INSTALL_COMPLETIONS_SUBCMD:
		err := install.Install(COMMAND_NAME)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, "installed")
		return
	case UNINSTALL_COMPLETIONS_SUBCMD:
		err := install.Uninstall(COMMAND_NAME)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, "uninstalled")
		return
	case KINDS_SUBCMD:
		return ListProviderKinds(outW, errW)
	case COMPLETE_SUBCMD:
		return Complete(ctx, mainSubCommand, mainSubCommandArgs, outW, errW)
	case SERVE_SUBCMD:
		return Serve(ctx, mainSubCommand, mainSubCommandArgs, inR, outW, errW)
	}

	if !slices.Contains(SUBCOMMANDS, mainSubCommand) {
		fmt.Fprintf(errW, "unknown command '%s'\n%s", mainSubCommand, CMD_HELP)
	}
	return ERROR_STATUS_CODE
}
