//go:build !unix

package config

import (
	"os"

	"github.com/muesli/termenv"
)

func targetSpecificInit() {
	HOME, err := os.UserHomeDir()
	if err == nil {
		USER_HOME = HOME
	}

	NO_COLOR = termenv.EnvNoColor()
	SHOULD_COLORIZE = !NO_COLOR && termenv.EnvColorProfile() != termenv.Ascii
}
