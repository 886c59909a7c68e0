//go:build unix

package config

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

func targetSpecificInit() {
	// HOME

	HOME, err := os.UserHomeDir()
	if err == nil {
		if HOME[len(HOME)-1] != '/' {
			HOME += "/"
		}
		USER_HOME = HOME
	}

	// FORCE COLOR

	if s, ok := os.LookupEnv("FORCE_COLOR"); ok {
		FORCE_COLOR = len(s) != 0 && s != "false" && s != "0"
	}

	//NO_COLOR

	NO_COLOR = termenv.EnvNoColor()

	//TERM

	term := os.Getenv("TERM")
	if strings.Contains(term, "256color") {
		TERM_256COLOR_CAPABLE = true
	}

	//

	SHOULD_COLORIZE = !NO_COLOR && (FORCE_COLOR || TERM_256COLOR_CAPABLE || termenv.EnvColorProfile() != termenv.Ascii)
}
