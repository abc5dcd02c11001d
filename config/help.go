package config

import (
	"fmt"
)

const HelpMessage = `UrbanCabz booking system

Usage:
  urbancabz [flags]

Flags:
  -config-path path   Path to the config yaml file (default "config.yaml")
  -help               Show this message

Configuration is read from the yaml file and the environment; environment
variables override file values.
`

func PrintHelp() {
	fmt.Printf("%s", HelpMessage)
}
