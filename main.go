package main

import (
	"github.com/deso-protocol/keccakcheck/cmd"
)

func main() {
	// Flags, environment variables, and the config file all go through viper. A command such as
	// "validate" triggers the matching function in the cmd package, e.g.:
	// $ echo -n abc | ./keccakcheck validate
	// runs Validate() in cmd/validate.go.
	cmd.Execute()
}
