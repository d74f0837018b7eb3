package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbosity  int
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/conflictsweep/config.yaml)",
	)
	cmd.PersistentFlags().IntVarP(
		&globalFlags.Verbosity,
		"verbosity",
		"v",
		1,
		"log verbosity: 0 critical, 1 error, 2 warning, 3 information, 4 verbose, 5 debug",
	)
}

// GetGlobalFlags returns the global flags
func GetGlobalFlags() *GlobalFlags {
	return &globalFlags
}
