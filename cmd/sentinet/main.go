package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sentinet/internal/logging"
	"sentinet/internal/theme"
)

var flags *pflag.FlagSet

var (
	cfgPathFlag string
	limitFlag   int
	topFlag     int
	quietFlag   bool
)

func init() {
	resetFlags()
}

// Explicitly define a method to facilitate tests
func resetFlags() {
	flags = &pflag.FlagSet{}

	flags.StringVarP(&cfgPathFlag, "config", "c", "./sentinet.yaml", "sentinet config path")
	flags.IntVarP(&limitFlag, "limit", "n", 20, "number of runs to list")
	flags.IntVarP(&topFlag, "top", "t", 20, "number of polarity words per side")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "suppress progress output")
}

func attachFlags(cmd *cobra.Command, names []string) {
	cmdFlags := cmd.Flags()
	for _, name := range names {
		if flag := flags.Lookup(name); flag != nil {
			cmdFlags.AddFlag(flag)
		} else {
			panic(fmt.Errorf("could not find flag '%s' to attach to command '%s'", name, cmd.Name()))
		}
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sentinet",
		Short:         "binary sentiment classifier over a polarity-filtered vocabulary",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, _ []string) {
			theme.PrintBanner(cmd.OutOrStdout())
			_ = cmd.Help()
		},
	}
	root.AddCommand(initCMD(), importCMD(), trainCMD(), predictCMD(), vocabCMD(), runsCMD())
	return root
}

func main() {
	defer logging.Sync()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
