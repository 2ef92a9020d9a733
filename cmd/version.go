package cmd

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const unknownVersion = "unknown"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the confreport build version",
		Long:  "Prints the confreport release, the VCS revision it was built from and the Go toolchain version.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, _ := debug.ReadBuildInfo()
			return printVersion(cmd.OutOrStdout(), info)
		},
	}
}

func printVersion(w io.Writer, info *debug.BuildInfo) error {
	release, goVersion, revision := unknownVersion, unknownVersion, ""

	if info != nil {
		if info.Main.Version != "" {
			release = info.Main.Version
		}

		if info.GoVersion != "" {
			goVersion = info.GoVersion
		}

		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				revision = s.Value
			}
		}
	}

	if _, err := fmt.Fprintf(w, "confreport %s\n", release); err != nil {
		return err
	}

	if revision != "" {
		if _, err := fmt.Fprintf(w, "revision   %s\n", revision); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "go         %s\n", goVersion)

	return err
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
