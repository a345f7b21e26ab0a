package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ostafen/fileinfo/internal/env"
	"github.com/ostafen/fileinfo/pkg/sysinfo"
)

func DefineVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			PrintLogo(cmd.OutOrStdout())
		},
	}
}

func PrintLogo(w io.Writer) {
	fmt.Fprintln(w, "  __ _ _      _        __")
	fmt.Fprintln(w, " / _(_) | ___(_)_ __  / _| ___")
	fmt.Fprintln(w, "| |_| | |/ _ \\ | '_ \\| |_ / _ \\")
	fmt.Fprintln(w, "|  _| | |  __/ | | | |  _| (_) |")
	fmt.Fprintln(w, "|_| |_|_|\\___|_|_| |_|_|  \\___/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Image header and CSV structure inspector")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Version:    %s\n", env.Version)
	fmt.Fprintf(w, "Commit:     %s\n", env.CommitHash)
	fmt.Fprintf(w, "Build Time: %s\n", env.BuildTime)
	fmt.Fprintf(w, "Platform:   %s\n", sysinfo.Stat())
}
