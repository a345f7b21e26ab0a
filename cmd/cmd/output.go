package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ostafen/fileinfo/internal/logger"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeFields prints name/value pairs as two aligned columns.
func writeFields(w io.Writer, fields [][2]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f[0], f[1])
	}
	return tw.Flush()
}

func joinFields(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func newLogger(cmd *cobra.Command) *logger.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.New(cmd.ErrOrStderr(), logger.ParseLevel(level))
}
