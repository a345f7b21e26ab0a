// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ostafen/fileinfo/internal/csvscan"
)

func DefineCSVCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv <path>",
		Short: "Print the structure of a CSV file",
		Long: `The 'csv' command counts the rows of a CSV file and prints its header and first data row.
Fields are split on commas only: quoted fields containing commas or newlines are not recognized.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunCSV,
	}

	cmd.Flags().Bool("json", false, "print the structure as JSON")
	return cmd
}

func RunCSV(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	md, err := csvscan.ScanFile(args[0])
	if err != nil {
		return err
	}
	if md.RowCount > 0 && md.ColumnCount == 0 {
		log.Warnf("%s: header line is empty", args[0])
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), md)
	}

	return writeFields(cmd.OutOrStdout(), [][2]string{
		{"Rows", fmt.Sprint(md.RowCount)},
		{"Columns", fmt.Sprint(md.ColumnCount)},
		{"Headers", joinFields(md.Headers)},
		{"First row", joinFields(md.FirstRow)},
	})
}
