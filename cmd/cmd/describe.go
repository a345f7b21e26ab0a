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
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ostafen/fileinfo/internal/presenter"
	"github.com/ostafen/fileinfo/pkg/pbar"
)

func DefineDescribeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <path> [<path>...]",
		Short: "Print a one-line summary of each file",
		Long: `The 'describe' command routes each file by extension: images (.png, .jpg, .jpeg, .bmp, .gif)
are sniffed, .csv files are scanned and any other file is reported by size only.
Files are processed in parallel; output keeps the order of the arguments.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunDescribe,
	}

	cmd.Flags().Int("parallel", 4, "number of files described at once")
	cmd.Flags().Duration("timeout", 0, "maximum time spent on a single file (0 means no limit)")
	cmd.Flags().Bool("json", false, "print the descriptions as JSON")
	cmd.Flags().Bool("progress", false, "show a progress bar on stderr")
	return cmd
}

func RunDescribe(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	parallel, _ := cmd.Flags().GetInt("parallel")
	if parallel <= 0 {
		return fmt.Errorf("parallel must be greater than 0")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	asJSON, _ := cmd.Flags().GetBool("json")
	showProgress, _ := cmd.Flags().GetBool("progress")

	var (
		progress *pbar.Progress
		onResult func(presenter.Result)
	)
	if showProgress {
		progress = pbar.New(cmd.ErrOrStderr(), len(args))
		onResult = func(res presenter.Result) {
			var size int64
			if res.Description != nil {
				size = res.Description.Size
			}
			progress.Add(size, res.Err != nil)
		}
	}

	results := presenter.DescribeAllFunc(context.Background(), args, parallel, timeout, onResult)
	if progress != nil {
		progress.Finish()
	}

	failed := 0
	descs := make([]*presenter.Description, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.Errorf("unable to describe %s: %s", res.Path, res.Err)
			continue
		}
		descs = append(descs, res.Description)
	}

	if asJSON {
		if err := writeJSON(cmd.OutOrStdout(), descs); err != nil {
			return err
		}
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, d := range descs {
			fmt.Fprintf(w, "%s\t%s\n", d.Path, d.Summary())
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	log.Infof("described %s", plural(len(descs), "file"))
	if failed > 0 {
		return errors.New(plural(failed, "file") + " could not be described")
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
