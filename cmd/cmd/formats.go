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
	"encoding/hex"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ostafen/fileinfo/internal/format"
)

func DefineFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List all supported image formats",
		Long: `The 'formats' command displays a table of the image formats recognized by the 'image' command.
Each format includes its name, associated file extensions, description and the magic byte signatures used for detection.
Formats are listed in detection order.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunFormats,
	}
}

func RunFormats(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXT\tDESC\tSIGNATURES")

	for _, hdr := range format.Headers() {
		signatures := make([]string, len(hdr.Signatures))
		for i, sig := range hdr.Signatures {
			signatures[i] = hex.EncodeToString(sig)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			hdr.Format,
			strings.Join(hdr.Exts, ","),
			hdr.Description,
			strings.Join(signatures, ","),
		)
	}
	return w.Flush()
}
