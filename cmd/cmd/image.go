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

	"github.com/ostafen/fileinfo/internal/format"
)

func DefineImageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image <path>",
		Short: "Print the header metadata of a PNG, JPEG, BMP or GIF file",
		Long: `The 'image' command reads the first 64KB of a file, detects its format from the magic bytes
and prints the dimensions, channel count and pixel density stored in its header.
The image data itself is never decoded.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunImage,
	}

	cmd.Flags().Bool("json", false, "print the metadata as JSON")
	return cmd
}

func RunImage(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	md, err := format.SniffFile(args[0])
	if err != nil {
		if format.IsFormatError(err) {
			log.Debugf("%s: %s", args[0], err)
			return fmt.Errorf("%s: unknown format", args[0])
		}
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), md)
	}

	density := "-"
	if md.Density != nil {
		density = md.Density.String()
	}
	return writeFields(cmd.OutOrStdout(), [][2]string{
		{"Format", md.Format.String()},
		{"Width", fmt.Sprint(md.Width)},
		{"Height", fmt.Sprint(md.Height)},
		{"Channels", fmt.Sprint(md.Channels)},
		{"Density", density},
	})
}
