// Command ablzw is a streaming compressor/decompressor for the
// Adjusted-Binary LZW format: see package github.com/ablzw/ablzw.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ablzw",
	Short: "Adjusted-Binary LZW compressor/decompressor",
	Long: `ablzw compresses and decompresses streams using Adjusted-Binary LZW,
an LZW variant that packs codes with a phase-in variable-width scheme and
recycles its dictionary's stalest entries once full, and flushes a full
dictionary when its output stays larger than its input.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
