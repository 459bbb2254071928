package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ablzw/ablzw"
	"github.com/ablzw/ablzw/bitio"
)

var decompressCmd = &cobra.Command{
	Use:   "decompress [input] [output]",
	Short: "Decompress an Adjusted-Binary LZW stream",
	Long: `Decompress reads an AB-LZW stream from input (or stdin, if omitted
or "-") and writes the original bytes to output (or stdout, if omitted or "-").

Examples:
  ablzw decompress data.ablzw data.bin
  cat data.ablzw | ablzw decompress > data.bin`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDecompress,
}

func init() {
	rootCmd.AddCommand(decompressCmd)
}

func runDecompress(cmd *cobra.Command, args []string) error {
	in, out, err := openStreams(args)
	if err != nil {
		return err
	}
	defer closeStreams(in, out)

	r := bufio.NewReader(in)
	w := bufio.NewWriter(out)

	source := bitio.FuncSource(func() int {
		b, err := r.ReadByte()
		if err != nil {
			return bitio.EOF
		}
		return int(b)
	})
	sink := bitio.FuncSink(func(b byte) error {
		return w.WriteByte(b)
	})

	if err := ablzw.Decompress(sink, source); err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	return w.Flush()
}
