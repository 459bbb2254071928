package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ablzw/ablzw"
	"github.com/ablzw/ablzw/bitio"
)

var compressMaxbits int

var compressCmd = &cobra.Command{
	Use:   "compress [input] [output]",
	Short: "Compress a file (or stdin) with Adjusted-Binary LZW",
	Long: `Compress reads bytes from input (or stdin, if omitted or "-") and
writes the AB-LZW stream to output (or stdout, if omitted or "-").

Examples:
  ablzw compress data.bin data.ablzw
  cat data.bin | ablzw compress --maxbits 12 > data.ablzw`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCompress,
}

func init() {
	rootCmd.AddCommand(compressCmd)
	compressCmd.Flags().IntVar(&compressMaxbits, "maxbits", ablzw.MaxMaxBits,
		"maximum code width, 9-16")
}

func runCompress(cmd *cobra.Command, args []string) error {
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

	if err := ablzw.Compress(sink, source, compressMaxbits); err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	return w.Flush()
}

// openStreams resolves the optional [input] [output] positional args,
// defaulting either side to "-" (stdin/stdout) when omitted.
func openStreams(args []string) (io.ReadCloser, io.WriteCloser, error) {
	inPath, outPath := "-", "-"
	if len(args) > 0 {
		inPath = args[0]
	}
	if len(args) > 1 {
		outPath = args[1]
	}

	var in io.ReadCloser
	if inPath == "-" {
		in = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(inPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open input: %w", err)
		}
		in = f
	}

	var out io.WriteCloser
	if outPath == "-" {
		out = nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			in.Close()
			return nil, nil, fmt.Errorf("create output: %w", err)
		}
		out = f
	}

	return in, out, nil
}

func closeStreams(in io.ReadCloser, out io.WriteCloser) {
	in.Close()
	out.Close()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
