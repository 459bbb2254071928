// Package ablzw implements the Adjusted-Binary LZW (AB-LZW) streaming
// compressor/decompressor: an LZW variant that transmits each symbol with
// a phase-in (adjusted-binary) variable-width code (see package phasein)
// over a dictionary that recycles its stalest leaf entries once full
// (see package dict), with a performance monitor that, once the
// dictionary is full, flushes it when the smoothed output/input bit
// ratio stays above 1. Output produced while the dictionary is still
// growing is not watched by the monitor, so inflation during that phase
// is not limited by it.
package ablzw

import (
	"errors"
	"fmt"

	"github.com/ablzw/ablzw/bitio"
	"github.com/ablzw/ablzw/dict"
	"github.com/ablzw/ablzw/phasein"
)

// Reserved symbol codes, mirrored from package dict for callers that only
// import ablzw.
const (
	Clear       = dict.Clear
	End         = dict.End
	FirstString = dict.FirstString
)

// MinMaxBits and MaxMaxBits bound the maxbits stream parameter.
const (
	MinMaxBits = 9
	MaxMaxBits = 16
)

// Error taxonomy. All are returned to the caller as-is (wrapped with
// context via %w); callers that only care whether the stream was valid
// can compare with errors.Is.
var (
	// ErrBadHeader indicates a maxbits header byte outside [9, 16].
	ErrBadHeader = errors.New("ablzw: bad header")
	// ErrBadCode indicates a decoded code referencing an unassigned
	// dictionary slot outside the KwKwK case.
	ErrBadCode = errors.New("ablzw: bad code")
	// ErrTruncated indicates the source ended before an END token.
	ErrTruncated = errors.New("ablzw: truncated stream")
	// ErrSinkFailed indicates the sink refused a byte.
	ErrSinkFailed = errors.New("ablzw: sink failed")
)

const noCode = ^uint32(0)

// Compress reads bytes from source and writes the AB-LZW bitstream for
// them to sink, using maxbits as the maximum code width (9..16). It
// writes the one-byte header described in §6, then the bit-packed symbol
// stream ending in End, then pads to a byte boundary.
func Compress(sink bitio.Sink, source bitio.Source, maxbits int) error {
	if maxbits < MinMaxBits || maxbits > MaxMaxBits {
		return fmt.Errorf("%w: maxbits %d out of range [%d, %d]", ErrBadHeader, maxbits, MinMaxBits, MaxMaxBits)
	}

	if err := sink.WriteByte(byte(maxbits)); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkFailed, err)
	}

	d := dict.New(maxbits)
	w := bitio.NewWriter(sink)
	mon := newMonitor()

	wCode := noCode
	// fresh is the code recycled after the most recent emission. The
	// decoder only performs that recycle after reading the next symbol,
	// so the next symbol must not be that code.
	fresh := noCode

	// emit packs code against the dictionary's current alphabet size and
	// returns the width actually used, so the monitor can see it.
	emit := func(code uint32) (uint, error) {
		pc, width := phasein.Encode(code, d.N())
		if err := w.WriteCode(pc, width); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrSinkFailed, err)
		}
		return width, nil
	}

	finish := func() error {
		if _, err := emit(dict.End); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("%w: %v", ErrSinkFailed, err)
		}
		return nil
	}

	for {
		b := source.ReadByte()
		if b == bitio.EOF {
			if wCode != noCode {
				if _, err := emit(wCode); err != nil {
					return err
				}
				// A code would have been reserved here had one more
				// input byte arrived, and the decoder always reserves
				// one regardless of how the stream ends; widen to
				// match so End decodes at the right width.
				if !d.Full() {
					d.BumpWidth()
				}
			}
			return finish()
		}

		if wCode == noCode {
			wCode = uint32(b)
			continue
		}

		if c, ok := d.Lookup(wCode, byte(b)); ok && c != fresh {
			wCode = c
			continue
		}

		length := d.Length(wCode)
		width, err := emit(wCode)
		if err != nil {
			return err
		}
		fresh = noCode

		switch {
		case d.Full() && mon.shouldFlush():
			if _, err := emit(dict.Clear); err != nil {
				return err
			}
			d.Reset()
			mon.reset()
		case d.Full():
			fresh = d.Recycle(wCode, byte(b))
			mon.update(true, float64(length)*8, float64(width))
		default:
			d.Insert(wCode, byte(b))
		}

		wCode = uint32(b)
	}
}

// Decompress reads an AB-LZW bitstream from source and writes the
// decompressed bytes to sink, following §4.6: read the header, then
// loop decoding one adjusted-binary symbol at a time, expanding it
// against the dictionary and mirroring the encoder's insert policy
// before reading the next one.
func Decompress(sink bitio.Sink, source bitio.Source) error {
	hb := source.ReadByte()
	if hb == bitio.EOF {
		return fmt.Errorf("%w: empty stream", ErrBadHeader)
	}
	maxbits := hb
	if maxbits < MinMaxBits || maxbits > MaxMaxBits {
		return fmt.Errorf("%w: maxbits %d out of range [%d, %d]", ErrBadHeader, maxbits, MinMaxBits, MaxMaxBits)
	}

	d := dict.New(maxbits)
	r := bitio.NewReader(source)

	prev := noCode
	var entry []byte
	stack := make([]uint32, 0, d.MaxStrings())

	for {
		c, ok := phasein.ReadSymbol(r, d.N())
		if !ok {
			return ErrTruncated
		}

		switch c {
		case dict.End:
			return nil
		case dict.Clear:
			d.Reset()
			prev = noCode
			continue
		}

		if c >= d.N() {
			return fmt.Errorf("%w: code %d out of range", ErrBadCode, c)
		}

		var first byte
		if pending, isPending := d.PendingCode(); isPending && c == pending {
			entry, first, stack = d.Expand(prev, entry[:0], stack)
			entry = append(entry, first)
		} else {
			entry, first, stack = d.Expand(c, entry[:0], stack)
		}

		for _, eb := range entry {
			if err := sink.WriteByte(eb); err != nil {
				return fmt.Errorf("%w: %v", ErrSinkFailed, err)
			}
		}

		if prev != noCode {
			if _, pending := d.PendingCode(); pending {
				d.Complete(first)
			} else {
				d.Recycle(prev, first)
			}
		}
		if !d.Full() {
			d.Reserve(c)
		}

		prev = c
	}
}
