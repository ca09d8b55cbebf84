// Package seqio streams DNA records from FASTA or FASTQ files, gzip
// transparent, for internal/index.Index.AddKmers to consume. Grounded on
// davidebolo1993-kfilt's openFile/detectFormat/parseFastaRecord/
// parseFastqRecord: the same gzip-suffix-sniffing open and
// bufio.Scanner-based record parsing, adapted to a pull-based Reader
// instead of that tool's whole-file read-and-filter loop, since add_kmers
// wants one record's sequence at a time rather than a buffered read set.
package seqio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format is the two record formats this package understands.
type Format int

const (
	// FASTA records: a ">name" header line followed by one sequence line.
	FASTA Format = iota
	// FASTQ records: "@name", sequence, "+", quality, four lines each.
	FASTQ
)

func (f Format) String() string {
	if f == FASTQ {
		return "fastq"
	}
	return "fasta"
}

// Record is one sequence read from an input file: a display name (header
// line, sigil stripped) and its raw base string, unmodified case and
// ambiguity codes intact — internal/kmer.Expand resolves those.
type Record struct {
	Name     string
	Sequence []byte
}

// Reader pulls one Record at a time from an underlying file. Since
// detecting the format consumes the first header line off the scanner
// and bufio.Scanner has no unread, that line is held in headerLine and
// fed to the first call to Next instead of being lost.
type Reader struct {
	scanner    *bufio.Scanner
	format     Format
	closer     io.Closer
	headerLine string
	headerUsed bool
}

// Open opens filename (transparently gzip-decompressing when it ends in
// ".gz") and sniffs its format from the first line's sigil,
// exactly as detectFormat does: '@' means FASTQ, '>' means FASTA.
func Open(filename string) (*Reader, error) {
	raw, err := openFile(filename)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(raw)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	format, header, err := sniffFormat(scanner)
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &Reader{scanner: scanner, format: format, closer: raw, headerLine: header}, nil
}

func openFile(filename string) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(filename, ".gz") {
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return gzReader, nil
	}
	return file, nil
}

func sniffFormat(scanner *bufio.Scanner) (Format, string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, "", err
		}
		return 0, "", fmt.Errorf("empty input")
	}
	line := scanner.Text()
	switch {
	case strings.HasPrefix(line, "@"):
		return FASTQ, line, nil
	case strings.HasPrefix(line, ">"):
		return FASTA, line, nil
	default:
		return 0, "", fmt.Errorf("could not detect file format (expected @ or > as first character)")
	}
}

// Format reports the format this reader detected.
func (r *Reader) Format() Format { return r.format }

// Close releases the underlying file (and gzip stream, if any).
func (r *Reader) Close() error { return r.closer.Close() }

// nextLine returns the sniffed header line on the very first call, then
// falls through to the scanner for everything after.
func (r *Reader) nextLine() (string, bool, error) {
	if !r.headerUsed {
		r.headerUsed = true
		return r.headerLine, true, nil
	}
	if !r.scanner.Scan() {
		return "", false, r.scanner.Err()
	}
	return r.scanner.Text(), true, nil
}

// Next reads one record, or returns ok=false at end of input. Malformed
// trailing partial records (header with no sequence line, etc.) are
// treated as end of input, not an error, matching parseFastaRecord/
// parseFastqRecord's !scanner.Scan() short-circuit.
func (r *Reader) Next() (Record, bool, error) {
	var rec Record
	header, ok, err := r.nextLine()
	if !ok || err != nil {
		return rec, false, err
	}
	if r.format == FASTQ {
		rec.Name = strings.TrimPrefix(header, "@")
		seq, ok, err := r.nextLine()
		if !ok || err != nil {
			return rec, false, err
		}
		rec.Sequence = []byte(seq)
		if _, ok, err := r.nextLine(); !ok || err != nil { // '+' separator line
			return rec, false, err
		}
		if _, ok, err := r.nextLine(); !ok || err != nil { // quality line
			return rec, false, err
		}
		return rec, true, nil
	}
	rec.Name = strings.TrimPrefix(header, ">")
	seq, ok, err := r.nextLine()
	if !ok || err != nil {
		return rec, false, err
	}
	rec.Sequence = []byte(seq)
	return rec, true, nil
}
