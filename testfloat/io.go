// Copyright 2025 go-softfloat Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testfloat

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Compression is the codec applied to a vector file.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
)

// CompressionFor picks the codec from the file extension: ".zst" for zstd,
// ".gz" for gzip, anything else uncompressed.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return Zstd
	case ".gz":
		return Gzip
	}
	return None
}

// Reader reads vectors line by line.
type Reader struct {
	sc      *bufio.Scanner
	reg     *Registry
	closers []io.Closer
	line    int
}

// NewReader reads vectors from r, decompressing with c. When reg is not
// nil every vector is validated against its operation.
func NewReader(r io.Reader, c Compression, reg *Registry) (*Reader, error) {
	rd := &Reader{reg: reg}
	switch c {
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip stream")
		}
		rd.closers = append(rd.closers, zr)
		r = zr
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "open zstd stream")
		}
		rc := zr.IOReadCloser()
		rd.closers = append(rd.closers, rc)
		r = rc
	}
	rd.sc = bufio.NewScanner(r)
	return rd, nil
}

// Open opens a vector file, choosing the codec from its extension.
func Open(path string, reg *Registry) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open vector file")
	}
	rd, err := NewReader(f, CompressionFor(path), reg)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "read %s", path)
	}
	rd.closers = append(rd.closers, f)
	return rd, nil
}

// Next returns the next vector, or io.EOF after the last one.
func (r *Reader) Next() (Vector, error) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := ParseVector(text)
		if err != nil {
			return Vector{}, errors.Wrapf(err, "line %d", r.line)
		}
		if r.reg != nil {
			op, err := r.reg.Lookup(v.Op)
			if err != nil {
				return Vector{}, errors.Wrapf(err, "line %d", r.line)
			}
			if err := v.Validate(op); err != nil {
				return Vector{}, errors.Wrapf(err, "line %d", r.line)
			}
		}
		return v, nil
	}
	if err := r.sc.Err(); err != nil {
		return Vector{}, errors.Wrapf(err, "line %d", r.line+1)
	}
	return Vector{}, io.EOF
}

// ReadAll returns the remaining vectors.
func (r *Reader) ReadAll() ([]Vector, error) {
	var vs []Vector
	for {
		v, err := r.Next()
		if err == io.EOF {
			return vs, nil
		}
		if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
}

// Close releases the decompressor and the underlying file.
func (r *Reader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Writer writes vectors line by line. Values are padded to the widths of
// their operation when the registry knows it.
type Writer struct {
	bw      *bufio.Writer
	reg     *Registry
	closers []io.Closer
}

// NewWriter writes vectors to w, compressing with c.
func NewWriter(w io.Writer, c Compression, reg *Registry) (*Writer, error) {
	wr := &Writer{reg: reg}
	switch c {
	case Gzip:
		zw := gzip.NewWriter(w)
		wr.closers = append(wr.closers, zw)
		w = zw
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, errors.Wrap(err, "create zstd stream")
		}
		wr.closers = append(wr.closers, zw)
		w = zw
	}
	wr.bw = bufio.NewWriter(w)
	return wr, nil
}

// Create creates a vector file, choosing the codec from its extension.
func Create(path string, reg *Registry) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create vector file")
	}
	wr, err := NewWriter(f, CompressionFor(path), reg)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "write %s", path)
	}
	wr.closers = append(wr.closers, f)
	return wr, nil
}

// Comment writes a '#' line.
func (w *Writer) Comment(text string) error {
	_, err := w.bw.WriteString("# " + text + "\n")
	return errors.Wrap(err, "write comment")
}

// Write writes one vector.
func (w *Writer) Write(v Vector) error {
	var op *Op
	if w.reg != nil {
		op, _ = w.reg.Lookup(v.Op)
	}
	if _, err := w.bw.WriteString(v.Format(op) + "\n"); err != nil {
		return errors.Wrap(err, "write vector")
	}
	return nil
}

// Close flushes buffered vectors and closes the compressor and the
// underlying file.
func (w *Writer) Close() error {
	first := errors.Wrap(w.bw.Flush(), "flush vectors")
	for _, c := range w.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
