// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bodyfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/mwledger/mwd/blockchain"
	"github.com/mwledger/mwd/chaincfg"
)

// Streams of a body.
const (
	streamUtxoIn = iota
	streamUtxoOut
	streamKernelIn
	streamKernelOut
	streamHeaders
	numStreams
)

// suffixes are appended to the body path to name the file of each stream.
var suffixes = [numStreams]string{"ui", "uo", "ki", "ko", "hd"}

// ioBufferSize is the buffer size of every stream.
const ioBufferSize = 64 * 1024

// Paths returns the names of the files holding the body at path.
func Paths(path string) []string {
	paths := make([]string, numStreams)
	for i, suffix := range suffixes {
		paths[i] = path + suffix
	}
	return paths
}

// RW is a body stored in files.  A body created with Create is written
// sequentially and must be closed before it is opened with Open for reading.
//
// RW is not safe for concurrent use.  Use Clone to obtain an independent
// reader over the same files.
type RW struct {
	path     string
	rules    *chaincfg.Rules
	writable bool

	files   [numStreams]*os.File
	readers [numStreams]*bufio.Reader
	writers [numStreams]*bufio.Writer

	// The current element of each stream, nil once exhausted.
	in   *blockchain.Input
	out  *blockchain.Output
	kin  *blockchain.TxKernel
	kout *blockchain.TxKernel

	// err is the first read error.
	err error
}

// Ensure RW implements the stream interfaces.
var (
	_ blockchain.Reader = (*RW)(nil)
	_ blockchain.Writer = (*RW)(nil)
)

// openFiles opens the files of the body at path with the given flags.
func openFiles(path string, flag int) ([numStreams]*os.File, error) {
	var files [numStreams]*os.File
	for i, name := range Paths(path) {
		f, err := os.OpenFile(name, flag, 0600)
		if err != nil {
			for _, opened := range files[:i] {
				opened.Close()
			}
			return files, err
		}
		files[i] = f
	}
	return files, nil
}

// Create creates the files of a body at path for writing, truncating any
// existing ones.
func Create(path string, rules *chaincfg.Rules) (*RW, error) {
	files, err := openFiles(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return nil, err
	}
	rw := &RW{path: path, rules: rules, writable: true, files: files}
	for i, f := range files {
		rw.writers[i] = bufio.NewWriterSize(f, ioBufferSize)
	}
	log.Debugf("Created body %s", path)
	return rw, nil
}

// Open opens the files of the body at path for reading and positions every
// element stream at its first element.  A body produced under other rules is
// rejected with ErrRulesMismatch before any element is decoded.
func Open(path string, rules *chaincfg.Rules) (*RW, error) {
	files, err := openFiles(path, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	rw := &RW{path: path, rules: rules, files: files}
	for i, f := range files {
		rw.readers[i] = bufio.NewReaderSize(f, ioBufferSize)
	}
	if err := rw.checkRules(); err != nil {
		rw.Close()
		return nil, err
	}
	rw.Reset()
	log.Debugf("Opened body %s", path)
	return rw, nil
}

// Path returns the path prefix of the files of the body.
func (rw *RW) Path() string {
	return rw.path
}

// Flush writes any buffered data to the files.
func (rw *RW) Flush() error {
	if !rw.writable {
		return nil
	}
	for i, w := range rw.writers {
		if err := w.Flush(); err != nil {
			return fmt.Errorf("%s: %w", rw.path+suffixes[i], err)
		}
	}
	return nil
}

// Close flushes a body created for writing and closes its files.
func (rw *RW) Close() error {
	err := rw.Flush()
	for i, f := range rw.files {
		if f == nil {
			continue
		}
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%s: %w", rw.path+suffixes[i], cerr)
		}
		rw.files[i] = nil
	}
	return err
}

// Delete closes the body and removes its files.
func (rw *RW) Delete() error {
	err := rw.Close()
	for _, name := range Paths(rw.path) {
		if rerr := os.Remove(name); rerr != nil && !errors.Is(rerr, os.ErrNotExist) && err == nil {
			err = rerr
		}
	}
	log.Debugf("Deleted body %s", rw.path)
	return err
}

// Clone opens the same body again for reading.
func (rw *RW) Clone() (blockchain.Reader, error) {
	if rw.writable {
		return nil, makeError(ErrNotReadable, fmt.Sprintf("body %s is "+
			"open for writing", rw.path))
	}
	return Open(rw.path, rw.rules)
}

// setErr records the first read error of the given stream.
func (rw *RW) setErr(stream int, err error) {
	if rw.err == nil {
		rw.err = fmt.Errorf("%s: %w", rw.path+suffixes[stream], err)
	}
}

// Err returns the first error encountered while reading, if any.  An
// exhausted stream is not an error.
func (rw *RW) Err() error {
	return rw.err
}

// restart positions the given stream at the beginning of its file.
func (rw *RW) restart(stream int) bool {
	if rw.files[stream] == nil {
		rw.setErr(stream, os.ErrClosed)
		return false
	}
	if _, err := rw.files[stream].Seek(0, io.SeekStart); err != nil {
		rw.setErr(stream, err)
		return false
	}
	rw.readers[stream].Reset(rw.files[stream])
	return true
}

// load decodes the next element of the given stream.  It returns false
// once the stream is exhausted or fails.
func (rw *RW) load(stream int, decode func(io.Reader) error) bool {
	if rw.err != nil || rw.readers[stream] == nil {
		return false
	}
	r := rw.readers[stream]
	if _, err := r.Peek(1); err != nil {
		if !errors.Is(err, io.EOF) {
			rw.setErr(stream, err)
		}
		return false
	}
	if err := decode(r); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		rw.setErr(stream, err)
		return false
	}
	return true
}

// Reset positions every element stream at its first element and clears
// any previous read error.
func (rw *RW) Reset() {
	if rw.writable {
		rw.err = makeError(ErrNotReadable, fmt.Sprintf("body %s is open "+
			"for writing", rw.path))
		return
	}
	rw.err = nil
	for stream := streamUtxoIn; stream <= streamKernelOut; stream++ {
		if !rw.restart(stream) {
			return
		}
	}
	rw.NextUtxoIn()
	rw.NextUtxoOut()
	rw.NextKernelIn()
	rw.NextKernelOut()
}

// UtxoIn returns the current input.
func (rw *RW) UtxoIn() *blockchain.Input {
	return rw.in
}

// NextUtxoIn advances to the next input.
func (rw *RW) NextUtxoIn() {
	in := new(blockchain.Input)
	rw.in = nil
	if rw.load(streamUtxoIn, in.Deserialize) {
		rw.in = in
	}
}

// UtxoOut returns the current output.
func (rw *RW) UtxoOut() *blockchain.Output {
	return rw.out
}

// NextUtxoOut advances to the next output.
func (rw *RW) NextUtxoOut() {
	out := new(blockchain.Output)
	rw.out = nil
	if rw.load(streamUtxoOut, out.Deserialize) {
		rw.out = out
	}
}

// KernelIn returns the current consumed kernel.
func (rw *RW) KernelIn() *blockchain.TxKernel {
	return rw.kin
}

// NextKernelIn advances to the next consumed kernel.
func (rw *RW) NextKernelIn() {
	k := new(blockchain.TxKernel)
	rw.kin = nil
	if rw.load(streamKernelIn, k.Deserialize) {
		rw.kin = k
	}
}

// KernelOut returns the current produced kernel.
func (rw *RW) KernelOut() *blockchain.TxKernel {
	return rw.kout
}

// NextKernelOut advances to the next produced kernel.
func (rw *RW) NextKernelOut() {
	k := new(blockchain.TxKernel)
	rw.kout = nil
	if rw.load(streamKernelOut, k.Deserialize) {
		rw.kout = k
	}
}

// writer returns the writer of the given stream.
func (rw *RW) writer(stream int) (io.Writer, error) {
	if !rw.writable {
		return nil, makeError(ErrNotWritable, fmt.Sprintf("body %s is "+
			"open for reading", rw.path))
	}
	return rw.writers[stream], nil
}

// WriteIn appends an input to the body.
func (rw *RW) WriteIn(in *blockchain.Input) error {
	w, err := rw.writer(streamUtxoIn)
	if err != nil {
		return err
	}
	return in.Serialize(w)
}

// WriteOut appends an output to the body.
func (rw *RW) WriteOut(out *blockchain.Output) error {
	w, err := rw.writer(streamUtxoOut)
	if err != nil {
		return err
	}
	return out.Serialize(w)
}

// WriteKernelIn appends a consumed kernel to the body.
func (rw *RW) WriteKernelIn(k *blockchain.TxKernel) error {
	w, err := rw.writer(streamKernelIn)
	if err != nil {
		return err
	}
	return k.Serialize(w)
}

// WriteKernelOut appends a produced kernel to the body.
func (rw *RW) WriteKernelOut(k *blockchain.TxKernel) error {
	w, err := rw.writer(streamKernelOut)
	if err != nil {
		return err
	}
	return k.Serialize(w)
}

// PutStart writes the rules checksum, the body base and the prefix of the
// first header.  It must precede any call to PutNextHdr.
func (rw *RW) PutStart(bb *blockchain.BodyBase, prefix *blockchain.HeaderPrefix) error {
	w, err := rw.writer(streamHeaders)
	if err != nil {
		return err
	}
	checksum := rw.rules.Checksum()
	if _, err := w.Write(checksum[:]); err != nil {
		return err
	}
	if err := bb.Serialize(w); err != nil {
		return err
	}
	return prefix.Serialize(w)
}

// PutNextHdr appends a header element.
func (rw *RW) PutNextHdr(e *blockchain.HeaderElement) error {
	w, err := rw.writer(streamHeaders)
	if err != nil {
		return err
	}
	return e.Serialize(w)
}

// checkRules positions the header stream at the beginning of its file and
// reads the rules checksum the body was produced under.  The header stream
// is left just past the checksum.
func (rw *RW) checkRules() error {
	if rw.files[streamHeaders] == nil {
		return fmt.Errorf("%s: %w", rw.path+suffixes[streamHeaders], os.ErrClosed)
	}
	if _, err := rw.files[streamHeaders].Seek(0, io.SeekStart); err != nil {
		return err
	}
	r := rw.readers[streamHeaders]
	r.Reset(rw.files[streamHeaders])

	var checksum chainhash.Hash
	if _, err := io.ReadFull(r, checksum[:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("%s: %w", rw.path+suffixes[streamHeaders], err)
	}
	if want := rw.rules.Checksum(); checksum != want {
		str := fmt.Sprintf("body %s was produced under rules %v, want %s "+
			"rules %v", rw.path, checksum, rw.rules.Name, want)
		return makeError(ErrRulesMismatch, str)
	}
	return nil
}

// Start reads the body base and the prefix of the first header and
// positions the header stream at the first element.  A body produced under
// other rules is rejected with ErrRulesMismatch.  Start may be called again
// to reread the headers.
func (rw *RW) Start(bb *blockchain.BodyBase, prefix *blockchain.HeaderPrefix) error {
	if rw.writable {
		return makeError(ErrNotReadable, fmt.Sprintf("body %s is open "+
			"for writing", rw.path))
	}
	if err := rw.checkRules(); err != nil {
		return err
	}
	r := rw.readers[streamHeaders]
	if err := bb.Deserialize(r); err != nil {
		return fmt.Errorf("%s: %w", rw.path+suffixes[streamHeaders], err)
	}
	if err := prefix.Deserialize(r); err != nil {
		return fmt.Errorf("%s: %w", rw.path+suffixes[streamHeaders], err)
	}
	return nil
}

// NextHdr reads the next header element.  It returns false once the
// headers are exhausted.
func (rw *RW) NextHdr(e *blockchain.HeaderElement) (bool, error) {
	if rw.writable {
		return false, makeError(ErrNotReadable, fmt.Sprintf("body %s is "+
			"open for writing", rw.path))
	}
	r := rw.readers[streamHeaders]
	if _, err := r.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	if err := e.Deserialize(r); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return false, fmt.Errorf("%s: %w", rw.path+suffixes[streamHeaders], err)
	}
	return true, nil
}
