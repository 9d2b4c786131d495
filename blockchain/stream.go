// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"context"
	"fmt"
	"sort"
)

// Reader iterates the four element streams of a transaction or block body.
// Each stream yields its elements in canonical order and nil once it is
// exhausted.  Elements returned by a Reader are owned by it and are only
// valid until the stream is advanced.
//
// Readers backed by storage report failures through Err.  A stream that
// fails yields nil, so callers must consult Err whenever a stream ends.
type Reader interface {
	// Reset rewinds every stream to its first element.
	Reset()

	UtxoIn() *Input
	NextUtxoIn()
	UtxoOut() *Output
	NextUtxoOut()
	KernelIn() *TxKernel
	NextKernelIn()
	KernelOut() *TxKernel
	NextKernelOut()

	// Clone returns an independent reader over the same elements.
	Clone() (Reader, error)

	// Err returns the first I/O error encountered, if any.
	Err() error
}

// Writer receives elements for each of the four streams.
type Writer interface {
	WriteIn(in *Input) error
	WriteOut(out *Output) error
	WriteKernelIn(k *TxKernel) error
	WriteKernelOut(k *TxKernel) error
}

// TxVectors holds the four element streams in memory.
type TxVectors struct {
	Inputs     []*Input
	Outputs    []*Output
	KernelsIn  []*TxKernel
	KernelsOut []*TxKernel
}

// Sort puts every stream in canonical order.
func (v *TxVectors) Sort() {
	sort.Slice(v.Inputs, func(i, j int) bool {
		return v.Inputs[i].Cmp(v.Inputs[j]) < 0
	})
	sort.Slice(v.Outputs, func(i, j int) bool {
		return v.Outputs[i].Cmp(v.Outputs[j]) < 0
	})
	sort.Slice(v.KernelsIn, func(i, j int) bool {
		return v.KernelsIn[i].Cmp(v.KernelsIn[j]) < 0
	})
	sort.Slice(v.KernelsOut, func(i, j int) bool {
		return v.KernelsOut[i].Cmp(v.KernelsOut[j]) < 0
	})
}

// DeleteIntermediateOutputs removes every input that spends an output of
// the same vectors, along with that output, and returns the number of pairs
// removed.  Both streams must be sorted.
func (v *TxVectors) DeleteIntermediateOutputs() int {
	var ins []*Input
	var outs []*Output
	deleted := make([]bool, len(v.Outputs))
	n := 0

	j := 0
	for _, in := range v.Inputs {
		matched := false
		for ; j < len(v.Outputs); j++ {
			c := in.CmpCaM(&v.Outputs[j].CommitmentAndMaturity)
			if c > 0 {
				continue
			}
			if c == 0 {
				deleted[j] = true
				matched = true
				j++
				n++
			}
			break
		}
		if !matched {
			ins = append(ins, in)
		}
	}
	if n == 0 {
		return 0
	}
	for i, out := range v.Outputs {
		if !deleted[i] {
			outs = append(outs, out)
		}
	}
	v.Inputs, v.Outputs = ins, outs
	return n
}

// WriteIn appends an input.
func (v *TxVectors) WriteIn(in *Input) error {
	c := *in
	v.Inputs = append(v.Inputs, &c)
	return nil
}

// WriteOut appends an output.
func (v *TxVectors) WriteOut(out *Output) error {
	c := *out
	v.Outputs = append(v.Outputs, &c)
	return nil
}

// WriteKernelIn appends a consumed kernel.
func (v *TxVectors) WriteKernelIn(k *TxKernel) error {
	v.KernelsIn = append(v.KernelsIn, k.Clone())
	return nil
}

// WriteKernelOut appends a produced kernel.
func (v *TxVectors) WriteKernelOut(k *TxKernel) error {
	v.KernelsOut = append(v.KernelsOut, k.Clone())
	return nil
}

// Reader returns a reader over the vectors.
func (v *TxVectors) Reader() *VectorsReader {
	r := &VectorsReader{v: v}
	r.Reset()
	return r
}

// Cmp orders vectors stream by stream, first by length and then element
// by element.
func (v *TxVectors) Cmp(o *TxVectors) int {
	if n := cmpSlices(v.Inputs, o.Inputs, (*Input).Cmp); n != 0 {
		return n
	}
	if n := cmpSlices(v.Outputs, o.Outputs, (*Output).Cmp); n != 0 {
		return n
	}
	if n := cmpSlices(v.KernelsIn, o.KernelsIn, (*TxKernel).Cmp); n != 0 {
		return n
	}
	return cmpSlices(v.KernelsOut, o.KernelsOut, (*TxKernel).Cmp)
}

func cmpSlices[T any](a, b []*T, cmp func(*T, *T) int) int {
	if n := cmpUint64(uint64(len(a)), uint64(len(b))); n != 0 {
		return n
	}
	for i := range a {
		if n := cmp(a[i], b[i]); n != 0 {
			return n
		}
	}
	return 0
}

// VectorsReader is a Reader over in-memory vectors.
type VectorsReader struct {
	v   *TxVectors
	idx [4]int
}

func elemAt[T any](s []*T, i int) *T {
	if i >= len(s) {
		return nil
	}
	return s[i]
}

// Reset rewinds every stream.
func (r *VectorsReader) Reset() {
	r.idx = [4]int{}
}

// UtxoIn returns the current input.
func (r *VectorsReader) UtxoIn() *Input {
	return elemAt(r.v.Inputs, r.idx[0])
}

// NextUtxoIn advances the input stream.
func (r *VectorsReader) NextUtxoIn() {
	r.idx[0]++
}

// UtxoOut returns the current output.
func (r *VectorsReader) UtxoOut() *Output {
	return elemAt(r.v.Outputs, r.idx[1])
}

// NextUtxoOut advances the output stream.
func (r *VectorsReader) NextUtxoOut() {
	r.idx[1]++
}

// KernelIn returns the current consumed kernel.
func (r *VectorsReader) KernelIn() *TxKernel {
	return elemAt(r.v.KernelsIn, r.idx[2])
}

// NextKernelIn advances the consumed kernel stream.
func (r *VectorsReader) NextKernelIn() {
	r.idx[2]++
}

// KernelOut returns the current produced kernel.
func (r *VectorsReader) KernelOut() *TxKernel {
	return elemAt(r.v.KernelsOut, r.idx[3])
}

// NextKernelOut advances the produced kernel stream.
func (r *VectorsReader) NextKernelOut() {
	r.idx[3]++
}

// Err always returns nil since in-memory vectors cannot fail.
func (r *VectorsReader) Err() error {
	return nil
}

// Clone returns a fresh reader over the same vectors.
func (r *VectorsReader) Clone() (Reader, error) {
	return r.v.Reader(), nil
}

// Dump copies every element of r to w.
func Dump(w Writer, r Reader) error {
	r.Reset()
	for in := r.UtxoIn(); in != nil; in = r.UtxoIn() {
		if err := w.WriteIn(in); err != nil {
			return err
		}
		r.NextUtxoIn()
	}
	for out := r.UtxoOut(); out != nil; out = r.UtxoOut() {
		if err := w.WriteOut(out); err != nil {
			return err
		}
		r.NextUtxoOut()
	}
	for k := r.KernelIn(); k != nil; k = r.KernelIn() {
		if err := w.WriteKernelIn(k); err != nil {
			return err
		}
		r.NextKernelIn()
	}
	for k := r.KernelOut(); k != nil; k = r.KernelOut() {
		if err := w.WriteKernelOut(k); err != nil {
			return err
		}
		r.NextKernelOut()
	}
	return r.Err()
}

// Combine merges the sorted streams of several readers into w, keeping the
// result sorted.  An input cancels out an output with the same commitment
// and maturity, and a consumed kernel cancels out an identical produced
// kernel, in which case neither is written.
func Combine(ctx context.Context, w Writer, readers ...Reader) error {
	for _, r := range readers {
		r.Reset()
	}

	// UTXOs.
	for {
		if err := ctx.Err(); err != nil {
			return abortedError(err)
		}
		var in *Input
		var out *Output
		var iIn, iOut int
		for i, r := range readers {
			if pi := r.UtxoIn(); pi != nil && (in == nil || in.Cmp(pi) > 0) {
				in, iIn = pi, i
			}
			if po := r.UtxoOut(); po != nil && (out == nil || out.Cmp(po) > 0) {
				out, iOut = po, i
			}
		}
		if in == nil && out == nil {
			break
		}
		if in != nil && out != nil {
			n := in.CmpCaM(&out.CommitmentAndMaturity)
			if n == 0 {
				readers[iIn].NextUtxoIn()
				readers[iOut].NextUtxoOut()
				continue
			}
			if n > 0 {
				in = nil
			}
		}
		if in != nil {
			if err := w.WriteIn(in); err != nil {
				return err
			}
			readers[iIn].NextUtxoIn()
		} else {
			if err := w.WriteOut(out); err != nil {
				return err
			}
			readers[iOut].NextUtxoOut()
		}
	}

	// Kernels.
	for {
		if err := ctx.Err(); err != nil {
			return abortedError(err)
		}
		var in, out *TxKernel
		var iIn, iOut int
		for i, r := range readers {
			if pi := r.KernelIn(); pi != nil && (in == nil || in.Cmp(pi) > 0) {
				in, iIn = pi, i
			}
			if po := r.KernelOut(); po != nil && (out == nil || out.Cmp(po) > 0) {
				out, iOut = po, i
			}
		}
		if in == nil && out == nil {
			break
		}
		if in != nil && out != nil {
			n := in.Cmp(out)
			if n == 0 {
				readers[iIn].NextKernelIn()
				readers[iOut].NextKernelOut()
				continue
			}
			if n > 0 {
				in = nil
			}
		}
		if in != nil {
			if err := w.WriteKernelIn(in); err != nil {
				return err
			}
			readers[iIn].NextKernelIn()
		} else {
			if err := w.WriteKernelOut(out); err != nil {
				return err
			}
			readers[iOut].NextKernelOut()
		}
	}

	for i, r := range readers {
		if err := r.Err(); err != nil {
			return fmt.Errorf("combine reader %d: %w", i, err)
		}
	}
	return nil
}
