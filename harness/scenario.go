// Copyright 2025 go-highway Authors
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

package harness

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/ajroetker/go-fixvec/vector"
)

// Args holds the scalar arguments drawn for one trial.
type Args struct {
	Scalar  int32
	ScalarF float32
	Shift   uint
	Acc     int32
	AccF    float32
}

// ResultKind tells which field of a Result is meaningful.
type ResultKind uint8

const (
	// NoResult marks operations that only write vectors.
	NoResult ResultKind = iota
	// IntResult marks reductions returning int32.
	IntResult
	// FloatResult marks reductions returning float32.
	FloatResult
)

// Result is the scalar outcome of a reduction or accumulation.
type Result struct {
	Kind  ResultKind
	Int   int32
	Float float32
}

func (r Result) String() string {
	switch r.Kind {
	case IntResult:
		return fmt.Sprint(r.Int)
	case FloatResult:
		return fmt.Sprint(r.Float)
	default:
		return "-"
	}
}

// Call runs one operation on b. in holds the input vectors and out the
// output vector, or nil for reductions.
type Call func(b Backend, in []*vector.Vector, out *vector.Vector, args Args) (Result, error)

// Scenario is one (operation, dtype) pair under test.
type Scenario struct {
	Name  string
	Op    string
	DType vector.DType
	// Out is the dtype of the output vector when HasOut is set.
	Out    vector.DType
	HasOut bool
	// Inputs is the number of input vectors, all of type DType.
	Inputs int
	// Alias makes the dispatch call write into its first input.
	Alias bool
	Args  func(src *Source, dt vector.DType) Args
	Call  Call
}

type outKind uint8

const (
	outNone outKind = iota
	outSame
	outWiden
)

type opDef struct {
	name   string
	inputs int
	out    outKind
	alias  bool
	args   func(src *Source, dt vector.DType) Args
	call   Call
}

func scalarArgs(src *Source, dt vector.DType) Args {
	return Args{Scalar: src.Scalar(dt)}
}

func shiftArgs(src *Source, dt vector.DType) Args {
	return Args{Shift: src.Shift(dt)}
}

func scalarShiftArgs(src *Source, dt vector.DType) Args {
	return Args{Scalar: src.Scalar(dt), Shift: src.Shift(dt)}
}

func floatArgs(src *Source, _ vector.DType) Args {
	return Args{ScalarF: src.Float()}
}

func binaryDef(name string, f func(b Backend, x, y, out *vector.Vector) error) opDef {
	return opDef{
		name:   name,
		inputs: 2,
		out:    outSame,
		alias:  true,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, _ Args) (Result, error) {
			return Result{}, f(b, in[0], in[1], out)
		},
	}
}

func unaryDef(name string, alias bool, f func(b Backend, x, out *vector.Vector) error) opDef {
	return opDef{
		name:   name,
		inputs: 1,
		out:    outSame,
		alias:  alias,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, _ Args) (Result, error) {
			return Result{}, f(b, in[0], out)
		},
	}
}

func fillDef(name string, args func(*Source, vector.DType) Args, f func(b Backend, v *vector.Vector, args Args) error) opDef {
	return opDef{
		name: name,
		out:  outSame,
		args: args,
		call: func(b Backend, _ []*vector.Vector, out *vector.Vector, args Args) (Result, error) {
			return Result{}, f(b, out, args)
		},
	}
}

var opDefs = []opDef{
	binaryDef("add", Backend.Add),
	binaryDef("sub", Backend.Sub),
	binaryDef("and", Backend.And),
	binaryDef("or", Backend.Or),
	binaryDef("xor", Backend.Xor),
	binaryDef("max", Backend.Max),
	binaryDef("min", Backend.Min),
	binaryDef("gt", Backend.Gt),
	binaryDef("lt", Backend.Lt),
	binaryDef("eq", Backend.Eq),
	{
		name: "mul", inputs: 2, out: outSame, alias: true, args: shiftArgs,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, a Args) (Result, error) {
			return Result{}, b.Mul(in[0], in[1], out, a.Shift)
		},
	},
	{
		name: "mul_widen", inputs: 2, out: outWiden,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, _ Args) (Result, error) {
			return Result{}, b.MulWiden(in[0], in[1], out)
		},
	},
	unaryDef("abs", true, Backend.Abs),
	unaryDef("neg", true, Backend.Neg),
	unaryDef("not", true, Backend.Not),
	unaryDef("copy", false, Backend.Copy),
	{
		name: "add_scalar", inputs: 1, out: outSame, alias: true, args: scalarArgs,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, a Args) (Result, error) {
			return Result{}, b.AddScalar(in[0], a.Scalar, out)
		},
	},
	{
		name: "add_scalar_f32", inputs: 1, out: outSame, alias: true, args: floatArgs,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, a Args) (Result, error) {
			return Result{}, b.AddScalarF32(in[0], a.ScalarF, out)
		},
	},
	{
		name: "mul_scalar", inputs: 1, out: outSame, alias: true, args: scalarShiftArgs,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, a Args) (Result, error) {
			return Result{}, b.MulScalar(in[0], a.Scalar, out, a.Shift)
		},
	},
	{
		name: "mul_scalar_f32", inputs: 1, out: outSame, alias: true, args: floatArgs,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, a Args) (Result, error) {
			return Result{}, b.MulScalarF32(in[0], a.ScalarF, out)
		},
	},
	{
		name: "ceil", inputs: 1, out: outSame, alias: true, args: scalarArgs,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, a Args) (Result, error) {
			return Result{}, b.Ceil(in[0], out, a.Scalar)
		},
	},
	{
		name: "ceil_f32", inputs: 1, out: outSame, alias: true, args: floatArgs,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, a Args) (Result, error) {
			return Result{}, b.CeilF32(in[0], out, a.ScalarF)
		},
	},
	{
		name: "floor", inputs: 1, out: outSame, alias: true, args: scalarArgs,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, a Args) (Result, error) {
			return Result{}, b.Floor(in[0], out, a.Scalar)
		},
	},
	{
		name: "floor_f32", inputs: 1, out: outSame, alias: true, args: floatArgs,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, a Args) (Result, error) {
			return Result{}, b.FloorF32(in[0], out, a.ScalarF)
		},
	},
	{
		name: "relu", inputs: 1, out: outSame, alias: true, args: scalarShiftArgs,
		call: func(b Backend, in []*vector.Vector, out *vector.Vector, a Args) (Result, error) {
			return Result{}, b.ReLU(in[0], out, a.Scalar, a.Shift)
		},
	},
	{
		name: "sum", inputs: 1,
		call: func(b Backend, in []*vector.Vector, _ *vector.Vector, _ Args) (Result, error) {
			s, err := b.Sum(in[0])
			return Result{Kind: IntResult, Int: s}, err
		},
	},
	{
		name: "sum_f32", inputs: 1,
		call: func(b Backend, in []*vector.Vector, _ *vector.Vector, _ Args) (Result, error) {
			s, err := b.SumF32(in[0])
			return Result{Kind: FloatResult, Float: s}, err
		},
	},
	{
		name: "dot", inputs: 2,
		call: func(b Backend, in []*vector.Vector, _ *vector.Vector, _ Args) (Result, error) {
			s, err := b.Dot(in[0], in[1])
			return Result{Kind: IntResult, Int: s}, err
		},
	},
	{
		name: "dot_f32", inputs: 2,
		call: func(b Backend, in []*vector.Vector, _ *vector.Vector, _ Args) (Result, error) {
			s, err := b.DotF32(in[0], in[1])
			return Result{Kind: FloatResult, Float: s}, err
		},
	},
	{
		name: "mac", inputs: 1,
		args: func(src *Source, dt vector.DType) Args {
			return Args{Scalar: src.Scalar(dt), Acc: src.Scalar(vector.Int32)}
		},
		call: func(b Backend, in []*vector.Vector, _ *vector.Vector, a Args) (Result, error) {
			acc := a.Acc
			err := b.MAC(in[0], &acc, a.Scalar)
			return Result{Kind: IntResult, Int: acc}, err
		},
	},
	{
		name: "mac_f32", inputs: 1,
		args: func(src *Source, _ vector.DType) Args {
			return Args{ScalarF: src.Float(), AccF: src.Float()}
		},
		call: func(b Backend, in []*vector.Vector, _ *vector.Vector, a Args) (Result, error) {
			acc := a.AccF
			err := b.MACF32(in[0], &acc, a.ScalarF)
			return Result{Kind: FloatResult, Float: acc}, err
		},
	},
	fillDef("zeros", nil, func(b Backend, v *vector.Vector, _ Args) error { return b.Zeros(v) }),
	fillDef("ones", nil, func(b Backend, v *vector.Vector, _ Args) error { return b.Ones(v) }),
	fillDef("fill", scalarArgs, func(b Backend, v *vector.Vector, a Args) error { return b.Fill(v, a.Scalar) }),
	fillDef("fill_f32", floatArgs, func(b Backend, v *vector.Vector, a Args) error { return b.FillF32(v, a.ScalarF) }),
}

func convertCall(b Backend, in []*vector.Vector, out *vector.Vector, _ Args) (Result, error) {
	return Result{}, b.Convert(in[0], out)
}

// Registry returns every scenario: each operation on every dtype (undefined
// pairs check that both layers report the same status), an aliased variant
// of every elementwise operation, and convert for every dtype pair.
func Registry() []Scenario {
	var out []Scenario
	for _, def := range opDefs {
		for _, dt := range vector.DTypes {
			sc := Scenario{
				Name:   def.name + "/" + dt.String(),
				Op:     def.name,
				DType:  dt,
				Out:    dt,
				HasOut: def.out != outNone,
				Inputs: def.inputs,
				Args:   def.args,
				Call:   def.call,
			}
			if def.out == outWiden {
				if wide, ok := vector.WidenTarget(dt); ok {
					sc.Out = wide
				}
			}
			out = append(out, sc)
			if def.alias {
				alias := sc
				alias.Name += "/alias"
				alias.Alias = true
				out = append(out, alias)
			}
		}
	}
	for _, src := range vector.DTypes {
		for _, dst := range vector.DTypes {
			out = append(out, Scenario{
				Name:   fmt.Sprintf("convert/%s->%s", src, dst),
				Op:     "convert",
				DType:  src,
				Out:    dst,
				HasOut: true,
				Inputs: 1,
				Call:   convertCall,
			})
		}
	}
	return out
}

// Ops returns the distinct operation names in registry order.
func Ops(scenarios []Scenario) []string {
	return lo.Uniq(lo.Map(scenarios, func(s Scenario, _ int) string { return s.Op }))
}

// Filter keeps the scenarios whose operation is in ops and whose dtype is in
// dtypes. An empty filter matches everything.
func Filter(scenarios []Scenario, ops []string, dtypes []vector.DType) []Scenario {
	return lo.Filter(scenarios, func(s Scenario, _ int) bool {
		return (len(ops) == 0 || lo.Contains(ops, s.Op)) &&
			(len(dtypes) == 0 || lo.Contains(dtypes, s.DType))
	})
}
