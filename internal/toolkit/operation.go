package toolkit

import (
	"fmt"

	apperrors "github.com/agbru/intcalc/internal/errors"
)

// Operation is a single toolkit function with its calling metadata.
type Operation interface {
	// Name is the unique identifier of the operation (e.g. "power-recursive").
	Name() string
	// Family groups variants that compute the same quantity (e.g. "power").
	Family() string
	// Description is a one-line summary for listings and help output.
	Description() string
	// Params names the arguments in call order. Its length is the arity.
	Params() []string
	// Valid reports whether args take the regular path rather than the
	// sentinel path. args must have the operation's arity.
	Valid(args []int32) bool
	// Evaluate runs the function. It fails on a wrong argument count and,
	// for depth-limited operations, on inputs recursing past
	// MaxRecursionDepth.
	Evaluate(args []int32) (int32, error)
}

// unaryOperation adapts a func(int32) int32.
type unaryOperation struct {
	name, family, description string
	param                     string
	fn                        func(int32) int32
	valid                     func(int32) bool
}

func (o *unaryOperation) Name() string        { return o.name }
func (o *unaryOperation) Family() string      { return o.family }
func (o *unaryOperation) Description() string { return o.description }
func (o *unaryOperation) Params() []string    { return []string{o.param} }

func (o *unaryOperation) Valid(args []int32) bool {
	if len(args) != 1 {
		return false
	}
	return o.valid == nil || o.valid(args[0])
}

func (o *unaryOperation) Evaluate(args []int32) (int32, error) {
	if err := checkArity(o, args); err != nil {
		return 0, err
	}
	return o.fn(args[0]), nil
}

// binaryOperation adapts a func(int32, int32) int32.
type binaryOperation struct {
	name, family, description string
	params                    [2]string
	fn                        func(int32, int32) int32
	valid                     func(int32, int32) bool
}

func (o *binaryOperation) Name() string        { return o.name }
func (o *binaryOperation) Family() string      { return o.family }
func (o *binaryOperation) Description() string { return o.description }
func (o *binaryOperation) Params() []string    { return o.params[:] }

func (o *binaryOperation) Valid(args []int32) bool {
	if len(args) != 2 {
		return false
	}
	return o.valid == nil || o.valid(args[0], args[1])
}

func (o *binaryOperation) Evaluate(args []int32) (int32, error) {
	if err := checkArity(o, args); err != nil {
		return 0, err
	}
	return o.fn(args[0], args[1]), nil
}

func checkArity(op Operation, args []int32) error {
	if want := len(op.Params()); len(args) != want {
		return apperrors.ValidationError{
			Field:   op.Name(),
			Message: fmt.Sprintf("expected %d argument(s) %v, got %d", want, op.Params(), len(args)),
		}
	}
	return nil
}

// MaxRecursionDepth bounds the call depth accepted by the recursive
// variants. A goroutine stack overflow is fatal to the whole process.
const MaxRecursionDepth = 1_000_000

// depthLimited refuses inputs whose recursion depth, the value of the
// argument at index param, exceeds MaxRecursionDepth.
type depthLimited struct {
	Operation
	param int
}

func (o *depthLimited) Evaluate(args []int32) (int32, error) {
	if err := checkArity(o, args); err != nil {
		return 0, err
	}
	if depth := args[o.param]; depth > MaxRecursionDepth {
		return 0, apperrors.ValidationError{
			Field:   o.Params()[o.param],
			Message: fmt.Sprintf("recursion depth %d exceeds the limit of %d", depth, MaxRecursionDepth),
		}
	}
	return o.Operation.Evaluate(args)
}

// WithDepthLimit wraps a recursive operation whose call depth equals its
// argument at index param.
func WithDepthLimit(op Operation, param int) Operation {
	if param < 0 || param >= len(op.Params()) {
		panic(fmt.Sprintf("toolkit: %s has no parameter %d", op.Name(), param))
	}
	return &depthLimited{Operation: op, param: param}
}

// Arity returns the number of arguments op expects.
func Arity(op Operation) int {
	return len(op.Params())
}

// NewUnary builds an Operation from a one-argument function. A nil valid
// means every input takes the regular path.
func NewUnary(name, family, description, param string, fn func(int32) int32, valid func(int32) bool) Operation {
	return &unaryOperation{name: name, family: family, description: description, param: param, fn: fn, valid: valid}
}

// NewBinary builds an Operation from a two-argument function.
func NewBinary(name, family, description string, params [2]string, fn func(int32, int32) int32, valid func(int32, int32) bool) Operation {
	return &binaryOperation{name: name, family: family, description: description, params: params, fn: fn, valid: valid}
}
