package runtime

import (
	"fmt"
	"math/big"

	"minipy/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindImaginary
	KindString
	KindTuple
	KindFunction
	KindClass
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NoneType"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindImaginary:
		return "complex"
	case KindString:
		return "str"
	case KindTuple:
		return "tuple"
	case KindFunction:
		return "function"
	case KindClass:
		return "type"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NoneValue struct{}

func (NoneValue) Kind() Kind { return KindNone }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// IntValue is an arbitrary precision integer. Val is never mutated after
// construction; operators always allocate a fresh big.Int.
type IntValue struct {
	Val *big.Int
}

func (v IntValue) Kind() Kind { return KindInt }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type ImaginaryValue struct {
	Val complex128
}

func (v ImaginaryValue) Kind() Kind { return KindImaginary }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Compound values
//-----------------------------------------------------------------------------

type TupleValue struct {
	Elements []Value
}

func (v TupleValue) Kind() Kind { return KindTuple }

// FunctionValue is a user function. It captures no environment: its body runs
// against an overlay of its parameters on the global frame.
type FunctionValue struct {
	Name   string
	Params []string
	Body   []ast.Statement
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

type ClassValue struct {
	Name  string
	Attrs *AttributeStore
}

func (v *ClassValue) Kind() Kind { return KindClass }

// ObjectValue keeps its class as a plain Value; anything other than a
// *ClassValue there is a malformed object.
type ObjectValue struct {
	Class Value
	Attrs *AttributeStore
}

func (v *ObjectValue) Kind() Kind { return KindObject }

//-----------------------------------------------------------------------------
// Constructors
//-----------------------------------------------------------------------------

var None = NoneValue{}

func NewInt(value int64) IntValue {
	return IntValue{Val: big.NewInt(value)}
}

func NewBigInt(value *big.Int) IntValue {
	if value == nil {
		return IntValue{Val: new(big.Int)}
	}
	return IntValue{Val: value}
}

func NewBool(value bool) BoolValue {
	return BoolValue{Val: value}
}

func NewString(value string) StringValue {
	return StringValue{Val: value}
}

func NewTuple(elements ...Value) TupleValue {
	return TupleValue{Elements: elements}
}

func NewFunction(name string, params []string, body []ast.Statement) *FunctionValue {
	return &FunctionValue{Name: name, Params: params, Body: body}
}

// NewClass wraps attrs; a nil store gets an empty one.
func NewClass(name string, attrs *AttributeStore) *ClassValue {
	if attrs == nil {
		attrs = NewAttributeStore()
	}
	return &ClassValue{Name: name, Attrs: attrs}
}

// NewObject creates an instance whose map is seeded with __class__.
func NewObject(class *ClassValue) *ObjectValue {
	attrs := NewAttributeStore()
	attrs.Set(ClassAttribute, class)
	return &ObjectValue{Class: class, Attrs: attrs}
}

// ClassAttribute names the instance binding that points back at the class.
const ClassAttribute = "__class__"

// Truthy applies the language's truthiness: Int 0, False and None are falsy,
// every other value is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case NoneValue:
		return false
	case BoolValue:
		return val.Val
	case IntValue:
		return val.Val != nil && val.Val.Sign() != 0
	default:
		return true
	}
}
