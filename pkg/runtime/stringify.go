package runtime

import (
	"math"
	"strconv"
	"strings"
)

// ToString renders a value the way print shows it. It fails only for an
// object whose class slot does not hold a class.
func ToString(v Value) (string, error) {
	switch val := v.(type) {
	case NoneValue:
		return "None", nil
	case BoolValue:
		if val.Val {
			return "True", nil
		}
		return "False", nil
	case IntValue:
		if val.Val == nil {
			return "0", nil
		}
		return val.Val.String(), nil
	case FloatValue:
		return FormatFloat(val.Val), nil
	case ImaginaryValue:
		return formatComplex(val.Val), nil
	case StringValue:
		return val.Val, nil
	case TupleValue:
		return tupleToString(val)
	case *FunctionValue:
		return "<" + val.Name + ">", nil
	case *ClassValue:
		return "<class '__main__." + val.Name + "'>", nil
	case *ObjectValue:
		class, err := ClassOf(val)
		if err != nil {
			return "", err
		}
		return "<" + class.Name + " object>", nil
	default:
		return "<" + kindName(v) + ">", nil
	}
}

func tupleToString(t TupleValue) (string, error) {
	var b strings.Builder
	b.WriteByte('(')
	for idx, el := range t.Elements {
		if idx > 0 {
			b.WriteString(", ")
		}
		s, err := ToString(el)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	if len(t.Elements) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String(), nil
}

// FormatFloat produces the shortest text that round-trips, switching to
// exponent notation outside [1e-4, 1e16).
func FormatFloat(f float64) string {
	s, exponent := shortestFloat(f)
	if s != "" {
		return s
	}
	if exponent < -4 || exponent >= 16 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

// formatComplexPart is FormatFloat without the forced ".0".
func formatComplexPart(f float64) string {
	s, exponent := shortestFloat(f)
	if s != "" {
		return s
	}
	if exponent < -4 || exponent >= 16 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// shortestFloat returns the text for non-finite values, or the decimal
// exponent of a finite one.
func shortestFloat(f float64) (string, int) {
	switch {
	case math.IsNaN(f):
		return "nan", 0
	case math.IsInf(f, 1):
		return "inf", 0
	case math.IsInf(f, -1):
		return "-inf", 0
	case f == 0:
		return "", 0
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	idx := strings.LastIndexByte(sci, 'e')
	exponent, err := strconv.Atoi(sci[idx+1:])
	if err != nil {
		return "", 0
	}
	return "", exponent
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	if re == 0 && !math.Signbit(re) {
		return formatComplexPart(im) + "j"
	}
	sign := "+"
	if math.Signbit(im) {
		sign = "-"
		im = -im
	}
	return "(" + formatComplexPart(re) + sign + formatComplexPart(im) + "j)"
}
