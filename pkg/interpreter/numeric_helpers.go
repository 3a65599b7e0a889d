package interpreter

import (
	"math"
	"math/big"

	"minipy/interpreter-go/pkg/runtime"
)

// maxStringRepeat bounds the length of a string built by `*`.
const maxStringRepeat = 1 << 30

func bigIntToFloat(val *big.Int) float64 {
	f, _ := new(big.Float).SetInt(val).Float64()
	return f
}

// numericToFloat promotes an Int or Float operand; ok is false for any
// other kind.
func numericToFloat(val runtime.Value) (float64, bool) {
	switch v := val.(type) {
	case runtime.IntValue:
		return bigIntToFloat(v.Val), true
	case runtime.FloatValue:
		return v.Val, true
	default:
		return 0, false
	}
}

func isNumericValue(val runtime.Value) bool {
	switch val.(type) {
	case runtime.IntValue, runtime.FloatValue:
		return true
	default:
		return false
	}
}

// floorModInt takes the sign of the divisor, as floored division requires.
func floorModInt(left, right *big.Int) *big.Int {
	rem := new(big.Int).Rem(left, right)
	if rem.Sign() != 0 && (rem.Sign() < 0) != (right.Sign() < 0) {
		rem.Add(rem, right)
	}
	return rem
}

// floorDivInt floors the float quotient and converts it back to an Int, so
// large operands lose precision the same way a float quotient does. Operands
// beyond float range have no finite quotient and are divided exactly.
func floorDivInt(left, right *big.Int) *big.Int {
	quotient := math.Floor(bigIntToFloat(left) / bigIntToFloat(right))
	if math.IsInf(quotient, 0) || math.IsNaN(quotient) {
		return exactFloorDivInt(left, right)
	}
	out, _ := big.NewFloat(quotient).Int(nil)
	return out
}

func exactFloorDivInt(left, right *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(left, right, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (right.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return q
}

func floorModFloat(left, right float64) float64 {
	mod := math.Mod(left, right)
	if mod != 0 {
		if (mod < 0) != (right < 0) {
			mod += right
		}
	} else {
		mod = math.Copysign(0, right)
	}
	return mod
}

// divideIntExact rounds the exact rational quotient to the nearest float.
func divideIntExact(left, right *big.Int) float64 {
	f, _ := new(big.Rat).SetFrac(left, right).Float64()
	return f
}
