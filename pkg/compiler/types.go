package compiler

import (
	"github.com/p-sawicki/cplc/pkg/ir"
	"github.com/p-sawicki/cplc/pkg/lexer"
)

var (
	boolFalse      = ir.NewBool(false)
	boolTrue       = ir.NewBool(true)
	intZero        = ir.NewInt(0)
	doubleZero     = ir.NewFloat(0)
	minusOneInt    = ir.NewInt(-1)
	minusOneDouble = ir.NewFloat(-1)
)

func irType(t lexer.TypeID, line int) (ir.Type, error) {
	switch t {
	case lexer.TypeInt:
		return ir.Int, nil
	case lexer.TypeDouble:
		return ir.Double, nil
	case lexer.TypeComplex:
		return ir.Complex, nil
	case lexer.TypeString:
		return ir.String, nil
	default:
		return nil, errorf(line, "Unsupported type")
	}
}

// maxType is the supremum of two types along INT < DOUBLE < COMPLEX.
// STRING is incomparable.
func maxType(a, b ir.Type, line int) (ir.Type, error) {
	if a == ir.String || b == ir.String {
		return nil, errorf(line, "Error - strings cannot be converted to other types")
	}
	if a == ir.Complex || b == ir.Complex {
		return ir.Complex, nil
	}
	if a == ir.Double || b == ir.Double {
		return ir.Double, nil
	}
	return ir.Int, nil
}

// expand widens val to the target type: INT to DOUBLE by signed
// conversion, DOUBLE to COMPLEX by building a {re, 0} record, INT to
// COMPLEX by composing the two. Any other conversion is an error.
func (c *Compiler) expand(val ir.Value, to ir.Type, line int) (ir.Value, error) {
	if val.Type() == to {
		return val, nil
	}
	if val.Type() == ir.Int {
		val = c.builder.CreateSIToFP(val)
	}
	switch to {
	case ir.Double:
		if val.Type() == ir.Double {
			return val, nil
		}
	case ir.Complex:
		if val.Type() == ir.Double {
			return c.complexValue(val, doubleZero), nil
		}
	}
	return nil, errorf(line, "Unsupported type conversion")
}
