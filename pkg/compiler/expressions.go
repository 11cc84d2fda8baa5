package compiler

import (
	"github.com/p-sawicki/cplc/pkg/ir"
	"github.com/p-sawicki/cplc/pkg/lexer"
	"github.com/p-sawicki/cplc/pkg/parser"
)

func (c *Compiler) getSymbol(name string, line int) (*Symbol, error) {
	sym, ok := c.symbols.Get(name)
	if !ok {
		return nil, errorf(line, "Undefined identifier %s", name)
	}
	return sym, nil
}

func (c *Compiler) genExpression(expr parser.Expression) (ir.Value, error) {
	switch expr := expr.(type) {
	case *parser.Identifier:
		return c.genIdentifier(expr)
	case *parser.Constant:
		return c.genConstant(expr)
	case *parser.FunctionCall:
		return c.genFunctionCall(expr)
	case *parser.AbsoluteValue:
		return c.genAbsoluteValue(expr)
	case *parser.Complex:
		return c.genComplex(expr)
	case *parser.BinaryOperation:
		return c.genBinaryOperation(expr)
	case *parser.UnaryOperation:
		return c.genUnaryOperation(expr)
	case *parser.Disjunction:
		return c.genLogical(expr.LHS, expr.RHS, false)
	case *parser.Conjunction:
		return c.genLogical(expr.LHS, expr.RHS, true)
	case *parser.Negation:
		inner, err := c.genExpression(expr.Inner)
		if err != nil {
			return nil, err
		}
		return c.builder.CreateNot(inner), nil
	case *parser.Relation:
		return c.genRelation(expr)
	default:
		return nil, errorf(expr.Tok().Line, "Unsupported expression")
	}
}

func (c *Compiler) genIdentifier(expr *parser.Identifier) (ir.Value, error) {
	sym, err := c.getSymbol(expr.Name(), expr.Token.Line)
	if err != nil {
		return nil, err
	}
	typ, err := irType(sym.typ, expr.Token.Line)
	if err != nil {
		return nil, err
	}
	return c.builder.CreateLoad(typ, sym.storage), nil
}

func (c *Compiler) genConstant(expr *parser.Constant) (ir.Value, error) {
	switch expr.Type {
	case lexer.TypeInt:
		return ir.NewInt(expr.Token.Int), nil
	case lexer.TypeDouble:
		return ir.NewFloat(expr.Token.Float), nil
	case lexer.TypeString:
		return c.module.NewString(expr.Token.Text), nil
	default:
		return nil, errorf(expr.Token.Line, "Unsupported constant")
	}
}

// genRe lowers the built-in Re: identity on int and double, component
// extraction on complex.
func (c *Compiler) genRe(val ir.Value, line int) (ir.Value, error) {
	switch val.Type() {
	case ir.Int, ir.Double:
		return val, nil
	case ir.Complex:
		re, _ := c.complexComponents(val)
		return re, nil
	default:
		return nil, errorf(line, "Unsupported type in call to Re()")
	}
}

// genIm lowers the built-in Im: zero of the same type on int and double,
// component extraction on complex.
func (c *Compiler) genIm(val ir.Value, line int) (ir.Value, error) {
	switch val.Type() {
	case ir.Int:
		return intZero, nil
	case ir.Double:
		return doubleZero, nil
	case ir.Complex:
		_, im := c.complexComponents(val)
		return im, nil
	default:
		return nil, errorf(line, "Unsupported type in call to Im()")
	}
}

func (c *Compiler) genFunctionCall(expr *parser.FunctionCall) (ir.Value, error) {
	line := expr.Token.Line

	if expr.Token.Tag == lexer.RE || expr.Token.Tag == lexer.IM {
		if len(expr.Args) != 1 {
			return nil, errorf(line, "Incorrect number of parameters in call to %s()", expr.Token.Text)
		}
		arg, err := c.genExpression(expr.Args[0])
		if err != nil {
			return nil, err
		}
		if expr.Token.Tag == lexer.RE {
			return c.genRe(arg, line)
		}
		return c.genIm(arg, line)
	}

	name := expr.Token.Text
	fn := c.module.GetFunction(name)
	if fn == nil {
		return nil, errorf(line, "Function %s not defined", name)
	}
	if len(expr.Args) != len(fn.Params) {
		return nil, errorf(line, "Incorrect number of parameters in call to %s", name)
	}

	args := make([]ir.Value, len(expr.Args))
	for i, arg := range expr.Args {
		val, err := c.genExpression(arg)
		if err != nil {
			return nil, err
		}
		args[i], err = c.expand(val, fn.Params[i].Type(), line)
		if err != nil {
			return nil, err
		}
	}
	return c.builder.CreateCall(fn, args), nil
}

func (c *Compiler) genAbsoluteValue(expr *parser.AbsoluteValue) (ir.Value, error) {
	val, err := c.genExpression(expr.Inner)
	if err != nil {
		return nil, err
	}
	switch val.Type() {
	case ir.Int:
		abs := c.module.Intrinsic("llvm.abs.i64",
			&ir.FuncType{Return: ir.Int, Params: []ir.Type{ir.Int, ir.Bool}})
		return c.builder.CreateCall(abs, []ir.Value{val, boolFalse}), nil
	case ir.Double:
		fabs := c.module.Intrinsic("llvm.fabs.f64",
			&ir.FuncType{Return: ir.Double, Params: []ir.Type{ir.Double}})
		return c.builder.CreateCall(fabs, []ir.Value{val}), nil
	case ir.Complex:
		re, im := c.complexComponents(val)
		sum := c.builder.CreateFAdd(
			c.builder.CreateFMul(re, re), c.builder.CreateFMul(im, im))
		sqrt := c.module.Intrinsic("llvm.sqrt.f64",
			&ir.FuncType{Return: ir.Double, Params: []ir.Type{ir.Double}})
		return c.builder.CreateCall(sqrt, []ir.Value{sum}), nil
	default:
		return nil, errorf(expr.Inner.Tok().Line, "Unsupported type inside absolute value")
	}
}

// genComplex lowers an imaginary-unit wrapper: the real part is zero, the
// wrapped expression widens to double and becomes the imaginary part.
func (c *Compiler) genComplex(expr *parser.Complex) (ir.Value, error) {
	val, err := c.genExpression(expr.Imaginary)
	if err != nil {
		return nil, err
	}
	im, err := c.expand(val, ir.Double, expr.Token.Line)
	if err != nil {
		return nil, err
	}
	return c.complexValue(doubleZero, im), nil
}

func (c *Compiler) genBinaryOperation(expr *parser.BinaryOperation) (ir.Value, error) {
	line := expr.Token.Line
	lhs, err := c.genExpression(expr.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := c.genExpression(expr.RHS)
	if err != nil {
		return nil, err
	}
	common, err := maxType(lhs.Type(), rhs.Type(), line)
	if err != nil {
		return nil, err
	}
	if lhs, err = c.expand(lhs, common, line); err != nil {
		return nil, err
	}
	if rhs, err = c.expand(rhs, common, line); err != nil {
		return nil, err
	}

	switch common {
	case ir.Int:
		switch expr.Token.Tag {
		case lexer.PLUS:
			return c.builder.CreateAdd(lhs, rhs), nil
		case lexer.MINUS:
			return c.builder.CreateSub(lhs, rhs), nil
		case lexer.TIMES:
			return c.builder.CreateMul(lhs, rhs), nil
		case lexer.DIVIDE:
			return c.builder.CreateSDiv(lhs, rhs), nil
		}
	case ir.Double:
		switch expr.Token.Tag {
		case lexer.PLUS:
			return c.builder.CreateFAdd(lhs, rhs), nil
		case lexer.MINUS:
			return c.builder.CreateFSub(lhs, rhs), nil
		case lexer.TIMES:
			return c.builder.CreateFMul(lhs, rhs), nil
		case lexer.DIVIDE:
			return c.builder.CreateFDiv(lhs, rhs), nil
		}
	case ir.Complex:
		re1, im1 := c.complexComponents(lhs)
		re2, im2 := c.complexComponents(rhs)
		switch expr.Token.Tag {
		case lexer.PLUS:
			return c.complexValue(
				c.builder.CreateFAdd(re1, re2), c.builder.CreateFAdd(im1, im2)), nil
		case lexer.MINUS:
			return c.complexValue(
				c.builder.CreateFSub(re1, re2), c.builder.CreateFSub(im1, im2)), nil
		case lexer.TIMES:
			re, im := c.complexMul(re1, im1, re2, im2)
			return c.complexValue(re, im), nil
		case lexer.DIVIDE:
			return c.complexDiv(re1, im1, re2, im2), nil
		}
	}
	return nil, errorf(line, "Unsupported binary operator")
}

func (c *Compiler) genUnaryOperation(expr *parser.UnaryOperation) (ir.Value, error) {
	val, err := c.genExpression(expr.Inner)
	if err != nil {
		return nil, err
	}
	if expr.Token.Tag != lexer.MINUS {
		return val, nil
	}
	switch val.Type() {
	case ir.Int:
		return c.builder.CreateMul(val, minusOneInt), nil
	case ir.Double:
		return c.builder.CreateFMul(val, minusOneDouble), nil
	case ir.Complex:
		re, im := c.complexComponents(val)
		return c.complexValue(
			c.builder.CreateFMul(re, minusOneDouble),
			c.builder.CreateFMul(im, minusOneDouble)), nil
	default:
		return nil, errorf(expr.Token.Line, "Unsupported type for unary operator")
	}
}

// genLogical emits an eager and/or: both sides are evaluated.
func (c *Compiler) genLogical(lhs, rhs parser.Expression, conjunction bool) (ir.Value, error) {
	l, err := c.genExpression(lhs)
	if err != nil {
		return nil, err
	}
	r, err := c.genExpression(rhs)
	if err != nil {
		return nil, err
	}
	if conjunction {
		return c.builder.CreateAnd(l, r), nil
	}
	return c.builder.CreateOr(l, r), nil
}

var icmpPreds = map[lexer.Tag]string{
	lexer.EQ:  ir.PredEQ,
	lexer.NEQ: ir.PredNE,
	lexer.LT:  ir.PredSLT,
	lexer.LE:  ir.PredSLE,
	lexer.GT:  ir.PredSGT,
	lexer.GE:  ir.PredSGE,
}

var fcmpPreds = map[lexer.Tag]string{
	lexer.EQ:  ir.PredOEQ,
	lexer.NEQ: ir.PredONE,
	lexer.LT:  ir.PredOLT,
	lexer.LE:  ir.PredOLE,
	lexer.GT:  ir.PredOGT,
	lexer.GE:  ir.PredOGE,
}

func (c *Compiler) genRelation(expr *parser.Relation) (ir.Value, error) {
	line := expr.Token.Line
	lhs, err := c.genExpression(expr.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := c.genExpression(expr.RHS)
	if err != nil {
		return nil, err
	}
	common, err := maxType(lhs.Type(), rhs.Type(), line)
	if err != nil {
		return nil, err
	}
	if lhs, err = c.expand(lhs, common, line); err != nil {
		return nil, err
	}
	if rhs, err = c.expand(rhs, common, line); err != nil {
		return nil, err
	}

	switch common {
	case ir.Int:
		pred, ok := icmpPreds[expr.Token.Tag]
		if !ok {
			return nil, errorf(line, "Unsupported relational operator")
		}
		return c.builder.CreateICmp(pred, lhs, rhs), nil
	case ir.Double:
		pred, ok := fcmpPreds[expr.Token.Tag]
		if !ok {
			return nil, errorf(line, "Unsupported relational operator")
		}
		return c.builder.CreateFCmp(pred, lhs, rhs), nil
	case ir.Complex:
		return c.genComplexRelation(expr.Token.Tag, lhs, rhs, line)
	default:
		return nil, errorf(line, "Unsupported types for comparison operator")
	}
}

// genComplexRelation compares complex values lexicographically on
// (re, im).
func (c *Compiler) genComplexRelation(tag lexer.Tag, lhs, rhs ir.Value, line int) (ir.Value, error) {
	re1, im1 := c.complexComponents(lhs)
	re2, im2 := c.complexComponents(rhs)
	switch tag {
	case lexer.LT:
		return c.builder.CreateFCmp(ir.PredOLT, re1, re2), nil
	case lexer.LE:
		return c.builder.CreateOr(
			c.builder.CreateFCmp(ir.PredOLT, re1, re2),
			c.builder.CreateAnd(
				c.builder.CreateFCmp(ir.PredOEQ, re1, re2),
				c.builder.CreateFCmp(ir.PredOLE, im1, im2))), nil
	case lexer.EQ:
		return c.builder.CreateAnd(
			c.builder.CreateFCmp(ir.PredOEQ, re1, re2),
			c.builder.CreateFCmp(ir.PredOEQ, im1, im2)), nil
	case lexer.NEQ:
		return c.builder.CreateOr(
			c.builder.CreateFCmp(ir.PredONE, re1, re2),
			c.builder.CreateFCmp(ir.PredONE, im1, im2)), nil
	case lexer.GE:
		return c.builder.CreateOr(
			c.builder.CreateFCmp(ir.PredOGT, re1, re2),
			c.builder.CreateAnd(
				c.builder.CreateFCmp(ir.PredOEQ, re1, re2),
				c.builder.CreateFCmp(ir.PredOGE, im1, im2))), nil
	case lexer.GT:
		return c.builder.CreateFCmp(ir.PredOGT, re1, re2), nil
	default:
		return nil, errorf(line, "Unsupported relational operator")
	}
}
