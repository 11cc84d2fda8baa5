package compiler

import (
	"github.com/p-sawicki/cplc/pkg/ir"
	"github.com/p-sawicki/cplc/pkg/parser"
)

// genStatement emits one statement and returns the last value it produced.
// Callers inspect the value for *ir.Ret to detect arms that already
// returned.
func (c *Compiler) genStatement(stmt parser.Statement) (ir.Value, error) {
	switch stmt := stmt.(type) {
	case *parser.IfStatement:
		return c.genIf(stmt)
	case *parser.WhileStatement:
		return c.genWhile(stmt)
	case *parser.ReturnStatement:
		return c.genReturn(stmt)
	case *parser.VariableDefinition:
		return c.genVariableDefinition(stmt)
	case *parser.Assignment:
		return c.genAssignment(stmt)
	case *parser.FunctionDefinition:
		return c.genFunctionDefinition(stmt)
	case *parser.FunctionDeclaration:
		return c.genFunctionDeclaration(stmt)
	case *parser.Sequence:
		return c.genSequence(stmt)
	default:
		return nil, errorf(stmt.Tok().Line, "Unsupported statement")
	}
}

// genSequence emits statements in order, stopping after a return so that
// trailing dead statements never reach an unreachable block.
func (c *Compiler) genSequence(stmt *parser.Sequence) (ir.Value, error) {
	var last ir.Value
	for _, s := range stmt.Statements {
		val, err := c.genStatement(s)
		if err != nil {
			return nil, err
		}
		last = val
		if _, ok := s.(*parser.ReturnStatement); ok {
			break
		}
	}
	return last, nil
}

func (c *Compiler) genIf(stmt *parser.IfStatement) (ir.Value, error) {
	cond, err := c.genExpression(stmt.Condition)
	if err != nil {
		return nil, err
	}
	cond = c.builder.CreateICmp(ir.PredNE, cond, boolFalse)

	fn := c.function
	thenBlock := ir.NewBlock()
	fn.Append(thenBlock)
	contBlock := ir.NewBlock()
	elseBlock := contBlock
	if stmt.Else != nil {
		elseBlock = ir.NewBlock()
	}

	c.builder.CreateCondBr(cond, thenBlock, elseBlock)
	c.builder.SetInsertPoint(thenBlock)

	c.symbols.Push()
	then, err := c.genStatement(stmt.Then)
	c.symbols.Pop()
	if err != nil {
		return nil, err
	}
	if _, returned := then.(*ir.Ret); !returned {
		c.builder.CreateBr(contBlock)
	}

	if stmt.Else != nil {
		fn.Append(elseBlock)
		c.builder.SetInsertPoint(elseBlock)

		c.symbols.Push()
		elseVal, err := c.genStatement(stmt.Else)
		c.symbols.Pop()
		if err != nil {
			return nil, err
		}
		if _, returned := elseVal.(*ir.Ret); !returned {
			c.builder.CreateBr(contBlock)
		}
	}

	fn.Append(contBlock)
	c.builder.SetInsertPoint(contBlock)

	return boolTrue, nil
}

func (c *Compiler) genWhile(stmt *parser.WhileStatement) (ir.Value, error) {
	fn := c.function
	preCond := ir.NewBlock()
	fn.Append(preCond)
	c.builder.CreateBr(preCond)
	c.builder.SetInsertPoint(preCond)

	cond, err := c.genExpression(stmt.Condition)
	if err != nil {
		return nil, err
	}
	cond = c.builder.CreateICmp(ir.PredNE, cond, boolFalse)

	loop := ir.NewBlock()
	fn.Append(loop)
	contBlock := ir.NewBlock()

	c.builder.CreateCondBr(cond, loop, contBlock)
	c.builder.SetInsertPoint(loop)

	c.symbols.Push()
	body, err := c.genStatement(stmt.Body)
	c.symbols.Pop()
	if err != nil {
		return nil, err
	}
	if _, returned := body.(*ir.Ret); !returned {
		c.builder.CreateBr(preCond)
	}

	fn.Append(contBlock)
	c.builder.SetInsertPoint(contBlock)

	return boolTrue, nil
}

// genReturn widens the expression to the enclosing function's return type
// and emits the return.
func (c *Compiler) genReturn(stmt *parser.ReturnStatement) (ir.Value, error) {
	val, err := c.genExpression(stmt.Expr)
	if err != nil {
		return nil, err
	}
	val, err = c.expand(val, c.function.Return(), stmt.Token.Line)
	if err != nil {
		return nil, err
	}
	return c.builder.CreateRet(val), nil
}

func (c *Compiler) genAssignment(stmt *parser.Assignment) (ir.Value, error) {
	line := stmt.Target.Token.Line
	sym, err := c.getSymbol(stmt.Target.Name(), line)
	if err != nil {
		return nil, err
	}
	typ, err := irType(sym.typ, line)
	if err != nil {
		return nil, err
	}
	val, err := c.genExpression(stmt.Expr)
	if err != nil {
		return nil, err
	}
	val, err = c.expand(val, typ, line)
	if err != nil {
		return nil, err
	}
	c.builder.CreateStore(val, sym.storage)
	return val, nil
}

// genVariableDefinition allocates local storage at the function entry
// block so the allocation dominates all uses, or registers a deferred
// zero-initialized global at module scope.
func (c *Compiler) genVariableDefinition(stmt *parser.VariableDefinition) (ir.Value, error) {
	line := stmt.Target.Token.Line
	name := stmt.Target.Name()
	typ, err := irType(stmt.Target.Type, line)
	if err != nil {
		return nil, err
	}

	var storage ir.Value
	if c.function != nil {
		val, err := c.genExpression(stmt.Expr)
		if err != nil {
			return nil, err
		}
		val, err = c.expand(val, typ, line)
		if err != nil {
			return nil, err
		}
		storage = c.entryBlockAlloca(typ)
		c.builder.CreateStore(val, storage)
	} else {
		global := c.module.NewGlobal(name, typ)
		c.globals = append(c.globals, deferredGlobal{
			global: global,
			init:   stmt.Expr,
			typ:    stmt.Target.Type,
		})
		storage = global
	}

	c.symbols.Add(&Symbol{name: name, typ: stmt.Target.Type, storage: storage})
	return storage, nil
}

// entryBlockAlloca emits an allocation at the start of the current
// function's entry block.
func (c *Compiler) entryBlockAlloca(typ ir.Type) ir.Value {
	entry := ir.NewBuilder()
	entry.SetInsertPointAtStart(c.function.Entry())
	return entry.CreateAlloca(typ)
}
