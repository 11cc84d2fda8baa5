package compiler

import (
	"github.com/p-sawicki/cplc/pkg/ir"
	"github.com/p-sawicki/cplc/pkg/lexer"
	"github.com/p-sawicki/cplc/pkg/parser"
)

// genFunctionDeclaration constructs the function type and declares it with
// external linkage. main must take no parameters and return int.
func (c *Compiler) genFunctionDeclaration(stmt *parser.FunctionDeclaration) (ir.Value, error) {
	line := stmt.Token.Line
	if stmt.Token.Tag != lexer.ID && stmt.Token.Tag != lexer.MAIN {
		return nil, errorf(line, "Cannot redefine reserved keyword %s", stmt.Token.Text)
	}
	if stmt.Token.Tag == lexer.MAIN &&
		(len(stmt.Params) > 0 || stmt.ReturnType != lexer.TypeInt) {
		return nil, errorf(line, "Invalid main function signature")
	}

	params := make([]ir.Type, len(stmt.Params))
	for i, param := range stmt.Params {
		typ, err := irType(param.Type, param.Token.Line)
		if err != nil {
			return nil, err
		}
		params[i] = typ
	}
	ret, err := irType(stmt.ReturnType, line)
	if err != nil {
		return nil, err
	}

	return c.module.NewFunction(stmt.Token.Text, &ir.FuncType{Return: ret, Params: params}), nil
}

// genFunctionDefinition declares the function if needed, binds parameters
// to entry-block allocations, emits the body and verifies the result. The
// body must end with a return statement.
func (c *Compiler) genFunctionDefinition(stmt *parser.FunctionDefinition) (ir.Value, error) {
	name := stmt.Token.Text
	line := stmt.Token.Line

	fn := c.module.GetFunction(name)
	if fn == nil {
		val, err := c.genFunctionDeclaration(&stmt.FunctionDeclaration)
		if err != nil {
			return nil, err
		}
		fn = val.(*ir.Function)
	} else if !fn.Empty() {
		return nil, errorf(line, "Two functions with the same name: %s", name)
	}

	entry := ir.NewBlock()
	fn.Append(entry)
	c.builder.SetInsertPoint(entry)
	c.function = fn

	c.symbols.Push()
	defer c.symbols.Pop()

	if len(fn.Params) != len(stmt.Params) {
		return nil, errorf(line,
			"Mismatch between signatures in definition and declaration of %s", name)
	}
	for i, arg := range fn.Params {
		param := stmt.Params[i]
		typ, err := irType(param.Type, param.Token.Line)
		if err != nil {
			return nil, err
		}
		if arg.Type() != typ {
			return nil, errorf(param.Token.Line,
				"Mismatch between signatures in definition and declaration of %s", name)
		}
		arg.SetName(param.Name())

		alloc := c.entryBlockAlloca(typ)
		c.builder.CreateStore(arg, alloc)
		c.symbols.Add(&Symbol{name: param.Name(), typ: param.Type, storage: alloc})
	}

	ret, err := c.genStatement(stmt.Body)
	if err != nil {
		return nil, err
	}
	if _, ok := ret.(*ir.Ret); !ok {
		return nil, errorf(line, "Function %s does not end with a return statement", name)
	}

	if err := ir.VerifyFunction(fn); err != nil {
		c.logger.Debug("verification failed", "function", name, "err", err)
		return nil, errorf(line, "Function %s could not be verified", name)
	}

	c.function = nil
	return fn, nil
}

// initGlobals positions the builder at the very beginning of main's entry
// block and stores each deferred global's initializer in source order, so
// globals are live before the first user statement of main runs.
func (c *Compiler) initGlobals() error {
	mainFn := c.module.GetFunction("main")
	if mainFn == nil || mainFn.Empty() {
		return &CodeGenError{Msg: "Missing main() function definition"}
	}

	c.function = mainFn
	c.builder.SetInsertPointAtStart(mainFn.Entry())
	for _, g := range c.globals {
		val, err := c.genExpression(g.init)
		if err != nil {
			return err
		}
		typ, err := irType(g.typ, 0)
		if err != nil {
			return err
		}
		val, err = c.expand(val, typ, g.init.Tok().Line)
		if err != nil {
			return err
		}
		c.builder.CreateStore(val, g.global)
	}
	return nil
}
