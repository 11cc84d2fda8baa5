package compiler

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/p-sawicki/cplc/pkg/ir"
	"github.com/p-sawicki/cplc/pkg/lexer"
	"github.com/p-sawicki/cplc/pkg/parser"
)

type Config struct{}

func (c *Config) Validate(logger *slog.Logger) error {
	return nil
}

// Compiler drives one source stream through the pipeline: lexer, parser,
// code generation into an IR module, deferred global initialization, and
// serialization. All session state lives here; a Compiler is not safe for
// concurrent use.
type Compiler struct {
	logger *slog.Logger
	Config Config

	module  *ir.Module
	builder *ir.Builder
	symbols *SymbolTable
	globals []deferredGlobal

	// function is the function currently being generated, nil at module
	// scope.
	function *ir.Function
}

// deferredGlobal records a module-scope definition whose initializer runs
// at the head of main, in source order.
type deferredGlobal struct {
	global *ir.Global
	init   parser.Expression
	typ    lexer.TypeID
}

func New(logger *slog.Logger, config Config) (*Compiler, error) {
	err := config.Validate(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to validate compiler config: %w", err)
	}

	return &Compiler{
		logger: logger,
		Config: config,
	}, nil
}

// Compile reads source from src and writes the textual IR module to out.
// The first lexer, parser or codegen error aborts the pipeline.
func (c *Compiler) Compile(ctx context.Context, src io.Reader, out io.Writer) error {
	c.module = ir.NewModule()
	c.builder = ir.NewBuilder()
	c.symbols = NewSymbolTable()
	c.globals = nil
	c.function = nil

	l, err := lexer.New(src)
	if err != nil {
		return err
	}
	p, err := parser.New(l, c.logger)
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		stmt, err := p.ParseNext()
		if err != nil {
			return err
		}
		if stmt == nil {
			break
		}
		if _, err := c.genStatement(stmt); err != nil {
			return err
		}
	}

	if err := c.initGlobals(); err != nil {
		return err
	}

	c.logger.Debug("compilation finished",
		"functions", len(c.module.Funcs), "globals", len(c.module.Globals))

	_, err = c.module.WriteTo(out)
	return err
}
