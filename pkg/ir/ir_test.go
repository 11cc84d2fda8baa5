package ir_test

import (
	"strings"
	"testing"

	"github.com/p-sawicki/cplc/pkg/ir"
	"github.com/stretchr/testify/require"
)

func TestBuildAndPrint(t *testing.T) {
	m := ir.NewModule()
	f := m.NewFunction("main", &ir.FuncType{Return: ir.Int})
	entry := ir.NewBlock()
	f.Append(entry)

	b := ir.NewBuilder()
	b.SetInsertPoint(entry)
	sum := b.CreateAdd(ir.NewInt(1), ir.NewInt(2))
	b.CreateRet(sum)

	require.NoError(t, ir.VerifyFunction(f))

	var sb strings.Builder
	_, err := m.WriteTo(&sb)
	require.NoError(t, err)
	out := sb.String()
	require.Contains(t, out, "define i64 @main() {")
	require.Contains(t, out, "%1 = add i64 1, 2")
	require.Contains(t, out, "ret i64 %1")
}

func TestEntryBlockInsertion(t *testing.T) {
	f := (&ir.Module{}).NewFunction("f", &ir.FuncType{Return: ir.Int})
	entry := ir.NewBlock()
	f.Append(entry)

	b := ir.NewBuilder()
	b.SetInsertPoint(entry)
	b.CreateRet(ir.NewInt(0))

	// Allocas placed at the block start land before the existing return and
	// keep their relative order.
	front := ir.NewBuilder()
	front.SetInsertPointAtStart(entry)
	front.CreateAlloca(ir.Int)
	front.CreateAlloca(ir.Double)

	require.Len(t, entry.Insts, 3)
	first, ok := entry.Insts[0].(*ir.Alloca)
	require.True(t, ok)
	require.Equal(t, ir.Type(ir.Int), first.Elem)
	second, ok := entry.Insts[1].(*ir.Alloca)
	require.True(t, ok)
	require.Equal(t, ir.Type(ir.Double), second.Elem)
	_, ok = entry.Insts[2].(*ir.Ret)
	require.True(t, ok)
}

func TestVerifyCatchesMissingTerminator(t *testing.T) {
	m := ir.NewModule()
	f := m.NewFunction("f", &ir.FuncType{Return: ir.Int})
	entry := ir.NewBlock()
	f.Append(entry)

	b := ir.NewBuilder()
	b.SetInsertPoint(entry)
	b.CreateAdd(ir.NewInt(1), ir.NewInt(1))

	require.Error(t, ir.VerifyFunction(f))
}

func TestVerifyCatchesReturnTypeMismatch(t *testing.T) {
	m := ir.NewModule()
	f := m.NewFunction("f", &ir.FuncType{Return: ir.Double})
	entry := ir.NewBlock()
	f.Append(entry)

	b := ir.NewBuilder()
	b.SetInsertPoint(entry)
	b.CreateRet(ir.NewInt(0))

	require.Error(t, ir.VerifyFunction(f))
}

func TestGlobalAndStringPrinting(t *testing.T) {
	m := ir.NewModule()
	m.NewGlobal("x", ir.Int)
	m.NewGlobal("z", ir.Complex)
	m.NewString("hi\n")

	var sb strings.Builder
	_, err := m.WriteTo(&sb)
	require.NoError(t, err)
	out := sb.String()
	require.Contains(t, out, "@x = common global i64 0")
	require.Contains(t, out, "@z = common global { double, double } zeroinitializer")
	require.Contains(t, out, `@.str.0 = private unnamed_addr constant [4 x i8] c"hi\0A\00"`)
}
