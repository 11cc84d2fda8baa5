package ir

import "slices"

// Builder emits instructions at a movable insertion point.
type Builder struct {
	block *Block
	pos   int // insertion index; -1 appends at the end
}

func NewBuilder() *Builder {
	return &Builder{pos: -1}
}

// SetInsertPoint moves the insertion point to the end of block.
func (b *Builder) SetInsertPoint(block *Block) {
	b.block = block
	b.pos = -1
}

// SetInsertPointAtStart moves the insertion point to the front of block.
// Subsequent instructions are emitted in order before the existing ones.
func (b *Builder) SetInsertPointAtStart(block *Block) {
	b.block = block
	b.pos = 0
}

// InsertBlock returns the block instructions are currently emitted into.
func (b *Builder) InsertBlock() *Block {
	return b.block
}

func (b *Builder) insert(inst Instruction) Instruction {
	if b.pos < 0 {
		b.block.Insts = append(b.block.Insts, inst)
		return inst
	}
	b.block.Insts = slices.Insert(b.block.Insts, b.pos, inst)
	b.pos++
	return inst
}

func (b *Builder) bin(op string, x, y Value) Value {
	return b.insert(&Bin{Op: op, X: x, Y: y}).(Value)
}

func (b *Builder) CreateAdd(x, y Value) Value  { return b.bin("add", x, y) }
func (b *Builder) CreateSub(x, y Value) Value  { return b.bin("sub", x, y) }
func (b *Builder) CreateMul(x, y Value) Value  { return b.bin("mul", x, y) }
func (b *Builder) CreateSDiv(x, y Value) Value { return b.bin("sdiv", x, y) }

func (b *Builder) CreateFAdd(x, y Value) Value { return b.bin("fadd", x, y) }
func (b *Builder) CreateFSub(x, y Value) Value { return b.bin("fsub", x, y) }
func (b *Builder) CreateFMul(x, y Value) Value { return b.bin("fmul", x, y) }
func (b *Builder) CreateFDiv(x, y Value) Value { return b.bin("fdiv", x, y) }

func (b *Builder) CreateAnd(x, y Value) Value { return b.bin("and", x, y) }
func (b *Builder) CreateOr(x, y Value) Value  { return b.bin("or", x, y) }

// CreateNot flips an i1 by xor with true.
func (b *Builder) CreateNot(x Value) Value {
	return b.bin("xor", x, NewBool(true))
}

func (b *Builder) CreateICmp(pred string, x, y Value) Value {
	return b.insert(&ICmp{Pred: pred, X: x, Y: y}).(Value)
}

func (b *Builder) CreateFCmp(pred string, x, y Value) Value {
	return b.insert(&FCmp{Pred: pred, X: x, Y: y}).(Value)
}

func (b *Builder) CreateAlloca(elem Type) Value {
	return b.insert(&Alloca{Elem: elem}).(Value)
}

func (b *Builder) CreateLoad(elem Type, ptr Value) Value {
	return b.insert(&Load{Elem: elem, Ptr: ptr}).(Value)
}

func (b *Builder) CreateStore(val, ptr Value) Value {
	return b.insert(&Store{Val: val, Ptr: ptr}).(Value)
}

func (b *Builder) CreateGEP(elem Type, ptr Value, index int) Value {
	return b.insert(&GEP{Elem: elem, Ptr: ptr, Index: index}).(Value)
}

func (b *Builder) CreateSIToFP(x Value) Value {
	return b.insert(&SIToFP{X: x}).(Value)
}

func (b *Builder) CreateCall(callee *Function, args []Value) Value {
	return b.insert(&Call{Callee: callee, Args: args}).(Value)
}

func (b *Builder) CreateBr(target *Block) Value {
	return b.insert(&Br{Target: target}).(Value)
}

func (b *Builder) CreateCondBr(cond Value, then, els *Block) Value {
	return b.insert(&CondBr{Cond: cond, Then: then, Else: els}).(Value)
}

func (b *Builder) CreateRet(val Value) Value {
	return b.insert(&Ret{Val: val}).(Value)
}
