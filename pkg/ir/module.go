package ir

// Block is a basic block: straight-line instructions ending in a terminator.
type Block struct {
	Insts []Instruction
}

// NewBlock returns a detached block. It emits nothing until appended to a
// function with Function.Append.
func NewBlock() *Block {
	return &Block{}
}

// Function is a declared or defined function. A function with no blocks is
// a declaration.
type Function struct {
	name   string
	typ    *FuncType
	Params []*Param
	Blocks []*Block
}

func (f *Function) Name() string { return f.name }

// Type makes functions usable as values.
func (f *Function) Type() Type { return f.typ }

func (f *Function) Return() Type { return f.typ.Return }

func (f *Function) FuncType() *FuncType { return f.typ }

// Empty reports whether the function has no body.
func (f *Function) Empty() bool { return len(f.Blocks) == 0 }

// Entry returns the first basic block.
func (f *Function) Entry() *Block { return f.Blocks[0] }

// Append adds a block to the end of the function.
func (f *Function) Append(b *Block) {
	f.Blocks = append(f.Blocks, b)
}

// Module is an in-memory IR program.
type Module struct {
	Funcs   []*Function
	Globals []*Global
	Strings []*StringData
}

func NewModule() *Module {
	return &Module{}
}

// NewFunction declares a function with external linkage. Parameters are
// unnamed until SetName.
func (m *Module) NewFunction(name string, typ *FuncType) *Function {
	f := &Function{name: name, typ: typ}
	for _, p := range typ.Params {
		f.Params = append(f.Params, &Param{typ: p})
	}
	m.Funcs = append(m.Funcs, f)
	return f
}

// GetFunction returns the named function or nil.
func (m *Module) GetFunction(name string) *Function {
	for _, f := range m.Funcs {
		if f.name == name {
			return f
		}
	}
	return nil
}

// Intrinsic declares the named intrinsic on first use and returns it.
func (m *Module) Intrinsic(name string, typ *FuncType) *Function {
	if f := m.GetFunction(name); f != nil {
		return f
	}
	return m.NewFunction(name, typ)
}

// NewGlobal adds a zero-initialized module-scope variable.
func (m *Module) NewGlobal(name string, elem Type) *Global {
	g := &Global{Name: name, Elem: elem}
	m.Globals = append(m.Globals, g)
	return g
}

// NewString adds a string literal constant and returns its address value.
// Every call adds a new constant; equal literals are not shared.
func (m *Module) NewString(data string) *StringData {
	s := &StringData{id: len(m.Strings), Data: data}
	m.Strings = append(m.Strings, s)
	return s
}
