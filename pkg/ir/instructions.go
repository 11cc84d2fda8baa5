package ir

// Instruction is a single typed instruction inside a basic block. Every
// instruction is also a Value; instructions without a result have Void type.
type Instruction interface {
	Value
	inst()
}

// Integer comparison predicates (signed).
const (
	PredEQ  = "eq"
	PredNE  = "ne"
	PredSLT = "slt"
	PredSLE = "sle"
	PredSGT = "sgt"
	PredSGE = "sge"
)

// Floating comparison predicates (ordered).
const (
	PredOEQ = "oeq"
	PredONE = "one"
	PredOLT = "olt"
	PredOLE = "ole"
	PredOGT = "ogt"
	PredOGE = "oge"
)

// Bin is a two-operand arithmetic or bitwise instruction. The result type
// is the operand type.
type Bin struct {
	Op   string
	X, Y Value
}

func (*Bin) inst()        {}
func (b *Bin) Type() Type { return b.X.Type() }

// ICmp is a signed integer comparison producing i1.
type ICmp struct {
	Pred string
	X, Y Value
}

func (*ICmp) inst()        {}
func (c *ICmp) Type() Type { return Bool }

// FCmp is an ordered floating comparison producing i1.
type FCmp struct {
	Pred string
	X, Y Value
}

func (*FCmp) inst()        {}
func (c *FCmp) Type() Type { return Bool }

// Alloca reserves stack storage for one Elem and produces its address.
type Alloca struct {
	Elem Type
}

func (*Alloca) inst()        {}
func (a *Alloca) Type() Type { return Pointer{Elem: a.Elem} }

// Load reads an Elem through Ptr.
type Load struct {
	Elem Type
	Ptr  Value
}

func (*Load) inst()        {}
func (l *Load) Type() Type { return l.Elem }

// Store writes Val through Ptr.
type Store struct {
	Val, Ptr Value
}

func (*Store) inst()        {}
func (s *Store) Type() Type { return Void }

// GEP computes the address of field Index of the struct Elem at Ptr. The
// only struct in this IR is Complex, whose fields are doubles.
type GEP struct {
	Elem  Type
	Ptr   Value
	Index int
}

func (*GEP) inst()        {}
func (g *GEP) Type() Type { return Pointer{Elem: Double} }

// SIToFP converts a signed integer to a double.
type SIToFP struct {
	X Value
}

func (*SIToFP) inst()        {}
func (c *SIToFP) Type() Type { return Double }

// Call invokes Callee with Args.
type Call struct {
	Callee *Function
	Args   []Value
}

func (*Call) inst()        {}
func (c *Call) Type() Type { return c.Callee.Return() }

// Br branches unconditionally to Target.
type Br struct {
	Target *Block
}

func (*Br) inst()        {}
func (b *Br) Type() Type { return Void }

// CondBr branches to Then when Cond is true, to Else otherwise.
type CondBr struct {
	Cond       Value
	Then, Else *Block
}

func (*CondBr) inst()        {}
func (b *CondBr) Type() Type { return Void }

// Ret returns Val from the enclosing function.
type Ret struct {
	Val Value
}

func (*Ret) inst()        {}
func (r *Ret) Type() Type { return Void }

// IsTerminator reports whether inst ends a basic block.
func IsTerminator(inst Instruction) bool {
	switch inst.(type) {
	case *Br, *CondBr, *Ret:
		return true
	default:
		return false
	}
}
