package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteTo serializes the module as text: string constants, globals,
// declarations, then definitions with registers numbered in block order.
func (m *Module) WriteTo(w io.Writer) (int64, error) {
	p := &printer{
		names:  make(map[Value]string),
		blocks: make(map[*Block]string),
	}
	p.module(m)
	n, err := io.WriteString(w, p.sb.String())
	return int64(n), err
}

type printer struct {
	sb     strings.Builder
	names  map[Value]string
	blocks map[*Block]string
}

func (p *printer) module(m *Module) {
	for _, s := range m.Strings {
		p.sb.WriteString(fmt.Sprintf("@.str.%d = private unnamed_addr constant [%d x i8] c\"%s\"\n",
			s.id, len(s.Data)+1, escape(s.Data)))
	}
	if len(m.Strings) > 0 {
		p.sb.WriteString("\n")
	}

	for _, g := range m.Globals {
		p.sb.WriteString(fmt.Sprintf("@%s = common global %s %s\n",
			g.Name, g.Elem.String(), zeroValue(g.Elem)))
	}
	if len(m.Globals) > 0 {
		p.sb.WriteString("\n")
	}

	for _, f := range m.Funcs {
		if f.Empty() {
			p.declare(f)
		}
	}
	for _, f := range m.Funcs {
		if !f.Empty() {
			p.define(f)
		}
	}
}

func (p *printer) declare(f *Function) {
	params := make([]string, len(f.Params))
	for i, param := range f.Params {
		params[i] = param.Type().String()
	}
	p.sb.WriteString(fmt.Sprintf("declare %s @%s(%s)\n\n",
		f.Return().String(), f.Name(), strings.Join(params, ", ")))
}

func (p *printer) define(f *Function) {
	params := make([]string, len(f.Params))
	for i, param := range f.Params {
		name := param.Name()
		if name == "" {
			name = strconv.Itoa(i)
		}
		p.names[param] = "%" + name
		params[i] = param.Type().String() + " %" + name
	}

	counter := 0
	for _, b := range f.Blocks {
		p.blocks[b] = strconv.Itoa(counter)
		counter++
		for _, inst := range b.Insts {
			if inst.Type() != Void {
				p.names[inst.(Value)] = "%" + strconv.Itoa(counter)
				counter++
			}
		}
	}

	p.sb.WriteString(fmt.Sprintf("define %s @%s(%s) {\n",
		f.Return().String(), f.Name(), strings.Join(params, ", ")))
	for _, b := range f.Blocks {
		p.sb.WriteString(p.blocks[b] + ":\n")
		for _, inst := range b.Insts {
			p.sb.WriteString("  " + p.instLine(inst) + "\n")
		}
	}
	p.sb.WriteString("}\n\n")
}

// ref renders a value reference without its type.
func (p *printer) ref(v Value) string {
	switch v := v.(type) {
	case *ConstInt:
		if v.Typ == Bool {
			if v.V != 0 {
				return "true"
			}
			return "false"
		}
		return strconv.FormatInt(v.V, 10)
	case *ConstFloat:
		return fmt.Sprintf("%e", v.V)
	case *ConstNull:
		return "null"
	case *Global:
		return "@" + v.Name
	case *StringData:
		return fmt.Sprintf("getelementptr inbounds ([%d x i8], [%d x i8]* @.str.%d, i64 0, i64 0)",
			len(v.Data)+1, len(v.Data)+1, v.id)
	default:
		return p.names[v]
	}
}

// typedRef renders a value reference preceded by its type.
func (p *printer) typedRef(v Value) string {
	return v.Type().String() + " " + p.ref(v)
}

func (p *printer) result(inst Instruction) string {
	return p.names[inst.(Value)] + " = "
}

func (p *printer) instLine(inst Instruction) string {
	switch inst := inst.(type) {
	case *Bin:
		return fmt.Sprintf("%s%s %s %s, %s", p.result(inst), inst.Op,
			inst.X.Type().String(), p.ref(inst.X), p.ref(inst.Y))
	case *ICmp:
		return fmt.Sprintf("%sicmp %s %s %s, %s", p.result(inst), inst.Pred,
			inst.X.Type().String(), p.ref(inst.X), p.ref(inst.Y))
	case *FCmp:
		return fmt.Sprintf("%sfcmp %s %s %s, %s", p.result(inst), inst.Pred,
			inst.X.Type().String(), p.ref(inst.X), p.ref(inst.Y))
	case *Alloca:
		return fmt.Sprintf("%salloca %s", p.result(inst), inst.Elem.String())
	case *Load:
		return fmt.Sprintf("%sload %s, %s", p.result(inst),
			inst.Elem.String(), p.typedRef(inst.Ptr))
	case *Store:
		return fmt.Sprintf("store %s, %s", p.typedRef(inst.Val), p.typedRef(inst.Ptr))
	case *GEP:
		return fmt.Sprintf("%sgetelementptr inbounds %s, %s, i32 0, i32 %d",
			p.result(inst), inst.Elem.String(), p.typedRef(inst.Ptr), inst.Index)
	case *SIToFP:
		return fmt.Sprintf("%ssitofp %s to double", p.result(inst), p.typedRef(inst.X))
	case *Call:
		args := make([]string, len(inst.Args))
		for i, arg := range inst.Args {
			args[i] = p.typedRef(arg)
		}
		return fmt.Sprintf("%scall %s @%s(%s)", p.result(inst),
			inst.Callee.Return().String(), inst.Callee.Name(), strings.Join(args, ", "))
	case *Br:
		return fmt.Sprintf("br label %%%s", p.blocks[inst.Target])
	case *CondBr:
		return fmt.Sprintf("br i1 %s, label %%%s, label %%%s",
			p.ref(inst.Cond), p.blocks[inst.Then], p.blocks[inst.Else])
	case *Ret:
		return "ret " + p.typedRef(inst.Val)
	default:
		return fmt.Sprintf("; unknown instruction %T", inst)
	}
}

func zeroValue(t Type) string {
	switch t {
	case Int:
		return "0"
	case Double:
		return "0.000000e+00"
	case String:
		return "null"
	default:
		return "zeroinitializer"
	}
}

// escape renders string data as an LLVM c"..." payload with a trailing NUL.
func escape(data string) string {
	var sb strings.Builder
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c >= ' ' && c <= '~' && c != '"' && c != '\\' {
			sb.WriteByte(c)
		} else {
			sb.WriteString(fmt.Sprintf("\\%02X", c))
		}
	}
	sb.WriteString("\\00")
	return sb.String()
}
