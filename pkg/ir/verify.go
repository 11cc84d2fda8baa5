package ir

import "fmt"

// VerifyFunction checks the structural invariants of a defined function:
// every block ends in exactly one terminator, no instruction follows a
// terminator, returned values match the function return type, and
// conditional branches take an i1.
func VerifyFunction(f *Function) error {
	if f.Empty() {
		return nil
	}
	for i, b := range f.Blocks {
		if len(b.Insts) == 0 {
			return fmt.Errorf("function %s: block %d is empty", f.Name(), i)
		}
		for j, inst := range b.Insts {
			last := j == len(b.Insts)-1
			if IsTerminator(inst) != last {
				if last {
					return fmt.Errorf("function %s: block %d does not end with a terminator", f.Name(), i)
				}
				return fmt.Errorf("function %s: block %d has a terminator before its end", f.Name(), i)
			}
			switch inst := inst.(type) {
			case *Ret:
				if inst.Val.Type() != f.Return() {
					return fmt.Errorf("function %s: returned %s, want %s",
						f.Name(), inst.Val.Type(), f.Return())
				}
			case *CondBr:
				if inst.Cond.Type() != Bool {
					return fmt.Errorf("function %s: conditional branch on %s", f.Name(), inst.Cond.Type())
				}
			}
		}
	}
	return nil
}
