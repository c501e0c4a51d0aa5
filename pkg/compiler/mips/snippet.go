package mips

// Snippet is an append-only instruction sequence. Insertion order is program
// order.
type Snippet []Instruction

func (s *Snippet) Add(insts ...Instruction) {
	*s = append(*s, insts...)
}

func (s Snippet) Len() int {
	return len(s)
}

func (s Snippet) Empty() bool {
	return len(s) == 0
}

// Last returns the most recently appended instruction, or nil.
func (s Snippet) Last() Instruction {
	if len(s) == 0 {
		return nil
	}

	return s[len(s)-1]
}

func (s *Snippet) Raw(text string) {
	s.Add(Raw{Text: text})
}

func (s *Snippet) Assign(dst, src Register) {
	s.Add(Assign{
		Dst: RegisterOperand(dst),
		Src: RegisterOperand(src),
	})
}

func (s *Snippet) LoadImmediate(dst Register, v Int) {
	s.Add(LoadImmediate{
		Dst:   RegisterOperand(dst),
		Value: ImmediateOperand(v),
	})
}

func (s *Snippet) LoadAddress(dst Register, name string) {
	s.Add(LoadAddress{
		Dst:  RegisterOperand(dst),
		Addr: MemoryOperand(name),
	})
}

// Dereference replaces the address held in reg with the word it points at.
func (s *Snippet) Dereference(reg Register) {
	s.Add(Load{
		Dst:  RegisterOperand(reg),
		Addr: RegisterOperand(reg),
	})
}

func (s *Snippet) Store(src, addr Register) {
	s.Add(Store{
		Src:  RegisterOperand(src),
		Addr: RegisterOperand(addr),
	})
}

func (s *Snippet) Label(label Label) {
	s.Add(LabelDef{Label: label})
}

func (s *Snippet) Jump(target Label) {
	s.Add(Jump{Target: target})
}

func (s *Snippet) Branch(cond Condition, left, right Operand, target Label) {
	s.Add(Branch{
		Cond:   cond,
		Left:   left,
		Right:  right,
		Target: target,
	})
}

// BranchZero jumps to target when reg holds 0.
func (s *Snippet) BranchZero(reg Register, target Label) {
	s.Branch(Equal, RegisterOperand(reg), ImmediateOperand(0), target)
}

func (s *Snippet) Compare(cond Condition, dst, left, right Register) {
	s.Add(Compare{
		Cond:  cond,
		Dst:   RegisterOperand(dst),
		Left:  RegisterOperand(left),
		Right: RegisterOperand(right),
	})
}

func (s *Snippet) Logic(op LogicOp, dst, left, right Register) {
	s.Add(Logic{
		Op:    op,
		Dst:   RegisterOperand(dst),
		Left:  RegisterOperand(left),
		Right: RegisterOperand(right),
	})
}

func (s *Snippet) Arith(op ArithOp, dst, left, right Register) {
	s.Add(Arith{
		Op:    op,
		Dst:   RegisterOperand(dst),
		Left:  RegisterOperand(left),
		Right: RegisterOperand(right),
	})
}
