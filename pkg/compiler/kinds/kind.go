package kinds

type Kind int

const (
	None Kind = iota - 1
	Boolean
	Integer
)

func (k Kind) Valid() bool {
	return k == Boolean || k == Integer
}

// Keyword is the declaration keyword for k.
func (k Kind) Keyword() string {
	switch k {
	case Boolean:
		return "bool"
	case Integer:
		return "int"
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "bool"
	case Integer:
		return "int"
	default:
		return "<none>"
	}
}
