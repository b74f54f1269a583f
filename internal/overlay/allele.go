package overlay

import "github.com/povu/povu/internal/graph"

// VariantType classifies an allele slice relative to the reference it was
// sliced against.
type VariantType int

const (
	VarSub VariantType = iota
	VarIns
	VarDel
	VarInv
)

func (v VariantType) String() string {
	switch v {
	case VarSub:
		return "SUB"
	case VarIns:
		return "INS"
	case VarDel:
		return "DEL"
	case VarInv:
		return "INV"
	default:
		return "UNKNOWN"
	}
}

// AlleleSlice is one contiguous, exact-match slice of a walk against a
// reference's walk: the unit the VCF record builder groups into ref/alt
// alleles.
type AlleleSlice struct {
	WalkIdx   int
	WalkStart int
	RefID     graph.ID
	RefStart  int
	Length    int
	Or        graph.Orientation
	VarType   VariantType
}

// classifyVariant infers a slice's variant type from the relative lengths
// and orientations of its walk and reference windows.
func classifyVariant(walkLen, refLen int, reverse bool) VariantType {
	switch {
	case walkLen > refLen:
		return VarIns
	case walkLen < refLen:
		return VarDel
	case reverse:
		return VarInv
	default:
		return VarSub
	}
}
