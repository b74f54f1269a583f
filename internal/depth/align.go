package depth

import "github.com/povu/povu/internal/graph"

// OpKind is one edit-transcript operation kind, CIGAR-style.
type OpKind byte

const (
	OpMatch    OpKind = 'M'
	OpMismatch OpKind = 'X'
	OpIns      OpKind = 'I' // token present in b (alt), absent in a (reference)
	OpDel      OpKind = 'D' // token present in a (reference), absent in b (alt)
)

// Op is one step of an alignment's edit transcript.
type Op struct {
	Kind OpKind
	Len  int
}

const (
	scoreMatch    = 2
	scoreMismatch = -1
	gapOpen       = -2
	gapExtend     = -1
)

// Align runs global affine-gap alignment (Gotoh) between two ordered
// vertex-index token sequences, returning the alignment score and its
// run-length-encoded edit transcript.
func Align(a, b []graph.Idx) (int, []Op) {
	n, m := len(a), len(b)
	const negInf = -1 << 30

	match := make([][]int, n+1)
	ins := make([][]int, n+1) // gap in a (token consumed from b)
	del := make([][]int, n+1) // gap in b (token consumed from a)
	for i := range match {
		match[i] = make([]int, m+1)
		ins[i] = make([]int, m+1)
		del[i] = make([]int, m+1)
	}

	match[0][0] = 0
	ins[0][0] = negInf
	del[0][0] = negInf
	for i := 1; i <= n; i++ {
		match[i][0] = negInf
		del[i][0] = gapOpen + gapExtend*(i-1)
		ins[i][0] = negInf
	}
	for j := 1; j <= m; j++ {
		match[0][j] = negInf
		ins[0][j] = gapOpen + gapExtend*(j-1)
		del[0][j] = negInf
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			s := scoreMismatch
			if a[i-1] == b[j-1] {
				s = scoreMatch
			}
			match[i][j] = maxOf(match[i-1][j-1], ins[i-1][j-1], del[i-1][j-1]) + s
			del[i][j] = maxOf(match[i-1][j]+gapOpen, del[i-1][j]+gapExtend)
			ins[i][j] = maxOf(match[i][j-1]+gapOpen, ins[i][j-1]+gapExtend)
		}
	}

	best := maxOf(match[n][m], ins[n][m], del[n][m])
	return best, traceback(a, b, match, ins, del)
}

func maxOf(vs ...int) int {
	best := vs[0]
	for _, v := range vs[1:] {
		if v > best {
			best = v
		}
	}
	return best
}

func traceback(a, b []graph.Idx, match, ins, del [][]int) []Op {
	i, j := len(a), len(b)
	state := 0 // 0 = match matrix, 1 = ins, 2 = del
	switch {
	case ins[i][j] >= match[i][j] && ins[i][j] >= del[i][j]:
		state = 1
	case del[i][j] >= match[i][j]:
		state = 2
	}

	var rawOps []OpKind
	for i > 0 || j > 0 {
		switch state {
		case 0:
			if i == 0 || j == 0 {
				state = 2
				continue
			}
			s := scoreMismatch
			kind := OpMismatch
			if a[i-1] == b[j-1] {
				s = scoreMatch
				kind = OpMatch
			}
			cur := match[i][j]
			if match[i-1][j-1]+s == cur {
				rawOps = append(rawOps, kind)
				i--
				j--
				state = 0
			} else if ins[i-1][j-1]+s == cur {
				rawOps = append(rawOps, kind)
				i--
				j--
				state = 1
			} else {
				rawOps = append(rawOps, kind)
				i--
				j--
				state = 2
			}
		case 1: // gap in a, consume from b
			if j == 0 {
				state = 2
				continue
			}
			rawOps = append(rawOps, OpIns)
			if match[i][j-1]+gapOpen == ins[i][j] {
				state = 0
			}
			j--
		case 2: // gap in b, consume from a
			if i == 0 {
				state = 0
				continue
			}
			rawOps = append(rawOps, OpDel)
			if match[i-1][j]+gapOpen == del[i][j] {
				state = 0
			}
			i--
		}
	}

	reverseOps(rawOps)
	return runLengthEncode(rawOps)
}

func reverseOps(ops []OpKind) {
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
}

func runLengthEncode(ops []OpKind) []Op {
	var out []Op
	for _, k := range ops {
		if len(out) > 0 && out[len(out)-1].Kind == k {
			out[len(out)-1].Len++
			continue
		}
		out = append(out, Op{Kind: k, Len: 1})
	}
	return out
}
