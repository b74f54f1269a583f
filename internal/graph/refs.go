package graph

import (
	"strconv"
	"strings"
)

// TagDialect is the reference-tag labelling scheme.
type TagDialect int

const (
	// DialectUndefined is an opaque tag string.
	DialectUndefined TagDialect = iota
	// DialectPanSN is "sample#haplotype#contig" with a numeric haplotype id.
	DialectPanSN
)

// RefStep is one step of a reference's walk: the vertex it visits, the
// orientation it traverses that vertex in, and the genomic locus of the step.
type RefStep struct {
	VertexID ID
	Or       Orientation
	Locus    int
}

// Ref is a named walk through the graph representing one observed haplotype.
type Ref struct {
	id      ID
	tag     string
	dialect TagDialect
	sample  string
	hapID   int
	contig  string
	steps   []RefStep
}

func (r *Ref) ID() ID                { return r.id }
func (r *Ref) Tag() string           { return r.tag }
func (r *Ref) Dialect() TagDialect   { return r.dialect }
func (r *Ref) Sample() string        { return r.sample }
func (r *Ref) HaplotypeID() int      { return r.hapID }
func (r *Ref) Contig() string        { return r.contig }
func (r *Ref) Steps() []RefStep      { return r.steps }
func (r *Ref) StepCount() int        { return len(r.steps) }

// Length is the locus after the ref's last step: the sum of the label
// lengths along the walk.
func (r *Ref) Length() int {
	if len(r.steps) == 0 {
		return 0
	}
	last := r.steps[len(r.steps)-1]
	return last.Locus
}

// ParseTag classifies a reference tag: split on '#'; exactly three
// non-empty parts AND the middle part all-digit AND parseable into an id
// type classifies as PanSN, otherwise undefined.
func ParseTag(tag string) (dialect TagDialect, sample string, hapID int, contig string) {
	parts := strings.Split(tag, "#")
	if len(parts) != 3 {
		return DialectUndefined, "", 0, ""
	}
	for _, p := range parts {
		if p == "" {
			return DialectUndefined, "", 0, ""
		}
	}
	if !isAllDigit(parts[1]) {
		return DialectUndefined, "", 0, ""
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return DialectUndefined, "", 0, ""
	}
	return DialectPanSN, parts[0], id, parts[2]
}

func isAllDigit(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// NewRef constructs a Ref from its raw tag, classifying the dialect.
func NewRef(id ID, tag string) *Ref {
	dialect, sample, hapID, contig := ParseTag(tag)
	return &Ref{id: id, tag: tag, dialect: dialect, sample: sample, hapID: hapID, contig: contig}
}

// AppendStep appends one more step to the reference's walk.
func (r *Ref) AppendStep(s RefStep) { r.steps = append(r.steps, s) }

// Refs is the graph's owning container for all references.
type Refs struct {
	byID  map[ID]*Ref
	byTag map[string]ID
}

func NewRefs() *Refs {
	return &Refs{byID: make(map[ID]*Ref), byTag: make(map[string]ID)}
}

func (rs *Refs) Add(r *Ref) {
	rs.byID[r.id] = r
	rs.byTag[r.tag] = r.id
}

func (rs *Refs) ByID(id ID) (*Ref, bool) {
	r, ok := rs.byID[id]
	return r, ok
}

func (rs *Refs) IDByTag(tag string) (ID, bool) {
	id, ok := rs.byTag[tag]
	return id, ok
}

func (rs *Refs) Len() int { return len(rs.byID) }

// All returns every ref, in ascending id order.
func (rs *Refs) All() []*Ref {
	out := make([]*Ref, 0, len(rs.byID))
	for _, r := range rs.byID {
		out = append(out, r)
	}
	sortRefsByID(out)
	return out
}

func sortRefsByID(rs []*Ref) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j-1].id > rs[j].id; j-- {
			rs[j-1], rs[j] = rs[j], rs[j-1]
		}
	}
}

// SharedSample returns the set of ref ids that share a "sample" with ref_id:
// for PanSN tags this is same-sample (the part before the first '#'); for
// undefined tags it is a strict-prefix match against the full opaque tag.
func (rs *Refs) SharedSample(refID ID) map[ID]struct{} {
	out := make(map[ID]struct{})
	self, ok := rs.byID[refID]
	if !ok {
		return out
	}
	for id, r := range rs.byID {
		if id == refID {
			continue
		}
		if self.dialect == DialectPanSN && r.dialect == DialectPanSN {
			if r.sample == self.sample {
				out[id] = struct{}{}
			}
			continue
		}
		if self.dialect != DialectPanSN && r.dialect != DialectPanSN {
			if strings.HasPrefix(r.tag, self.tag) || strings.HasPrefix(self.tag, r.tag) {
				out[id] = struct{}{}
			}
		}
	}
	return out
}

// RefsInSample returns the ref ids whose sample name (PanSN) or tag prefix
// (undefined) matches sampleName.
func (rs *Refs) RefsInSample(sampleName string) map[ID]struct{} {
	out := make(map[ID]struct{})
	for id, r := range rs.byID {
		switch r.dialect {
		case DialectPanSN:
			if r.sample == sampleName {
				out[id] = struct{}{}
			}
		default:
			if strings.HasPrefix(r.tag, sampleName) {
				out[id] = struct{}{}
			}
		}
	}
	return out
}
