package vcfout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/povu/povu/internal/graph"
)

// infoOrder fixes the INFO key emission order so every record's field order
// is deterministic.
var infoOrder = []string{"AC", "AF", "AN", "NS", "AT", "VARTYPE", "TANGLED", "LV"}

// Writer emits VCFv4.2 records to a single underlying stream.
type Writer struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewCombinedWriter wraps an already-open stream (e.g. stdout) for a single
// combined VCF carrying every reference's records.
func NewCombinedWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// NewFileWriter creates (or truncates) one VCF file per reference under
// dir, named by the reference's tag.
func NewFileWriter(dir string, refTag string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("vcfout: create output dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, sanitizeTag(refTag)+".vcf")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("vcfout: create %s: %w", path, err)
	}
	return &Writer{w: bufio.NewWriter(f), closer: f}, nil
}

func sanitizeTag(tag string) string {
	out := make([]byte, len(tag))
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		if c == '#' || c == '/' {
			out[i] = '_'
		} else {
			out[i] = c
		}
	}
	return string(out)
}

// WriteHeader writes the VCFv4.2 meta-information and #CHROM line. sampleCols
// is the genotype column name list (one per reference haplotype).
func (wr *Writer) WriteHeader(g *graph.Graph, sampleCols []string) error {
	lines := []string{
		"##fileformat=VCFv4.2",
		`##INFO=<ID=AC,Number=A,Type=Integer,Description="Allele count in haps">`,
		`##INFO=<ID=AF,Number=A,Type=Float,Description="Allele frequency">`,
		`##INFO=<ID=AN,Number=1,Type=Integer,Description="Total allele number">`,
		`##INFO=<ID=NS,Number=1,Type=Integer,Description="Number of haps with data">`,
		`##INFO=<ID=AT,Number=1,Type=String,Description="Enclosing flubble label">`,
		`##INFO=<ID=VARTYPE,Number=1,Type=String,Description="Variant type: INS, DEL, SUB, INV">`,
		`##INFO=<ID=TANGLED,Number=1,Type=String,Description="T if the region's depth matrix was tangled">`,
		`##INFO=<ID=LV,Number=1,Type=Integer,Description="PVST depth minus one">`,
		`##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">`,
	}
	for _, line := range contigLines(g) {
		lines = append(lines, line)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(wr.w, l); err != nil {
			return err
		}
	}

	header := []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT"}
	header = append(header, sampleCols...)
	_, err := fmt.Fprintln(wr.w, joinTab(header))
	return err
}

func contigLines(g *graph.Graph) []string {
	seen := make(map[string]int)
	var names []string
	for _, ref := range g.Refs().All() {
		name := ref.Contig()
		if name == "" {
			name = ref.Tag()
		}
		if l, ok := seen[name]; !ok || ref.Length() > l {
			if !ok {
				names = append(names, name)
			}
			seen[name] = ref.Length()
		}
	}
	sort.Strings(names)
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("##contig=<ID=%s,length=%d>", name, seen[name])
	}
	return lines
}

// WriteRecord writes one VCF data line. chromName is the contig/ref tag to
// place in the CHROM column.
func (wr *Writer) WriteRecord(chromName string, r *Record) error {
	altDNAs := r.AltDNAs()
	if len(altDNAs) == 0 {
		altDNAs = []string{"."}
	}
	ref := r.RefDNA()
	if ref == "" {
		ref = "N"
	}

	values := map[string]string{
		"AC":      joinInts(r.AC()),
		"AF":      joinFloats(r.AF()),
		"AN":      fmt.Sprintf("%d", r.AN()),
		"NS":      fmt.Sprintf("%d", r.NS),
		"AT":      r.EnclosingLabel,
		"VARTYPE": r.VarType.String(),
		"TANGLED": tangledChar(r.Tangled),
		"LV":      fmt.Sprintf("%d", r.Height-1),
	}
	infoFields := make([]string, len(infoOrder))
	for i, key := range infoOrder {
		infoFields[i] = key + "=" + values[key]
	}
	info := joinSep(infoFields, ";")

	fields := []string{
		chromName,
		fmt.Sprintf("%d", r.Pos),
		r.VariantID,
		ref,
		joinStrings(altDNAs),
		"60",
		"PASS",
		info,
		"GT",
	}
	fields = append(fields, r.Genotype...)
	_, err := fmt.Fprintln(wr.w, joinTab(fields))
	return err
}

func tangledChar(t bool) string {
	if t {
		return "T"
	}
	return "F"
}

func joinTab(fields []string) string { return joinSep(fields, "\t") }
func joinStrings(fields []string) string { return joinSep(fields, ",") }

func joinSep(fields []string, sep string) string {
	out := ""
	for i, f := range fields {
		if i > 0 {
			out += sep
		}
		out += f
	}
	return out
}

func joinInts(vs []int) string {
	strs := make([]string, len(vs))
	for i, v := range vs {
		strs[i] = fmt.Sprintf("%d", v)
	}
	return joinSep(strs, ",")
}

func joinFloats(vs []float64) string {
	strs := make([]string, len(vs))
	for i, v := range vs {
		strs[i] = fmt.Sprintf("%.6g", v)
	}
	return joinSep(strs, ",")
}

// Flush flushes buffered output without closing the underlying stream.
func (wr *Writer) Flush() error { return wr.w.Flush() }

// Close flushes and, for a file-backed writer, closes the underlying file.
// Closing a combined writer over a caller-owned stream only flushes it.
func (wr *Writer) Close() error {
	if err := wr.w.Flush(); err != nil {
		return err
	}
	if wr.closer != nil {
		return wr.closer.Close()
	}
	return nil
}
