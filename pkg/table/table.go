// Package table holds the GFF feature table shown next to the coverage plot.
package table

import (
	"strings"
)

// Row is one GFF feature record. Start and End are inclusive 1-based
// coordinates as written in the GFF file.
type Row struct {
	ID         int    `json:"id" yaml:"id"`
	SeqID      string `json:"seqid" yaml:"seqid"`
	Source     string `json:"source,omitempty" yaml:"source,omitempty"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Start      int    `json:"start" yaml:"start"`
	End        int    `json:"end" yaml:"end"`
	Score      string `json:"score,omitempty" yaml:"score,omitempty"`
	Strand     string `json:"strand,omitempty" yaml:"strand,omitempty"`
	Phase      string `json:"phase,omitempty" yaml:"phase,omitempty"`
	Attributes string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Columns are the GFF column names in file order.
var Columns = []string{"seqid", "source", "type", "start", "end", "score", "strand", "phase", "attributes"}

// Region is a genomic interval on one contig, inclusive on both ends.
type Region struct {
	Contig string `json:"contig" yaml:"contig"`
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
}

// Overlaps reports whether r lies on the region's contig and its interval
// intersects the region.
func (g Region) Overlaps(r Row) bool {
	return r.SeqID == g.Contig && r.Start <= g.End && r.End >= g.Start
}

// Width is End - Start.
func (g Region) Width() int {
	return g.End - g.Start
}

// FilterVisible returns the rows overlapping region, in input order.
func FilterVisible(rows []Row, region Region) []Row {
	out := make([]Row, 0)
	for _, r := range rows {
		if region.Overlaps(r) {
			out = append(out, r)
		}
	}
	return out
}

// FocusWindow returns the region shown after a row is selected: the feature
// padded by pad bases on each side, clamped to [0, contigLen-1]. A
// contigLen of zero or less disables the upper clamp.
func FocusWindow(r Row, contigLen, pad int) Region {
	start := r.Start - pad
	if start < 0 {
		start = 0
	}
	end := r.End + pad
	if contigLen > 0 && end > contigLen-1 {
		end = contigLen - 1
	}
	return Region{Contig: r.SeqID, Start: start, End: end}
}

// ByID returns the row with the given ID.
func ByID(rows []Row, id int) (Row, bool) {
	if id >= 0 && id < len(rows) && rows[id].ID == id {
		return rows[id], true
	}
	for _, r := range rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

// Contigs lists the distinct seqids in first-seen order.
func Contigs(rows []Row) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		if !seen[r.SeqID] {
			seen[r.SeqID] = true
			out = append(out, r.SeqID)
		}
	}
	return out
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
