package forecast

import (
	"slices"
	"strings"
)

// MotherAgeBins is the full childbearing age range used for estimates from
// existing residents. The labels must match the fertility dataset exactly.
var MotherAgeBins = []string{
	"15 - 19 Years",
	"20 - 24 Years",
	"25 - 29 Years",
	"30 - 34 Years",
	"35 - 39 Years",
	"40 - 44 Years",
	"45 - 49 Years",
}

// CoreMotherAgeBins is the narrower subset used when averaging birth rates
// for mothers of new-housing households.
var CoreMotherAgeBins = []string{
	"20 - 24 Years",
	"25 - 29 Years",
	"30 - 34 Years",
	"35 - 39 Years",
}

// ResidentEntry is one cleaned record of the residents dataset: the number
// of women of an age group living in a subzone.
type ResidentEntry struct {
	Subzone string
	AgeBin  string
	Count   float64
}

// ResidentAgeBinTable holds women counts by subzone and age bin.
type ResidentAgeBinTable struct {
	counts   map[string]map[string]float64
	subzones []string
}

// NewResidentAgeBinTable builds a table from cleaned entries. Subzone and
// age bin labels are whitespace-trimmed before aggregation, so records that
// differ only in padding ("Bedok " vs "Bedok") collapse into one cell with
// their counts summed.
func NewResidentAgeBinTable(entries []ResidentEntry) *ResidentAgeBinTable {
	res := &ResidentAgeBinTable{counts: make(map[string]map[string]float64)}

	for _, e := range entries {
		subzone := strings.TrimSpace(e.Subzone)
		bin := strings.TrimSpace(e.AgeBin)
		if subzone == "" || bin == "" {
			continue
		}
		if _, ok := res.counts[subzone]; !ok {
			res.counts[subzone] = make(map[string]float64)
		}
		res.counts[subzone][bin] += e.Count
	}

	res.subzones = make([]string, 0, len(res.counts))
	for subzone := range res.counts {
		res.subzones = append(res.subzones, subzone)
	}
	slices.Sort(res.subzones)
	return res
}

// Count returns the women count for a subzone and age bin, zero when the
// combination is absent.
func (t *ResidentAgeBinTable) Count(subzone, ageBin string) float64 {
	return t.counts[subzone][ageBin]
}

// Subzones returns the sorted subzone names present in the table.
func (t *ResidentAgeBinTable) Subzones() []string {
	return slices.Clone(t.subzones)
}
