package board

import (
	"sort"
	"strconv"

	"github.com/syampillai/sochart/pkg/chart"
	"github.com/syampillai/sochart/pkg/data"
	"github.com/syampillai/sochart/pkg/part"
)

// buildOption renders the option document: the dataset reference map first,
// then every encoder group in its fixed emission order. Parts render into
// their group's array ordered by serial; self-rendering groups merge their
// single payload at the top level instead.
func buildOption(parts []chart.Encodable, providers []data.Provider) []byte {
	dst := append([]byte(nil), `{"dataset":{"source":{`...)
	first := true
	for _, p := range sortedBySerial(providers) {
		if p.Internal() {
			continue
		}
		if !first {
			dst = append(dst, ',')
		}
		first = false
		dst = append(dst, `"d`...)
		dst = strconv.AppendInt(dst, int64(p.Serial()), 10)
		dst = append(dst, `":`...)
		dst = strconv.AppendInt(dst, int64(p.Serial()), 10)
	}
	dst = append(dst, `}}`...)

	grouped := map[part.Group][]chart.Encodable{}
	for _, pt := range parts {
		grouped[pt.Group()] = append(grouped[pt.Group()], pt)
	}

	for _, g := range part.Groups() {
		members := grouped[g]
		if len(members) == 0 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Serial() < members[j].Serial()
		})

		dst = append(dst, ',')
		dst = strconv.AppendQuote(dst, g.Key())
		dst = append(dst, ':')

		if g.SelfRendering() {
			// A self-rendering group carries a single payload; the last
			// added part wins.
			dst = members[len(members)-1].EncodeJSON(dst)
			continue
		}

		dst = append(dst, '[')
		for i, m := range members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = m.EncodeJSON(dst)
		}
		dst = append(dst, ']')
	}

	return append(dst, '}')
}

func sortedBySerial(providers []data.Provider) []data.Provider {
	sorted := append([]data.Provider{}, providers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Serial() < sorted[j].Serial()
	})
	return sorted
}
