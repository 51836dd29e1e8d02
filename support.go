package snvclust

import (
	"strconv"
	"strings"
)

// SupportValues scores every canonical node against the bootstrap
// collections: the fraction of completed replicates whose collection
// contains an exactly equal member set (same members, same cardinality).
//
// Only merge nodes are scored. Singleton sets reappear in every replicate by
// construction, so they are excluded and keep support 0 rather than
// reporting spurious full support. All values lie in [0, 1].
func SupportValues(members [][]int, boot *BootstrapResult) []float64 {
	support := make([]float64, len(members))
	if boot == nil || boot.Completed == 0 {
		return support
	}

	index := make(map[string]int, len(members))
	for id, set := range members {
		if len(set) > 1 {
			index[memberKey(set)] = id
		}
	}

	counts := make([]int, len(members))
	for _, collection := range boot.Collections {
		for _, set := range collection {
			if len(set) <= 1 {
				continue
			}
			if id, ok := index[memberKey(set)]; ok {
				counts[id]++
			}
		}
	}
	for id, c := range counts {
		support[id] = float64(c) / float64(boot.Completed)
	}
	return support
}

// memberKey canonicalizes a sorted member list for exact-equality lookup.
func memberKey(set []int) string {
	var b strings.Builder
	for i, s := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s))
	}
	return b.String()
}
