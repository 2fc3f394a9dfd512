package framing

import (
	"fmt"
	"sort"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// VerifyCoverage checks the covering property for one Walk call: that the
// returned nodes and raw spans, taken together, tile [0, total) without
// gaps or overlaps. It is a regression guard on Walk's own cursor-advance
// invariant (every iteration of its loop consumes at least one byte, via
// either a decoded node or a raw span) rather than a runtime safeguard, so
// callers reach for it from tests, not from the decode path itself.
func VerifyCoverage(total int, nodes []Node, raw []model.RawUnparsed) error {
	type span struct {
		start, end int
		label      string
	}
	spans := make([]span, 0, len(nodes)+len(raw))
	for _, n := range nodes {
		spans = append(spans, span{n.Offset, n.Offset + n.Length, fmt.Sprintf("node tag 0x%04X", n.Tag)})
	}
	for _, r := range raw {
		spans = append(spans, span{r.Offset, r.Offset + r.Length, fmt.Sprintf("raw span %s", r.TagHex)})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	cursor := 0
	for _, s := range spans {
		if s.start < cursor {
			return fmt.Errorf("coverage overlap: %s starts at %d, earlier span ended at %d", s.label, s.start, cursor)
		}
		if s.start > cursor {
			return fmt.Errorf("coverage gap: %d bytes unaccounted for before %s at offset %d", s.start-cursor, s.label, s.start)
		}
		cursor = s.end
	}
	if cursor != total {
		return fmt.Errorf("coverage incomplete: spans account for %d of %d bytes", cursor, total)
	}
	return nil
}
