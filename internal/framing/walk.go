package framing

import "github.com/haulageworks/tachograph-go/internal/model"

// ReadOptions configures Walk.
type ReadOptions struct {
	// IsContainer decides whether a decoded tag's payload should be
	// recursed into as a nested tag sequence rather than handed to a
	// leaf decoder further up the stack.
	IsContainer IsContainerFunc

	// SkipLeadingPadding, when set, skips a single leading 0x00 byte
	// before framing the first record at this level only. Some G2/G2.2
	// cards pad the payload of the outermost envelope (tag 0x7621 or
	// 0x7631) with a spurious zero byte; it is not a general property
	// of every container, so callers set this only for the top-level
	// Walk of such an envelope's payload, not for recursive calls.
	SkipLeadingPadding bool

	// StrictFraming disables decodeHeaderWithFallback's fallback
	// candidate chain, requiring the generation's primary framing to
	// succeed on every record. Default false: the fallback candidates
	// run, recovering G2.2 downloads that omit a length-of-length byte
	// some readers expect.
	StrictFraming bool
}

// Walk decodes a flat or nested tag sequence out of data, for the given
// generation, returning the sibling Nodes found at this level and any
// spans that could not be framed at all. It recurses into container
// tags (per opts.IsContainer) before returning, so the result is a full
// tree in one call.
//
// Walk never returns an error: a span of data it cannot frame is
// recorded as a model.RawUnparsed entry and the cursor is advanced past
// it (to the next byte that frames successfully, or to the end of data
// if nothing does), so that one corrupt record does not prevent the
// rest of the file from decoding. This mirrors the "never abort on a
// single bad record" robustness requirement for the decode pipeline.
func Walk(data []byte, gen model.Generation, opts ReadOptions) ([]Node, []model.RawUnparsed) {
	var nodes []Node
	var raw []model.RawUnparsed

	if opts.SkipLeadingPadding && len(data) > 0 && data[0] == 0x00 {
		data = data[1:]
	}

	offset := 0
	for offset < len(data) {
		remaining := data[offset:]

		h, ok := decodeHeaderWithFallback(gen, remaining, opts.StrictFraming)
		if !ok {
			// Nothing frames here. Advance one byte at a time looking
			// for the next offset that does, so a single corrupt
			// header doesn't swallow the rest of the payload.
			skip := 1
			for skip < len(remaining) {
				if _, ok := decodeHeaderWithFallback(gen, remaining[skip:], opts.StrictFraming); ok {
					break
				}
				skip++
			}
			raw = append(raw, model.RawUnparsed{
				Offset: offset,
				Length: skip,
				Bytes:  append([]byte(nil), remaining[:skip]...),
				Reason: "no recognized tag framing at this offset",
			})
			offset += skip
			continue
		}

		payload := remaining[h.headerLen : h.headerLen+h.length]
		node := Node{
			Tag:    h.tag,
			Offset: offset,
			Length: h.headerLen + h.length,
		}
		if opts.IsContainer != nil && opts.IsContainer(gen, h.tag) {
			node.IsContainer = true
			childOpts := opts
			childOpts.SkipLeadingPadding = false
			children, childRaw := Walk(payload, gen, childOpts)
			node.Children = children
			for _, r := range childRaw {
				// Child raw spans are relative to this node's payload;
				// re-anchor them to this level's offset so a single
				// flat list can be inspected by the caller if desired.
				r.Offset += offset + h.headerLen
				raw = append(raw, r)
			}
		} else {
			node.Payload = append([]byte(nil), payload...)
		}
		nodes = append(nodes, node)
		offset += h.headerLen + h.length
	}

	return nodes, raw
}
