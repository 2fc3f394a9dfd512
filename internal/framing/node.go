package framing

import "github.com/haulageworks/tachograph-go/internal/model"

// Node is one decoded (tag, length, payload) entry. Container tags (per
// the caller-supplied IsContainer predicate) are recursed into and their
// decoded children are attached here rather than exposing the raw
// container payload; leaf tags carry their payload directly.
//
// Offset and Length are relative to the immediately enclosing payload
// (the top-level file for a root node, or the parent container's payload
// for a child), not to the whole file. This is sufficient to check the
// covering property (offset ranges partition the enclosing payload) at
// every nesting level without threading a global offset through the
// recursion.
type Node struct {
	Tag        uint16
	Offset     int
	Length     int
	Payload    []byte // leaf payload; empty for containers
	IsContainer bool
	Children   []Node
}

// IsContainerFunc decides whether a tag's payload should be recursed into
// as a nested sequence of tags, rather than handed to a leaf decoder. It is
// supplied by the caller (the tag registry, one layer up) so that framing
// itself never needs to know what any tag means.
type IsContainerFunc func(gen model.Generation, tag uint16) bool
