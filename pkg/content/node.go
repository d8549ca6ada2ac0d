// Package content defines the rich document model produced by the article editor.
// A document is a plain tree of typed nodes that round-trips through JSON unchanged
// apart from the node kinds, which are restricted to a closed set.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a serialized node carries an unrecognized type tag.
var ErrUnknownKind = errors.New("unknown node kind")

// Kind identifies the type of a document node.
type Kind string

// Recognized node kinds.
const (
	KindDoc            Kind = "doc"
	KindParagraph      Kind = "paragraph"
	KindHeading        Kind = "heading"
	KindText           Kind = "text"
	KindBulletList     Kind = "bulletList"
	KindOrderedList    Kind = "orderedList"
	KindListItem       Kind = "listItem"
	KindCodeBlock      Kind = "codeBlock"
	KindBlockquote     Kind = "blockquote"
	KindImage          Kind = "image"
	KindHardBreak      Kind = "hardBreak"
	KindHorizontalRule Kind = "horizontalRule"
	KindTable          Kind = "table"
	KindTableRow       Kind = "tableRow"
	KindTableHeader    Kind = "tableHeader"
	KindTableCell      Kind = "tableCell"
)

// Valid reports whether k is one of the recognized kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDoc, KindParagraph, KindHeading, KindText,
		KindBulletList, KindOrderedList, KindListItem,
		KindCodeBlock, KindBlockquote, KindImage,
		KindHardBreak, KindHorizontalRule,
		KindTable, KindTableRow, KindTableHeader, KindTableCell:
		return true
	default:
		return false
	}
}

// UnmarshalJSON rejects unrecognized kinds at decode time.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind := Kind(s)
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	*k = kind
	return nil
}

// Image attribute keys.
const (
	// AttrSource holds the durable, publicly resolvable address of an image.
	AttrSource = "src"
	// AttrPlaceholder binds an image to a file that has not been uploaded yet.
	AttrPlaceholder = "data-temp-id"
	AttrAlt         = "alt"
	AttrTitle       = "title"
)

// Node is one element of a document tree.
type Node struct {
	Kind    Kind           `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Mark is inline formatting applied to a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Clone returns a shallow copy of n with its own attribute map and child slice.
// Children themselves are shared with n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := *n

	if n.Attrs != nil {
		c.Attrs = make(map[string]any, len(n.Attrs))
		for k, v := range n.Attrs {
			c.Attrs[k] = v
		}
	}

	if n.Content != nil {
		c.Content = make([]*Node, len(n.Content))
		copy(c.Content, n.Content)
	}

	return &c
}

// Placeholder returns the pending placeholder reference of an image node.
func (n *Node) Placeholder() (string, bool) {
	return n.stringAttr(AttrPlaceholder)
}

// Source returns the durable source address of an image node.
func (n *Node) Source() (string, bool) {
	return n.stringAttr(AttrSource)
}

// Resolve returns a copy of an image node that points at address and no longer
// carries a placeholder reference.
func (n *Node) Resolve(address string) *Node {
	c := n.Clone()
	if c.Attrs == nil {
		c.Attrs = make(map[string]any, 1)
	}
	c.Attrs[AttrSource] = address
	delete(c.Attrs, AttrPlaceholder)
	return c
}

func (n *Node) stringAttr(key string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
