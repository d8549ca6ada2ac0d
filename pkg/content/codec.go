package content

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Parse decodes a stored document tree. Empty input and JSON null both mean
// "no content yet" and yield a nil tree.
func Parse(data []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var n Node
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	if err := Validate(&n); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return &n, nil
}

// Validate reports the first node of n without a recognized kind. Trees decoded
// from JSON only need this check for nodes that omitted the type field.
func Validate(n *Node) error {
	var invalid error
	Walk(n, func(node *Node) bool {
		if invalid == nil && !node.Kind.Valid() {
			invalid = fmt.Errorf("%w: %q", ErrUnknownKind, node.Kind)
		}
		return invalid == nil
	})
	return invalid
}

// Serialize encodes a document tree for storage. A nil tree yields nil.
func Serialize(n *Node) (json.RawMessage, error) {
	if n == nil {
		return nil, nil
	}

	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return data, nil
}

// Document adapts a nullable tree to a database column.
type Document struct {
	Root *Node
}

// Scan implements sql.Scanner.
func (d *Document) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Root = nil
		return nil
	case []byte:
		n, err := Parse(v)
		if err != nil {
			return err
		}
		d.Root = n
		return nil
	case string:
		n, err := Parse([]byte(v))
		if err != nil {
			return err
		}
		d.Root = n
		return nil
	default:
		return fmt.Errorf("scan document: unsupported type %T", src)
	}
}

// Value implements driver.Valuer.
func (d Document) Value() (driver.Value, error) {
	data, err := Serialize(d.Root)
	if err != nil || data == nil {
		return nil, err
	}
	return []byte(data), nil
}
