package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// Sentinel errors returned by the YAML codec.
var (
	ErrInvalidYAML = errors.New("invalid yaml")
	ErrEncode      = errors.New("encode yaml")
)

const tagString = "!!str"

// maxValues bounds the number of values a document may expand to through
// aliases.
const maxValues = 1 << 20

// Decode parses a single YAML document into a [Value]. Mapping key order and
// scalar types are kept as written. Anchors, aliases and merge keys are
// resolved. Empty input decodes to [Null].
func Decode(data []byte) (Value, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	switch len(file.Docs) {
	case 0:
		return Null{}, nil
	case 1:
	default:
		return nil, fmt.Errorf("%w: expected a single document, found %d", ErrInvalidYAML, len(file.Docs))
	}

	body := file.Docs[0].Body
	if body == nil {
		return Null{}, nil
	}

	d := &decoder{
		anchors:   make(map[string]Value),
		expanding: make(map[string]bool),
	}

	return d.decode(body)
}

// Encode renders v as a YAML document using two-space indentation and
// literal blocks for multi-line strings. Multi-line strings whose first line
// is indented are double-quoted instead, since a literal block cannot
// express that without an indentation indicator.
func Encode(v Value) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(toYAML(v),
		yaml.Indent(2),
		yaml.IndentSequence(true),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return out, nil
}

// toYAML converts v into the types goccy/go-yaml encodes in order.
func toYAML(v Value) any {
	switch t := v.(type) {
	case *Mapping:
		out := make(yaml.MapSlice, 0, t.Len())
		for k, child := range t.All() {
			out = append(out, yaml.MapItem{Key: k, Value: toYAML(child)})
		}

		return out

	case Sequence:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = toYAML(child)
		}

		return out

	case String:
		if needsQuotes(string(t)) {
			return quoted(t)
		}
	}

	return ToAny(v)
}

// quoted is a string that encodes as a double-quoted scalar.
type quoted string

// MarshalYAML implements [yaml.BytesMarshaler].
func (q quoted) MarshalYAML() ([]byte, error) {
	return []byte(strconv.Quote(string(q))), nil
}

func needsQuotes(s string) bool {
	if strings.Contains(s, "\r") {
		return true
	}

	if !strings.Contains(s, "\n") {
		return false
	}

	rest := strings.TrimLeft(s, "\n")

	return rest != "" && (rest[0] == ' ' || rest[0] == '\t')
}

// decoder turns AST nodes into values. Anchors are recorded in document
// order, so an alias refers to the closest preceding anchor of its name.
type decoder struct {
	anchors   map[string]Value
	expanding map[string]bool
	values    int
}

func (d *decoder) decode(node ast.Node) (Value, error) {
	if node == nil {
		return Null{}, nil
	}

	err := d.count(node, 1)
	if err != nil {
		return nil, err
	}

	switch n := node.(type) {
	case *ast.AnchorNode:
		return d.decodeAnchor(n)
	case *ast.AliasNode:
		return d.decodeAlias(n)
	case *ast.MappingNode:
		return d.decodeMapping(n.Values)
	case *ast.MappingValueNode:
		return d.decodeMapping([]*ast.MappingValueNode{n})
	case *ast.SequenceNode:
		seq := make(Sequence, 0, len(n.Values))

		for _, child := range n.Values {
			v, err := d.decode(child)
			if err != nil {
				return nil, err
			}

			seq = append(seq, v)
		}

		return seq, nil

	case *ast.TagNode:
		if n.Start != nil && n.Start.Value == tagString && n.Value != nil {
			if _, ok := n.Value.(ast.ScalarNode); ok {
				return String(scalarText(n.Value)), nil
			}
		}

		return d.decode(n.Value)

	case *ast.StringNode:
		return String(n.Value), nil
	case *ast.LiteralNode:
		if n.Value == nil {
			return String(""), nil
		}

		return String(n.Value.Value), nil
	case *ast.BoolNode:
		return Bool(n.Value), nil
	case *ast.IntegerNode:
		return decodeInteger(n)
	case *ast.FloatNode:
		return Float(n.Value), nil
	case *ast.InfinityNode:
		return Float(n.Value), nil
	case *ast.NanNode:
		return Float(math.NaN()), nil
	case *ast.NullNode, *ast.CommentGroupNode:
		return Null{}, nil
	}

	return nil, nodeError(node, "unsupported node type %s", node.Type())
}

// decodeMapping builds a mapping from key/value pairs. Keys written
// explicitly take precedence over keys brought in with "<<"; among merged
// mappings the first one to provide a key wins.
func (d *decoder) decodeMapping(pairs []*ast.MappingValueNode) (Value, error) {
	explicit := make(map[string]bool, len(pairs))

	for _, mvn := range pairs {
		if !mvn.Key.IsMergeKey() {
			explicit[keyText(mvn.Key)] = true
		}
	}

	m := NewMapping()

	for _, mvn := range pairs {
		if mvn.Key.IsMergeKey() {
			err := d.mergeInto(m, mvn.Value, explicit)
			if err != nil {
				return nil, err
			}

			continue
		}

		v, err := d.decode(mvn.Value)
		if err != nil {
			return nil, err
		}

		m.Set(keyText(mvn.Key), v)
	}

	return m, nil
}

func (d *decoder) mergeInto(m *Mapping, node ast.Node, explicit map[string]bool) error {
	v, err := d.decode(node)
	if err != nil {
		return err
	}

	var sources []*Mapping

	switch t := v.(type) {
	case *Mapping:
		sources = append(sources, t)
	case Sequence:
		for _, item := range t {
			src, ok := item.(*Mapping)
			if !ok {
				return nodeError(node, "merge key expects mappings, found %s", item.Kind())
			}

			sources = append(sources, src)
		}
	default:
		return nodeError(node, "merge key expects a mapping, found %s", v.Kind())
	}

	for _, src := range sources {
		for k, child := range src.All() {
			if explicit[k] || m.Has(k) {
				continue
			}

			m.Set(k, child)
		}
	}

	return nil
}

func (d *decoder) decodeAnchor(n *ast.AnchorNode) (Value, error) {
	name := n.Name.String()

	d.expanding[name] = true
	v, err := d.decode(n.Value)
	delete(d.expanding, name)

	if err != nil {
		return nil, err
	}

	d.anchors[name] = v

	return v, nil
}

func (d *decoder) decodeAlias(n *ast.AliasNode) (Value, error) {
	name := n.Value.String()

	if d.expanding[name] {
		return nil, nodeError(n, "recursive alias %q", name)
	}

	v, ok := d.anchors[name]
	if !ok {
		return nil, nodeError(n, "unknown alias %q", name)
	}

	err := d.count(n, size(v))
	if err != nil {
		return nil, err
	}

	return Clone(v), nil
}

func (d *decoder) count(node ast.Node, n int) error {
	d.values += n
	if d.values > maxValues {
		return nodeError(node, "document expands to more than %d values", maxValues)
	}

	return nil
}

// size returns the number of values in v, v included.
func size(v Value) int {
	n := 1

	switch t := v.(type) {
	case *Mapping:
		for _, child := range t.All() {
			n += size(child)
		}
	case Sequence:
		for _, child := range t {
			n += size(child)
		}
	}

	return n
}

func decodeInteger(n *ast.IntegerNode) (Value, error) {
	switch i := n.Value.(type) {
	case int64:
		return Int(i), nil
	case uint64:
		if i > math.MaxInt64 {
			return nil, nodeError(n, "integer %d out of range", i)
		}

		return Int(int64(i)), nil //nolint:gosec // Checked above.
	}

	return nil, nodeError(n, "unexpected integer representation %T", n.Value)
}

func keyText(key ast.MapKeyNode) string {
	if s, ok := key.(*ast.StringNode); ok {
		return s.Value
	}

	return scalarText(key)
}

func scalarText(node ast.Node) string {
	if tk := node.GetToken(); tk != nil {
		return tk.Value
	}

	return node.String()
}

func nodeError(node ast.Node, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	if tk := node.GetToken(); tk != nil && tk.Position != nil {
		return fmt.Errorf("%w: [%d:%d] %s", ErrInvalidYAML, tk.Position.Line, tk.Position.Column, msg)
	}

	return fmt.Errorf("%w: %s", ErrInvalidYAML, msg)
}
