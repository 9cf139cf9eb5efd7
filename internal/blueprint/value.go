// SPDX-License-Identifier: AGPL-3.0-or-later

package blueprint

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueKind classifies a platform option value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindNumber
	KindList
)

// Value is a platform option value: a scalar kept in its source spelling,
// or a list of strings.
type Value struct {
	Kind ValueKind
	text string
	list []string
}

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, text: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, text: strconv.FormatBool(b)} }

// Number returns a numeric value spelled as given, e.g. "9" or "0.5".
func Number(n string) Value { return Value{Kind: KindNumber, text: n} }

// List returns a list-of-strings value.
func List(items ...string) Value {
	return Value{Kind: KindList, list: append([]string(nil), items...)}
}

// Render formats the value as it is written after "key: " in front
// matter: strings double-quoted, numbers and booleans bare, lists as a
// bracketed list of quoted strings.
func (v Value) Render() string {
	switch v.Kind {
	case KindBool, KindNumber:
		return v.text
	case KindList:
		quoted := make([]string, len(v.list))
		for i, item := range v.list {
			quoted[i] = quote(item)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return quote(v.text)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.Kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.text}, nil
	case KindNumber:
		tag := "!!int"
		if strings.ContainsAny(v.text, ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.text}, nil
	case KindList:
		return v.list, nil
	default:
		return v.text, nil
	}
}

func valueFromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return Value{}, err
			}
			return Bool(b), nil
		case "!!int", "!!float":
			return Number(n.Value), nil
		case "!!str":
			return String(n.Value), nil
		}
		return Value{}, fmt.Errorf("line %d: unsupported value %q", n.Line, n.Value)
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: list items must be scalars", item.Line)
			}
			items = append(items, item.Value)
		}
		return List(items...), nil
	}
	return Value{}, fmt.Errorf("line %d: option values must be scalars or lists", n.Line)
}

// quote writes s as a YAML double-quoted scalar.
func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// Option is one capability setting of a platform.
type Option struct {
	Name  string
	Value Value
}

// Platform is the default configuration block for one platform.
type Platform struct {
	Name    string
	Options []Option
}

// Lines renders the platform as front matter lines: the platform key at
// indent, each option at indent+step.
func (p Platform) Lines(indent, step int) []string {
	pad := strings.Repeat(" ", indent)
	optPad := strings.Repeat(" ", indent+step)
	lines := make([]string, 0, len(p.Options)+1)
	lines = append(lines, pad+p.Name+":")
	for _, o := range p.Options {
		lines = append(lines, optPad+o.Name+": "+o.Value.Render())
	}
	return lines
}

// PlatformTable is an ordered list of platform defaults.
type PlatformTable []Platform

// MarshalYAML implements yaml.Marshaler, keeping table order.
func (t PlatformTable) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range t {
		opts := &yaml.Node{Kind: yaml.MappingNode}
		for _, o := range p.Options {
			var val yaml.Node
			if err := val.Encode(o.Value); err != nil {
				return nil, err
			}
			opts.Content = append(opts.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: o.Name}, &val)
		}
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: p.Name}, opts)
	}
	return root, nil
}

func platformTableFromNode(n *yaml.Node) (PlatformTable, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: platform table must be a mapping", n.Line)
	}
	table := make(PlatformTable, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, body := n.Content[i], n.Content[i+1]
		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: platform %q must be a mapping", body.Line, name.Value)
		}
		p := Platform{Name: name.Value}
		for j := 0; j+1 < len(body.Content); j += 2 {
			v, err := valueFromNode(body.Content[j+1])
			if err != nil {
				return nil, fmt.Errorf("platform %q option %q: %w", name.Value, body.Content[j].Value, err)
			}
			p.Options = append(p.Options, Option{Name: body.Content[j].Value, Value: v})
		}
		table = append(table, p)
	}
	return table, nil
}
