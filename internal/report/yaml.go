package report

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/griffithind/sysstatus/internal/errors"
)

// maxYAMLNodes bounds the nodes visited while decoding one document,
// counting every expansion of an alias.
const maxYAMLNodes = 100000

// yamlReader converts yaml.Node trees into sections. Aliases are expanded
// in place, so each reader carries a node budget.
type yamlReader struct {
	visited int
}

// UnmarshalYAML decodes a YAML mapping keeping the key order.
// Sequences become sections keyed by index.
func (s *Section) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := (&yamlReader{}).section(node, 1)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

// DecodeYAML reads one YAML document from r into a new section.
func DecodeYAML(r io.Reader) (*Section, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.ReportDecode(err)
	}
	s, err := (&yamlReader{}).section(&doc, 1)
	if err != nil {
		return nil, errors.ReportDecode(err)
	}
	return s, nil
}

func (y *yamlReader) visit(node *yaml.Node) error {
	y.visited++
	if y.visited > maxYAMLNodes {
		return fmt.Errorf("line %d: document expands to more than %d nodes", node.Line, maxYAMLNodes)
	}
	return nil
}

func (y *yamlReader) section(node *yaml.Node, depth int) (*Section, error) {
	if depth > DefaultMaxDepth {
		return nil, fmt.Errorf("nesting exceeds %d levels", DefaultMaxDepth)
	}
	if err := y.visit(node); err != nil {
		return nil, err
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return NewSection(), nil
		}
		return y.section(node.Content[0], depth)
	case yaml.AliasNode:
		return y.section(node.Alias, depth+1)
	case yaml.MappingNode:
		s := NewSection()
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := y.value(node.Content[i+1], depth)
			if err != nil {
				return nil, err
			}
			s.Set(node.Content[i].Value, value)
		}
		return s, nil
	case yaml.SequenceNode:
		s := NewSection()
		for i, item := range node.Content {
			value, err := y.value(item, depth)
			if err != nil {
				return nil, err
			}
			s.Set(strconv.Itoa(i), value)
		}
		return s, nil
	}
	return nil, fmt.Errorf("line %d: expected a mapping", node.Line)
}

func (y *yamlReader) value(node *yaml.Node, depth int) (any, error) {
	switch node.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		return y.section(node, depth+1)
	case yaml.AliasNode:
		if err := y.visit(node); err != nil {
			return nil, err
		}
		return y.value(node.Alias, depth+1)
	}

	if err := y.visit(node); err != nil {
		return nil, err
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("line %d: %w", node.Line, err)
	}
	return v, nil
}
