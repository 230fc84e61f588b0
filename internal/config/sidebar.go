package config

import (
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Sidebar is the ordered sidebarCategories mapping. A null key (`null:` or
// `~:`) declares the uncategorized entries; a quoted "null" is a normal label.
type Sidebar []nav.CategoryDecl

// Decls returns the declarations in file order.
func (s Sidebar) Decls() []nav.CategoryDecl {
	out := make([]nav.CategoryDecl, len(s))
	copy(out, s)
	return out
}

// UnmarshalYAML decodes the mapping in document order. A category mapped to
// anything but a sequence of strings is a structural error.
func (s *Sidebar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*s = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return structural("sidebarCategories must be a mapping", value)
	}

	out := make(Sidebar, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := resolveAlias(value.Content[i]), value.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return structural("sidebar category label must be a scalar", key)
		}

		label := nav.Named(key.Value)
		if key.Tag == "!!null" {
			label = nav.Uncategorized
		}

		refs, err := decodeRefs(label, val)
		if err != nil {
			return err
		}
		out = append(out, nav.CategoryDecl{Label: label, Refs: refs})
	}
	*s = out
	return nil
}

func decodeRefs(label nav.Label, val *yaml.Node) ([]string, error) {
	val = resolveAlias(val)
	if val.Kind == yaml.ScalarNode && val.Tag == "!!null" {
		return nil, nil
	}
	if val.Kind != yaml.SequenceNode {
		return nil, structural("sidebar category must map to a sequence", val).
			WithContext("category", label.String())
	}
	refs := make([]string, 0, len(val.Content))
	for _, item := range val.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
			return nil, structural("sidebar entry must be a string", item).
				WithContext("category", label.String())
		}
		refs = append(refs, item.Value)
	}
	return refs, nil
}

// resolveAlias follows *anchor references to the node they name.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func structural(msg string, n *yaml.Node) *derrors.ClassifiedError {
	return derrors.ConfigError(msg).
		WithContext("line", n.Line).
		WithContext("column", n.Column).
		Build()
}

// MarshalYAML encodes the sidebar as an ordered mapping, writing the
// uncategorized label as a null key.
func (s Sidebar) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, decl := range s {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: decl.Label.Name()}
		if decl.Label.IsUncategorized() {
			key = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, ref := range decl.Refs {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ref})
		}
		node.Content = append(node.Content, key, seq)
	}
	return node, nil
}
