package statement

// This file contains the serialization of a Result.
//
// Both JSON and YAML exports share one shape, with a stable key order so that two
// exports of the same statement are byte identical:
//
//	account:     the Account
//	sections:    one key per populated section, in catalog order, holding its records
//	summary:     one key per routed section, in catalog order
//	diagnostics: the diagnostics list, possibly empty

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

func (r *Result) MarshalJSON() ([]byte, error) {
	var sections jsonObjectWriter
	for _, name := range r.Sections() {
		sections.Append(string(name), r.Records(name))
	}
	var summary jsonObjectWriter
	for _, name := range Catalog {
		if sum, ok := r.Summary[name]; ok {
			summary.Append(string(name), sum)
		}
	}
	diags := r.Diagnostics
	if diags == nil {
		diags = Diagnostics{}
	}

	var w jsonObjectWriter
	w.Append("account", r.Account())
	w.Append("sections", &sections)
	w.Append("summary", &summary)
	w.Append("diagnostics", diags)
	return w.MarshalJSON()
}

// MarshalYAML writes the same shape as MarshalJSON.
func (r *Result) MarshalYAML() (any, error) {
	sections := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range r.Sections() {
		if err := appendYAML(sections, string(name), r.Records(name)); err != nil {
			return nil, err
		}
	}
	summary := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range Catalog {
		if sum, ok := r.Summary[name]; ok {
			if err := appendYAML(summary, string(name), sum); err != nil {
				return nil, err
			}
		}
	}
	diags := r.Diagnostics
	if diags == nil {
		diags = Diagnostics{}
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	if err := appendYAML(root, "account", r.Account()); err != nil {
		return nil, err
	}
	root.Content = append(root.Content, yamlString("sections"), sections, yamlString("summary"), summary)
	if err := appendYAML(root, "diagnostics", diags); err != nil {
		return nil, err
	}
	return root, nil
}

// appendYAML adds key: value to a mapping node.
func appendYAML(m *yaml.Node, key string, value any) error {
	var v yaml.Node
	if err := v.Encode(value); err != nil {
		return err
	}
	m.Content = append(m.Content, yamlString(key), &v)
	return nil
}

var _ json.Marshaler = (*Result)(nil)
var _ yaml.Marshaler = (*Result)(nil)
