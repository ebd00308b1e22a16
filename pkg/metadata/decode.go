package metadata

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseTypeRef reads the shorthand reference form used by manifests:
// a full name, optional "[]" suffixes for array depth, an optional trailing
// "?" for a nullable annotation and a leading "!" for a generic parameter.
func ParseTypeRef(s string) TypeRef {
	s = strings.TrimSpace(s)
	var r TypeRef
	if strings.HasSuffix(s, "?") {
		r.Nullable = true
		s = strings.TrimSuffix(s, "?")
	}
	for strings.HasSuffix(s, "[]") {
		r.ArrayRank++
		s = strings.TrimSuffix(s, "[]")
	}
	if strings.HasPrefix(s, "!") {
		r.Generic = true
		s = strings.TrimPrefix(s, "!")
	}
	r.Name = s
	return r
}

// UnmarshalYAML accepts both the mapping form and the shorthand scalar form.
func (r *TypeRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*r = ParseTypeRef(node.Value)
		return nil
	}
	type plain TypeRef
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = TypeRef(p)
	return nil
}

// UnmarshalJSON accepts both the object form and the shorthand string form.
func (r *TypeRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = ParseTypeRef(s)
		return nil
	}
	type plain TypeRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = TypeRef(p)
	return nil
}
