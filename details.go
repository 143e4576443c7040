package leaders

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// PersonalDetailsLabel is the infobox header that opens the personal details section.
const PersonalDetailsLabel = "Personal details"

// PersonalDetails is an ordered mapping from an infobox label to its value lines.
// Labels keep the order in which they were first set. Setting an existing
// label replaces its value but keeps its position.
type PersonalDetails struct {
	m *orderedmap.OrderedMap[string, []string]
}

// NewPersonalDetails returns an empty PersonalDetails.
func NewPersonalDetails() *PersonalDetails {
	return &PersonalDetails{m: orderedmap.New[string, []string]()}
}

func (d *PersonalDetails) init() {
	if d.m == nil {
		d.m = orderedmap.New[string, []string]()
	}
}

// Set assigns values to label. A nil slice is stored as an empty one.
func (d *PersonalDetails) Set(label string, values []string) {
	d.init()
	if values == nil {
		values = []string{}
	}
	d.m.Set(label, values)
}

// Get returns the values for label.
func (d *PersonalDetails) Get(label string) ([]string, bool) {
	if d == nil || d.m == nil {
		return nil, false
	}
	return d.m.Get(label)
}

// Delete removes label if present.
func (d *PersonalDetails) Delete(label string) {
	if d.m == nil {
		return
	}
	d.m.Delete(label)
}

// Len returns the number of labels.
func (d *PersonalDetails) Len() int {
	if d == nil || d.m == nil {
		return 0
	}
	return d.m.Len()
}

// Labels returns the labels in order.
func (d *PersonalDetails) Labels() []string {
	if d == nil || d.m == nil {
		return nil
	}
	labels := make([]string, 0, d.m.Len())
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		labels = append(labels, pair.Key)
	}
	return labels
}

// Clone returns a deep copy.
func (d *PersonalDetails) Clone() *PersonalDetails {
	other := NewPersonalDetails()
	if d == nil || d.m == nil {
		return other
	}
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		other.m.Set(pair.Key, append([]string{}, pair.Value...))
	}
	return other
}

// MarshalJSON encodes the details as a JSON object in label order.
func (d *PersonalDetails) MarshalJSON() ([]byte, error) {
	d.init()
	return d.m.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, keeping its key order.
func (d *PersonalDetails) UnmarshalJSON(data []byte) error {
	d.m = orderedmap.New[string, []string]()
	return d.m.UnmarshalJSON(data)
}

// MarshalYAML encodes the details as a YAML mapping in label order.
func (d *PersonalDetails) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if d.m == nil {
		return node, nil
	}
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		var value yaml.Node
		if err := value.Encode(pair.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
			&value,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping, keeping its key order.
func (d *PersonalDetails) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("personal details: expected mapping, got yaml kind %d", node.Kind)
	}
	d.m = orderedmap.New[string, []string]()
	for i := 0; i+1 < len(node.Content); i += 2 {
		var values []string
		if err := node.Content[i+1].Decode(&values); err != nil {
			return fmt.Errorf("personal details %q: %w", node.Content[i].Value, err)
		}
		d.Set(node.Content[i].Value, values)
	}
	return nil
}
