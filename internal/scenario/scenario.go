// Package scenario loads YAML scripts of world operations and runs them
// against a types.World. The CLI uses it to exercise the store without
// writing Go code.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Scenario is a named script: components to register, resources to add and
// the steps to perform in order.
type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Components  []string   `yaml:"components"`
	Resources   []Resource `yaml:"resources,omitempty"`
	Steps       []Step     `yaml:"steps"`
}

// Resource is a named value added to the world before the first step.
type Resource struct {
	Name  string `yaml:"name"`
	Value Value  `yaml:"value"`
}

// Step holds exactly one action.
type Step struct {
	// Spawn creates an entity with the listed components, attached in the
	// order they appear.
	Spawn Fields `yaml:"spawn,omitempty"`

	// Delete marks the entity with this id.
	Delete *uint32 `yaml:"delete,omitempty"`

	// DeleteWhere marks every entity whose single listed component equals
	// the given value.
	DeleteWhere Fields `yaml:"delete_where,omitempty"`

	// Update sweeps marked entities. It must be written as update: true;
	// update: false is rejected rather than read as a missing action.
	Update *bool `yaml:"update,omitempty"`

	// Query reports the rows of every entity holding all listed components.
	Query []string `yaml:"query,omitempty"`

	// Resource reports the current value of a resource.
	Resource string `yaml:"resource,omitempty"`

	// ExpectEntities fails the run unless the world holds this many slots.
	ExpectEntities *int `yaml:"expect_entities,omitempty"`
}

// Step action names, as written in YAML.
const (
	ActionSpawn          = "spawn"
	ActionDelete         = "delete"
	ActionDeleteWhere    = "delete_where"
	ActionUpdate         = "update"
	ActionQuery          = "query"
	ActionResource       = "resource"
	ActionExpectEntities = "expect_entities"
)

// actions lists the actions set on the step.
func (s Step) actions() []string {
	var out []string
	if s.Spawn != nil {
		out = append(out, ActionSpawn)
	}
	if s.Delete != nil {
		out = append(out, ActionDelete)
	}
	if s.DeleteWhere != nil {
		out = append(out, ActionDeleteWhere)
	}
	if s.Update != nil {
		out = append(out, ActionUpdate)
	}
	if len(s.Query) > 0 {
		out = append(out, ActionQuery)
	}
	if s.Resource != "" {
		out = append(out, ActionResource)
	}
	if s.ExpectEntities != nil {
		out = append(out, ActionExpectEntities)
	}
	return out
}

// Action returns the name of the step's action, or "" if the step does not
// hold exactly one.
func (s Step) Action() string {
	actions := s.actions()
	if len(actions) != 1 {
		return ""
	}
	return actions[0]
}

// Load reads, parses and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario document. Unknown fields are
// rejected so that typos surface instead of being ignored.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %w", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Field is one component name and value inside a spawn or delete_where step.
type Field struct {
	Name  string
	Value types.Value
}

// Fields keeps the YAML key order of a component mapping.
type Fields []Field

// UnmarshalYAML decodes a mapping of component name to value.
func (f *Fields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of component to value", node.Line)
	}
	fields := make(Fields, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return err
		}
		var v Value
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("component %q: %w", name, err)
		}
		fields = append(fields, Field{Name: name, Value: v.Value})
	}
	*f = fields
	return nil
}

// Value wraps a types.Value decoded from a one-key mapping of kind to
// payload, for example {point: [1, 2]} or {f32: 9.8}.
type Value struct {
	types.Value
}

// UnmarshalYAML decodes a kind-tagged value.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: value must be a single kind: payload mapping", node.Line)
	}
	var name string
	if err := node.Content[0].Decode(&name); err != nil {
		return err
	}
	kind, err := types.ParseKind(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	decoded, err := decodePayload(kind, node.Content[1])
	if err != nil {
		return fmt.Errorf("line %d: %s: %w", node.Line, kind, err)
	}
	v.Value = decoded
	return nil
}

func decodePayload(kind types.Kind, node *yaml.Node) (types.Value, error) {
	switch kind {
	case types.KindPoint:
		xy, err := decodeFloats(node, 2)
		if err != nil {
			return nil, err
		}
		return types.NewPoint(xy[0], xy[1]), nil
	case types.KindColor:
		rgba, err := decodeFloats(node, 4)
		if err != nil {
			return nil, err
		}
		return types.NewColor(rgba[0], rgba[1], rgba[2], rgba[3]), nil
	case types.KindF32:
		var f float32
		err := node.Decode(&f)
		return types.F32(f), err
	case types.KindU32:
		var n uint32
		err := node.Decode(&n)
		return types.U32(n), err
	case types.KindUsize:
		var n uint64
		err := node.Decode(&n)
		return types.Usize(n), err
	case types.KindBool:
		var b bool
		err := node.Decode(&b)
		return types.Bool(b), err
	case types.KindMarker:
		var s string
		err := node.Decode(&s)
		return types.Marker(s), err
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownKind, kind)
	}
}

func decodeFloats(node *yaml.Node, n int) ([]float32, error) {
	var out []float32
	if err := node.Decode(&out); err != nil {
		return nil, err
	}
	if len(out) != n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(out))
	}
	return out, nil
}
