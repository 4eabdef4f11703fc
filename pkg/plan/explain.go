package plan

import (
	"sync"

	"github.com/Velocidex/ordereddict"

	"github.com/TFMV/ddlplan/pkg/errors"
)

// Kind identifies a DDL operation.
type Kind string

// Desc is implemented by every DDL descriptor.
type Desc interface {
	// Kind returns the operation this descriptor belongs to.
	Kind() Kind
	// Schema returns the fixed result layout of the operation.
	Schema() string
}

// FieldSpec describes one descriptor field as seen by an explain engine.
type FieldSpec struct {
	// Name is the stable field identifier.
	Name string
	// Label is the display name used when rendering.
	Label string
	// Levels lists the tiers at which the field is shown.
	Levels Levels
	// Value extracts the field from a descriptor. A nil result means the
	// field has nothing to show.
	Value func(Desc) interface{}
}

// ExplainSpec is the declarative explain table of one operation kind.
type ExplainSpec struct {
	DisplayName string
	Levels      Levels
	Fields      []FieldSpec
}

// VisibleAt reports whether the operation itself is shown at level l.
func (s ExplainSpec) VisibleAt(l Level) bool {
	return s.Levels.Contains(l)
}

// VisibleFieldNames returns, in declaration order, the names of the fields
// shown at level l. It is empty when the operation is hidden at l.
func (s ExplainSpec) VisibleFieldNames(l Level) []string {
	names := []string{}
	if !s.VisibleAt(l) {
		return names
	}
	for _, f := range s.Fields {
		if f.Levels.Contains(l) {
			names = append(names, f.Name)
		}
	}
	return names
}

func (s ExplainSpec) clone() ExplainSpec {
	out := ExplainSpec{
		DisplayName: s.DisplayName,
		Levels:      append(Levels(nil), s.Levels...),
		Fields:      make([]FieldSpec, len(s.Fields)),
	}
	for i, f := range s.Fields {
		f.Levels = append(Levels(nil), f.Levels...)
		out.Fields[i] = f
	}
	return out
}

var (
	registryMu sync.RWMutex
	registry   = make(map[Kind]ExplainSpec)
)

// Register records the explain table for kind. Registering a kind twice is
// an error.
func Register(kind Kind, spec ExplainSpec) error {
	if kind == "" {
		return errors.New(errors.CodeInvalidRequest, "operation kind must not be empty")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[kind]; exists {
		return errors.New(errors.CodeInvalidRequest, "explain table already registered").
			WithDetail("kind", string(kind))
	}
	registry[kind] = spec.clone()
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister(kind Kind, spec ExplainSpec) {
	if err := Register(kind, spec); err != nil {
		panic(err)
	}
}

// Lookup returns a copy of the explain table registered for kind.
func Lookup(kind Kind) (ExplainSpec, error) {
	registryMu.RLock()
	spec, ok := registry[kind]
	registryMu.RUnlock()

	if !ok {
		return ExplainSpec{}, errors.Wrapf(errors.ErrUnknownOperation, errors.CodeUnimplemented,
			"no explain table for %q", kind)
	}
	return spec.clone(), nil
}

// VisibleFields resolves the explain table for d and returns the label and
// value of every non-nil field shown at level l, in declaration order.
func VisibleFields(d Desc, l Level) (*ordereddict.Dict, error) {
	spec, err := Lookup(d.Kind())
	if err != nil {
		return nil, err
	}

	fields := ordereddict.NewDict()
	if !spec.VisibleAt(l) {
		return fields, nil
	}
	for _, f := range spec.Fields {
		if !f.Levels.Contains(l) || f.Value == nil {
			continue
		}
		if v := f.Value(d); v != nil {
			fields.Set(f.Label, v)
		}
	}
	return fields, nil
}
