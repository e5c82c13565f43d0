package metrics

import (
	"errors"
	"unicode/utf8"
)

// MaxLabelLen is the number of label characters a slot has room for.
const MaxLabelLen = 3

// ErrInvalidDefinition is wrapped by every error NewRegistry returns.
var ErrInvalidDefinition = errors.New("invalid metric definition")

// DefinitionError describes why a Definition was rejected.
type DefinitionError struct {
	Name   string
	Reason string
}

func (e *DefinitionError) Error() string {
	return "metric " + e.Name + ": " + e.Reason
}

func (e *DefinitionError) Unwrap() error { return ErrInvalidDefinition }

// Reading is a Definition paired with its current display value.
type Reading struct {
	Definition
	Magnitude float64 // converted, rounded and non-negative
	Negative  bool    // sign icon required (KindAngleSigned only)
	Fresh     bool    // updated since the last Consume
}

type entry struct {
	def    Definition
	tokens []string

	magnitude float64
	negative  bool
	fresh     bool
}

// Registry owns the metric table and the current value of every metric.
// It is not safe for concurrent use; the monitor loop is its only caller.
type Registry struct {
	entries []entry
	topics  []string
}

// NewRegistry validates defs and creates a registry with every value at zero.
// Definition order is kept for Snapshot and Topics.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{entries: make([]entry, 0, len(defs))}

	type key struct{ topic, path string }
	seenPath := make(map[key]string, len(defs))
	seenSlot := make(map[Slot]string, len(defs))
	seenTopic := make(map[string]bool)

	for _, d := range defs {
		if d.Topic == "" {
			return nil, &DefinitionError{Name: d.Name, Reason: "empty topic"}
		}
		tokens, ok := SplitPath(d.Path)
		if !ok {
			return nil, &DefinitionError{Name: d.Name, Reason: "malformed path \"" + d.Path + "\""}
		}
		if n := utf8.RuneCountInString(d.Label); n == 0 || n > MaxLabelLen {
			return nil, &DefinitionError{Name: d.Name, Reason: "label \"" + d.Label + "\" must be 1-3 characters"}
		}
		if !d.Kind.valid() {
			return nil, &DefinitionError{Name: d.Name, Reason: "unknown kind"}
		}
		k := key{d.Topic, d.Path}
		if other, dup := seenPath[k]; dup {
			return nil, &DefinitionError{Name: d.Name, Reason: "topic and path already used by " + other}
		}
		if other, dup := seenSlot[d.Slot]; dup {
			return nil, &DefinitionError{Name: d.Name, Reason: "slot already used by " + other}
		}
		seenPath[k] = d.Name
		seenSlot[d.Slot] = d.Name
		if !seenTopic[d.Topic] {
			seenTopic[d.Topic] = true
			r.topics = append(r.topics, d.Topic)
		}
		r.entries = append(r.entries, entry{def: d, tokens: tokens})
	}
	return r, nil
}

// Topics returns the distinct topics to subscribe to, in definition order.
func (r *Registry) Topics() []string {
	out := make([]string, len(r.topics))
	copy(out, r.topics)
	return out
}

// Ingest applies a telemetry message to every metric read from topic.
// Metrics whose path does not resolve keep their current value. It returns
// the number of metrics updated.
func (r *Registry) Ingest(topic string, msg any) int {
	updated := 0
	for i := range r.entries {
		e := &r.entries[i]
		if e.def.Topic != topic {
			continue
		}
		raw, ok := ResolveTokens(msg, e.tokens)
		if !ok {
			continue
		}
		e.magnitude, e.negative = Convert(raw, e.def.Multiplier, e.def.Kind)
		e.fresh = true
		updated++
	}
	return updated
}

// Snapshot returns the current readings in definition order without
// changing any state.
func (r *Registry) Snapshot() []Reading {
	out := make([]Reading, len(r.entries))
	for i, e := range r.entries {
		out[i] = Reading{
			Definition: e.def,
			Magnitude:  e.magnitude,
			Negative:   e.negative,
			Fresh:      e.fresh,
		}
	}
	return out
}

// Consume returns the current readings and resets every metric to zero, so
// a metric that gets no update before the next draw shows no data.
func (r *Registry) Consume() []Reading {
	out := r.Snapshot()
	for i := range r.entries {
		e := &r.entries[i]
		e.magnitude, e.negative, e.fresh = 0, false, false
	}
	return out
}

// Len returns the number of metrics in the table.
func (r *Registry) Len() int { return len(r.entries) }
