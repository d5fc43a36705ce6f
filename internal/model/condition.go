// Package model defines the data structures for conditional package builds.
package model

import "strings"

// DefaultLabel is the reserved fallback label. When declared inside a
// condition group it is always tried last, and it anchors the default chain
// used for legacy field derivation.
const DefaultLabel = "default"

// SpecKind discriminates the two condition spec shapes.
type SpecKind int

// Available SpecKind values.
const (
	// SpecFlat is a flat list of independent boolean labels.
	SpecFlat SpecKind = iota
	// SpecGrouped is an ordered list of named groups of mutually-exclusive labels.
	SpecGrouped
)

// ConditionGroup is a named set of mutually-exclusive build-time labels.
// Label order is declaration order and is significant for enumeration.
type ConditionGroup struct {
	Name   string
	Labels []string
}

// ConditionSpec is the resolved, immutable condition configuration. It is a
// tagged variant: Labels is populated for SpecFlat, Groups for SpecGrouped.
// Downstream components consume only the enumerated Combination list; the raw
// shape never leaks past the condition algebra.
type ConditionSpec struct {
	Kind   SpecKind
	Labels []string
	Groups []ConditionGroup
}

// NewFlatSpec builds a flat condition spec from independent labels.
func NewFlatSpec(labels []string) *ConditionSpec {
	return &ConditionSpec{Kind: SpecFlat, Labels: labels}
}

// NewGroupedSpec builds a grouped condition spec. Group order is preserved.
func NewGroupedSpec(groups []ConditionGroup) *ConditionSpec {
	return &ConditionSpec{Kind: SpecGrouped, Groups: groups}
}

// Assignment binds one condition group to its active label for one build
// pass. Flat labels are boolean-true assignments: Group holds the label and
// Label is empty.
type Assignment struct {
	Group string
	Label string
}

// Active returns the label that contributes to output-directory suffixes and
// resolution aliasing: the value for string-valued assignments, the key name
// for boolean-true ones.
func (a Assignment) Active() string {
	if a.Label == "" {
		return a.Group
	}

	return a.Label
}

// Combination is one concrete assignment of exactly one label per group,
// defining one build pass. The empty combination is the unconditional build.
// Never mutated after enumeration.
type Combination []Assignment

// Key returns the stable serialization of the combination, used to key the
// output accumulator. The empty combination serializes to "".
func (c Combination) Key() string {
	parts := make([]string, 0, len(c))

	for _, a := range c {
		if a.Label == "" {
			parts = append(parts, a.Group)
			continue
		}

		parts = append(parts, a.Group+"="+a.Label)
	}

	return strings.Join(parts, ",")
}

// ActiveLabels returns the active labels in assignment order.
func (c Combination) ActiveLabels() []string {
	labels := make([]string, 0, len(c))
	for _, a := range c {
		labels = append(labels, a.Active())
	}

	return labels
}

// With returns a new combination extended by one assignment. The receiver is
// left untouched so partial combinations can be shared during enumeration.
func (c Combination) With(a Assignment) Combination {
	next := make(Combination, 0, len(c)+1)
	next = append(next, c...)
	next = append(next, a)

	return next
}
