package referenceframe

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Error categories. Every error returned while building a model unwraps to exactly one of these.
var (
	// ErrLocalValidation covers invalid enum values and malformed literals found while constructing a
	// single link or joint.
	ErrLocalValidation = errors.New("invalid model entity")
	// ErrReferential covers names that do not resolve, or resolve ambiguously.
	ErrReferential = errors.New("unresolved model reference")
	// ErrStructural covers models whose links do not form a single rooted tree, or whose mimic
	// relations loop.
	ErrStructural = errors.New("invalid model structure")
)

var (
	// ErrMissingField is used when a required field of a record is absent.
	ErrMissingField = errors.New("required field missing")
	// ErrGeometryUnspecified is used when a geometry element declares no shape.
	ErrGeometryUnspecified = errors.New("geometry declares no shape")
	// ErrGeometryAmbiguous is used when a geometry element declares more than one shape.
	ErrGeometryAmbiguous = errors.New("geometry declares more than one shape")
	// ErrNoModelInformation is used when there is no model information.
	ErrNoModelInformation = errors.New("no model information")
)

// FieldError reports a local validation failure on one field of a named entity.
type FieldError struct {
	Entity string
	Name   string
	Field  string
	Err    error
}

// NewFieldError is used when a field of a link or joint record cannot be constructed.
func NewFieldError(entity, name, field string, err error) error {
	return &FieldError{Entity: entity, Name: name, Field: field, Err: err}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: field %q: %v", e.Entity, e.Name, e.Field, e.Err)
}

// Unwrap exposes both the category and the underlying cause.
func (e *FieldError) Unwrap() []error {
	return []error{ErrLocalValidation, e.Err}
}

// UnsupportedJointTypeError is returned when a joint declares a type outside of the supported set.
type UnsupportedJointTypeError struct {
	Joint string
	Type  string
}

// NewUnsupportedJointTypeError is used when a joint type is not one of SupportedJointTypes.
func NewUnsupportedJointTypeError(joint, jointType string) error {
	return &UnsupportedJointTypeError{Joint: joint, Type: jointType}
}

func (e *UnsupportedJointTypeError) Error() string {
	return fmt.Sprintf("joint %q: unsupported joint type %q", e.Joint, e.Type)
}

// Unwrap returns ErrLocalValidation.
func (e *UnsupportedJointTypeError) Unwrap() error {
	return ErrLocalValidation
}

// DuplicateNameError is returned when two links or two joints share a name.
type DuplicateNameError struct {
	Kind string
	Name string
}

// NewDuplicateNameError is used when a name is declared twice for the same kind of entity.
func NewDuplicateNameError(kind, name string) error {
	return &DuplicateNameError{Kind: kind, Name: name}
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s name %q is declared more than once", e.Kind, e.Name)
}

// Unwrap returns ErrReferential.
func (e *DuplicateNameError) Unwrap() error {
	return ErrReferential
}

// UnknownLinkReferenceError is returned when a joint names a parent or child link that does not exist.
type UnknownLinkReferenceError struct {
	Joint string
	Link  string
}

// NewUnknownLinkReferenceError is used when a joint's parent or child link cannot be found.
func NewUnknownLinkReferenceError(joint, link string) error {
	return &UnknownLinkReferenceError{Joint: joint, Link: link}
}

func (e *UnknownLinkReferenceError) Error() string {
	return fmt.Sprintf("joint %q references unknown link %q", e.Joint, e.Link)
}

// Unwrap returns ErrReferential.
func (e *UnknownLinkReferenceError) Unwrap() error {
	return ErrReferential
}

// DuplicateChildJointError is returned when more than one joint claims the same link as its child.
type DuplicateChildJointError struct {
	Link   string
	Joints []string
}

// NewDuplicateChildJointError is used when a link would have more than one parent joint.
func NewDuplicateChildJointError(link string, joints ...string) error {
	return &DuplicateChildJointError{Link: link, Joints: joints}
}

func (e *DuplicateChildJointError) Error() string {
	return fmt.Sprintf("link %q is the child of more than one joint: %s", e.Link, strings.Join(e.Joints, ", "))
}

// Unwrap returns ErrReferential.
func (e *DuplicateChildJointError) Unwrap() error {
	return ErrReferential
}

// UnknownMimicTargetError is returned when a joint mimics a joint that does not exist.
type UnknownMimicTargetError struct {
	Joint  string
	Target string
}

// NewUnknownMimicTargetError is used when a mimic target cannot be found.
func NewUnknownMimicTargetError(joint, target string) error {
	return &UnknownMimicTargetError{Joint: joint, Target: target}
}

func (e *UnknownMimicTargetError) Error() string {
	return fmt.Sprintf("joint %q mimics unknown joint %q", e.Joint, e.Target)
}

// Unwrap returns ErrReferential.
func (e *UnknownMimicTargetError) Unwrap() error {
	return ErrReferential
}

// SelfMimicError is returned when a joint mimics itself.
type SelfMimicError struct {
	Joint string
}

// NewSelfMimicError is used when a joint names itself as its mimic target.
func NewSelfMimicError(joint string) error {
	return &SelfMimicError{Joint: joint}
}

func (e *SelfMimicError) Error() string {
	return fmt.Sprintf("joint %q mimics itself", e.Joint)
}

// Unwrap returns ErrReferential.
func (e *SelfMimicError) Unwrap() error {
	return ErrReferential
}

// NoRootLinkError is returned when every link has a parent joint, or there are no links at all.
type NoRootLinkError struct{}

// NewNoRootLinkError is used when no link is free of a parent joint.
func NewNoRootLinkError() error {
	return &NoRootLinkError{}
}

func (e *NoRootLinkError) Error() string {
	return "model has no root link"
}

// Unwrap returns ErrStructural.
func (e *NoRootLinkError) Unwrap() error {
	return ErrStructural
}

// MultipleRootsError is returned when more than one link lacks a parent joint.
type MultipleRootsError struct {
	Roots []string
}

// NewMultipleRootsError is used when the links form a forest rather than a single tree.
func NewMultipleRootsError(roots ...string) error {
	return &MultipleRootsError{Roots: roots}
}

func (e *MultipleRootsError) Error() string {
	return fmt.Sprintf("model has more than one root link: %s", strings.Join(e.Roots, ", "))
}

// Unwrap returns ErrStructural.
func (e *MultipleRootsError) Unwrap() error {
	return ErrStructural
}

// UnreachableLinkError is returned for a link that cannot be reached from the root.
type UnreachableLinkError struct {
	Link string
}

// NewUnreachableLinkError is used when a link is disconnected from the root.
func NewUnreachableLinkError(link string) error {
	return &UnreachableLinkError{Link: link}
}

func (e *UnreachableLinkError) Error() string {
	return fmt.Sprintf("link %q is not reachable from the root link", e.Link)
}

// Unwrap returns ErrStructural.
func (e *UnreachableLinkError) Unwrap() error {
	return ErrStructural
}

// CycleDetectedError is returned when joints connect links in a loop.
type CycleDetectedError struct {
	Links []string
}

// NewCycleDetectedError is used when link traversal returns to a link already visited.
func NewCycleDetectedError(links ...string) error {
	return &CycleDetectedError{Links: links}
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("kinematic cycle detected through links: %s", strings.Join(e.Links, " -> "))
}

// Unwrap returns ErrStructural.
func (e *CycleDetectedError) Unwrap() error {
	return ErrStructural
}

// MimicCycleError is returned when mimic relations form a loop.
type MimicCycleError struct {
	Joints []string
}

// NewMimicCycleError is used when no mimic evaluation order exists.
func NewMimicCycleError(joints ...string) error {
	return &MimicCycleError{Joints: joints}
}

func (e *MimicCycleError) Error() string {
	return fmt.Sprintf("mimic cycle detected between joints: %s", strings.Join(e.Joints, ", "))
}

// Unwrap returns ErrStructural.
func (e *MimicCycleError) Unwrap() error {
	return ErrStructural
}

// NewLinkNotFoundError is used when a link name is not part of a Robot.
func NewLinkNotFoundError(name string) error {
	return errors.Errorf("link %q not found", name)
}

// NewJointNotFoundError is used when a joint name is not part of a Robot.
func NewJointNotFoundError(name string) error {
	return errors.Errorf("joint %q not found", name)
}

// NewMissingJointPositionError is used when an actuated joint is given no position.
func NewMissingJointPositionError(joint string) error {
	return errors.Errorf("no position given for actuated joint %q", joint)
}
