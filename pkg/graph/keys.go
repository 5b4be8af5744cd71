package graph

import "strings"

const keySeparator = "::"

// SubjectKey returns the node key for a subject.
func SubjectKey(subject string) string {
	return "subject" + keySeparator + subject
}

// UnitKey returns the node key for a unit within a subject.
func UnitKey(subject, unit string) string {
	return strings.Join([]string{"unit", subject, unit}, keySeparator)
}

// NoteKey returns the node key for a note. The path must already be
// absolute; two invocations naming the same file must produce the same key.
func NoteKey(absPath string) string {
	return "note" + keySeparator + absPath
}

// ConceptKey returns the node key for a normalized term scoped to a
// (subject, unit) pair. Lexically identical terms under different scopes
// yield distinct keys and therefore distinct nodes.
func ConceptKey(subject, unit, term string) string {
	return strings.Join([]string{"concept", subject, unit, term}, keySeparator)
}

// conceptPrefix is the key prefix shared by every concept in a unit's scope.
func conceptPrefix(subject, unit string) string {
	return strings.Join([]string{"concept", subject, unit}, keySeparator) + keySeparator
}
