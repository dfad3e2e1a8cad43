// Package ubl renders canonical invoices into the Croatian UBL 2.1 profile
// document and recovers them back from arbitrary compliant documents.
package ubl

import (
	"strings"
	"time"
)

// The three namespace URIs fixed by the schema.
const (
	NamespaceInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NamespaceCBC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	NamespaceCAC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
)

// Lexical formats fixed by the schema, independent of whatever formats the
// validator accepted on input.
const (
	issueDateLayout = "2006-01-02"
	issueTimeLayout = "15:04:05"
)

// The profile mandates two free-text notes with no dedicated schema field.
// They are synthesized at generation time and decomposed at parse time by
// these literal prefixes.
const (
	OperatorNotePrefix = "Operator: "
	IssuedNotePrefix   = "Issued: "

	// Local date, 24-hour clock.
	noteTimeLayout = "02.01.2006 15:04"
)

// OperatorNote builds the mandated operator identity note.
func OperatorNote(operator string) string {
	return OperatorNotePrefix + operator
}

// IssuedNote builds the mandated issue timestamp note.
func IssuedNote(issuedAt time.Time) string {
	return IssuedNotePrefix + issuedAt.Format(noteTimeLayout)
}

// SplitOperatorNote recovers the operator name from a note, reporting
// whether the note carried the operator prefix.
func SplitOperatorNote(note string) (string, bool) {
	if !strings.HasPrefix(note, OperatorNotePrefix) {
		return "", false
	}
	return strings.TrimPrefix(note, OperatorNotePrefix), true
}

// SplitIssuedNote recovers the issue timestamp from a note, reporting
// whether the note carried the prefix and a parseable timestamp.
func SplitIssuedNote(note string) (time.Time, bool) {
	if !strings.HasPrefix(note, IssuedNotePrefix) {
		return time.Time{}, false
	}
	t, err := time.Parse(noteTimeLayout, strings.TrimPrefix(note, IssuedNotePrefix))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
