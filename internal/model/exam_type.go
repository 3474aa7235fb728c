package model

import (
	"fmt"
	"strings"
)

// EnumVersion stamps persisted enum values. Bump it whenever a member is
// added to or removed from ExamType or SubjectCombination so historical rows
// can be told apart from rows written against the new member list.
const EnumVersion = 1

// ExamType identifies the national exam an admission threshold applies to.
type ExamType string

const (
	ExamTypeTHPTQG ExamType = "THPTQG"
	ExamTypeDGNL   ExamType = "ĐGNL"
)

// ExamTypes lists every member in display order.
var ExamTypes = []ExamType{ExamTypeTHPTQG, ExamTypeDGNL}

// ParseExamType accepts the canonical wire form plus the ASCII spelling
// "DGNL" that clients without Vietnamese input tend to send.
func ParseExamType(raw string) (ExamType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "THPTQG":
		return ExamTypeTHPTQG, nil
	case "ĐGNL", "DGNL":
		return ExamTypeDGNL, nil
	}
	return "", fmt.Errorf("unknown exam type %q", raw)
}

// Valid reports whether t is a member of the closed set.
func (t ExamType) Valid() bool {
	_, err := ParseExamType(string(t))
	return err == nil
}

// Canonical returns the canonical spelling, or t unchanged if it is unknown.
func (t ExamType) Canonical() ExamType {
	if c, err := ParseExamType(string(t)); err == nil {
		return c
	}
	return t
}

// MaxScore is the upper bound of the exam's scoring scale.
func (t ExamType) MaxScore() float64 {
	switch t.Canonical() {
	case ExamTypeTHPTQG:
		return 30
	case ExamTypeDGNL:
		return 1200
	}
	return 0
}

// RequiresSubjectCombination reports whether thresholds of this exam are
// scoped to a subject combination.
func (t ExamType) RequiresSubjectCombination() bool {
	return t.Canonical() == ExamTypeTHPTQG
}
