package model

import (
	"fmt"
	"strings"
)

// SubjectCombination is a three-subject THPTQG exam group such as "A00".
type SubjectCombination string

// SubjectCombinationInfo describes one member of the catalog.
type SubjectCombinationInfo struct {
	Code     SubjectCombination `json:"code"`
	Group    string             `json:"group"`
	Subjects [3]string          `json:"subjects"`
}

// subjectCombinations is the closed member list, in catalog order.
var subjectCombinations = []SubjectCombinationInfo{
	{"A00", "A", [3]string{"Toán", "Lí", "Hóa"}},
	{"A01", "A", [3]string{"Toán", "Lí", "Anh"}},
	{"A02", "A", [3]string{"Toán", "Lí", "Sinh"}},
	{"A03", "A", [3]string{"Toán", "Lí", "Sử"}},
	{"A04", "A", [3]string{"Toán", "Lí", "Địa"}},
	{"A05", "A", [3]string{"Toán", "Hóa", "Sử"}},
	{"A06", "A", [3]string{"Toán", "Hóa", "Lí"}},
	{"A07", "A", [3]string{"Toán", "Sử", "Địa"}},
	{"A08", "A", [3]string{"Toán", "Sử", "GDCD"}},
	{"A09", "A", [3]string{"Toán", "Địa", "GDCD"}},
	{"A10", "A", [3]string{"Toán", "Lí", "GDCD"}},
	{"A11", "A", [3]string{"Toán", "Hóa", "GDCD"}},
	{"A12", "A", [3]string{"Toán", "KHTN", "KHXH"}},
	{"A14", "A", [3]string{"Toán", "KHTN", "Địa"}},
	{"A15", "A", [3]string{"Toán", "KHTN", "GDCD"}},
	{"A16", "A", [3]string{"Toán", "KHTN", "Văn"}},
	{"A17", "A", [3]string{"Toán", "KHXH", "Lí"}},
	{"A18", "A", [3]string{"Toán", "KHXH", "Hóa"}},
	{"B00", "B", [3]string{"Toán", "Hóa", "Sinh"}},
	{"B01", "B", [3]string{"Toán", "Sinh", "Sử"}},
	{"B02", "B", [3]string{"Toán", "Sinh", "Địa"}},
	{"B03", "B", [3]string{"Toán", "Sinh", "Văn"}},
	{"B04", "B", [3]string{"Toán", "Sinh", "GDCD"}},
	{"B05", "B", [3]string{"Toán", "Sinh", "KHXH"}},
	{"B08", "B", [3]string{"Toán", "Sinh", "Anh"}},
	{"C00", "C", [3]string{"Văn", "Sử", "Địa"}},
	{"C01", "C", [3]string{"Văn", "Toán", "Lí"}},
	{"C02", "C", [3]string{"Văn", "Toán", "Hóa"}},
	{"C03", "C", [3]string{"Văn", "Toán", "Sử"}},
	{"D01", "D", [3]string{"Toán", "Văn", "Anh"}},
	{"D02", "D", [3]string{"Toán", "Văn", "Nga"}},
	{"D03", "D", [3]string{"Toán", "Văn", "Pháp"}},
	{"D04", "D", [3]string{"Toán", "Văn", "Trung"}},
	{"D05", "D", [3]string{"Toán", "Văn", "Đức"}},
	{"D06", "D", [3]string{"Toán", "Văn", "Nhật"}},
	{"D07", "D", [3]string{"Toán", "Hóa", "Anh"}},
	{"D08", "D", [3]string{"Toán", "Sinh", "Anh"}},
	{"D09", "D", [3]string{"Toán", "Sử", "Anh"}},
	{"D10", "D", [3]string{"Toán", "Địa", "Anh"}},
	{"X02", "X", [3]string{"Toán", "Văn", "Tin"}},
	{"X06", "X", [3]string{"Toán", "Lí", "Tin"}},
	{"X25", "X", [3]string{"Toán", "Anh", "GDKTPL"}},
	{"X26", "X", [3]string{"Toán", "Anh", "Tin"}},
	{"X70", "X", [3]string{"Văn", "Sử", "GDKTPL"}},
	{"X74", "X", [3]string{"Văn", "Địa", "GDKTPL"}},
	{"X78", "X", [3]string{"Văn", "GDKTPL", "Anh"}},
}

var subjectCombinationIndex = func() map[SubjectCombination]int {
	idx := make(map[SubjectCombination]int, len(subjectCombinations))
	for i, sc := range subjectCombinations {
		idx[sc.Code] = i
	}
	return idx
}()

// SubjectCombinations returns a copy of the catalog.
func SubjectCombinations() []SubjectCombinationInfo {
	out := make([]SubjectCombinationInfo, len(subjectCombinations))
	copy(out, subjectCombinations)
	return out
}

// ParseSubjectCombination normalizes case and whitespace and rejects codes
// outside the catalog instead of mapping them to a neighbour.
func ParseSubjectCombination(raw string) (SubjectCombination, error) {
	code := SubjectCombination(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := subjectCombinationIndex[code]; !ok {
		return "", fmt.Errorf("unknown subject combination %q", raw)
	}
	return code, nil
}

// Valid reports whether c is a catalog member.
func (c SubjectCombination) Valid() bool {
	_, err := ParseSubjectCombination(string(c))
	return err == nil
}

// Info returns the catalog entry for c.
func (c SubjectCombination) Info() (SubjectCombinationInfo, bool) {
	i, ok := subjectCombinationIndex[c]
	if !ok {
		return SubjectCombinationInfo{}, false
	}
	return subjectCombinations[i], true
}
