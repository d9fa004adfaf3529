package domain

import "strings"

type MBTIType string

const (
	INTJ MBTIType = "INTJ"
	INTP MBTIType = "INTP"
	ENTJ MBTIType = "ENTJ"
	ENTP MBTIType = "ENTP"
	INFJ MBTIType = "INFJ"
	INFP MBTIType = "INFP"
	ENFJ MBTIType = "ENFJ"
	ENFP MBTIType = "ENFP"
	ISTJ MBTIType = "ISTJ"
	ISFJ MBTIType = "ISFJ"
	ESTJ MBTIType = "ESTJ"
	ESFJ MBTIType = "ESFJ"
	ISTP MBTIType = "ISTP"
	ISFP MBTIType = "ISFP"
	ESTP MBTIType = "ESTP"
	ESFP MBTIType = "ESFP"
)

// MBTIGroup is one of the four temperament groups used to list the types.
type MBTIGroup struct {
	TextKey string
	Types   []MBTIType
}

var MBTIGroups = []MBTIGroup{
	{TextKey: "analysts", Types: []MBTIType{INTJ, INTP, ENTJ, ENTP}},
	{TextKey: "diplomats", Types: []MBTIType{INFJ, INFP, ENFJ, ENFP}},
	{TextKey: "sentinels", Types: []MBTIType{ISTJ, ISFJ, ESTJ, ESFJ}},
	{TextKey: "explorers", Types: []MBTIType{ISTP, ISFP, ESTP, ESFP}},
}

var validTypes = func() map[MBTIType]bool {
	set := make(map[MBTIType]bool, 16)
	for _, g := range MBTIGroups {
		for _, t := range g.Types {
			set[t] = true
		}
	}
	return set
}()

// ParseMBTI normalizes user input ("intj", " Infp ") into an MBTIType.
func ParseMBTI(input string) (MBTIType, bool) {
	t := MBTIType(strings.ToUpper(strings.TrimSpace(input)))
	return t, t.IsValid()
}

func (t MBTIType) String() string {
	return string(t)
}

func (t MBTIType) IsValid() bool {
	return validTypes[t]
}

// NameKey is the text key of the type's display name ("intj_name").
func (t MBTIType) NameKey() string {
	return strings.ToLower(string(t)) + "_name"
}

// AllMBTITypes lists the 16 types in group order.
func AllMBTITypes() []MBTIType {
	out := make([]MBTIType, 0, 16)
	for _, g := range MBTIGroups {
		out = append(out, g.Types...)
	}
	return out
}
