package portfolio

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section is a navigable part of the page.
type Section string

const (
	SectionHome       Section = "home"
	SectionExperience Section = "experience"
	SectionProjects   Section = "projects"
	SectionContact    Section = "contact"
)

// Sections in page order.
var Sections = []Section{SectionHome, SectionExperience, SectionProjects, SectionContact}

// Label is the navigation text, e.g. "Experience".
func (s Section) Label() string {
	return cases.Title(language.English).String(string(s))
}

// ParseSection resolves a section name.
func ParseSection(name string) (Section, bool) {
	for _, s := range Sections {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// Next returns the section after s, wrapping around.
func (s Section) Next() Section {
	for i, candidate := range Sections {
		if candidate == s {
			return Sections[(i+1)%len(Sections)]
		}
	}
	return Sections[0]
}
