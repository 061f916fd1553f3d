package model

import "encoding/json"

// Portfolio section names served by the API.
const (
	SectionPersonalInfo     = "personal_info"
	SectionEducation        = "education"
	SectionSkills           = "skills"
	SectionProjects         = "projects"
	SectionCertifications   = "certifications"
	SectionCareerHighlights = "career_highlights"
)

// Portfolio is the profile document keyed by top-level section. Section
// bodies are kept as raw JSON; their schema belongs to whoever seeds the file.
type Portfolio map[string]json.RawMessage

// objectSections are the sections whose body is a JSON object; every other
// known section is a list.
var objectSections = map[string]bool{
	SectionPersonalInfo: true,
	SectionSkills:       true,
}

// knownSections lists the sections the API exposes.
var knownSections = map[string]bool{
	SectionPersonalInfo:     true,
	SectionEducation:        true,
	SectionSkills:           true,
	SectionProjects:         true,
	SectionCertifications:   true,
	SectionCareerHighlights: true,
}

// IsKnownSection reports whether name is one of the exposed sections.
func IsKnownSection(name string) bool {
	return knownSections[name]
}

// Section returns the raw body of the named section. A missing section yields
// an empty object or an empty list depending on the section's shape.
func (p Portfolio) Section(name string) json.RawMessage {
	if raw, ok := p[name]; ok && len(raw) > 0 {
		return raw
	}
	if objectSections[name] {
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(`[]`)
}
