package analysis

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfileYAML []byte

// JournalAbbreviation maps a short venue code to its full name.
type JournalAbbreviation struct {
	Abbr    string `yaml:"abbr" json:"abbr"`
	Journal string `yaml:"journal" json:"journal"`
}

// Profile describes the researcher whose portfolio is served.
type Profile struct {
	Name                 string                `yaml:"name" json:"name"`
	Title                string                `yaml:"title" json:"title"`
	Institution          string                `yaml:"institution" json:"institution"`
	Field                string                `yaml:"field" json:"field"`
	PrimaryResearchAreas []string              `yaml:"primary_research_areas" json:"primaryResearchAreas"`
	Methodologies        []string              `yaml:"methodologies" json:"methodologies"`
	JournalAbbreviations []JournalAbbreviation `yaml:"journal_abbreviations" json:"journalAbbreviations"`
}

// LoadProfile reads a profile from path, or the embedded default when path is empty.
func LoadProfile(path string) (*Profile, error) {
	data := defaultProfileYAML
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read site profile: %w", err)
		}
		data = raw
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse site profile: %w", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("site profile name is required")
	}
	return &p, nil
}

// Intro is the one-paragraph researcher description used in prompts.
func (p *Profile) Intro() string {
	areas := strings.ToLower(joinAnd(p.PrimaryResearchAreas))
	return fmt.Sprintf("You are analyzing an academic paper by Dr. %s, a %s at %s. Their research focuses on %s.",
		p.Name, p.Title, p.Institution, areas)
}

// AbbreviationBlock lists the journal abbreviations one per line.
func (p *Profile) AbbreviationBlock() string {
	var sb strings.Builder
	for _, a := range p.JournalAbbreviations {
		fmt.Fprintf(&sb, "- %s = %s\n", a.Abbr, a.Journal)
	}
	return sb.String()
}

func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}
