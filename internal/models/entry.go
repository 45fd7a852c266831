package models

// Entry is one community group record of the directory
type Entry struct {
	Name        string     `yaml:"name" json:"name"`
	Platform    Platform   `yaml:"platform" json:"platform"`
	URL         string     `yaml:"url" json:"url"`
	Locations   []Location `yaml:"locations" json:"locations"`
	LanguageID  string     `yaml:"language_id,omitempty" json:"language_id,omitempty"`
	Commercial  bool       `yaml:"commercial,omitempty" json:"commercial,omitempty"`
	Tags        []string   `yaml:"tags,omitempty" json:"tags,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"` // kept in the data file, never rendered
}

// Location is the geographic scope of an entry.
// CountryID, City and Region narrow the scope in that order; a City is only
// meaningful together with a CountryID.
type Location struct {
	Continent Continent `yaml:"continent" json:"continent"`
	CountryID string    `yaml:"country_id,omitempty" json:"country_id,omitempty"`
	City      string    `yaml:"city,omitempty" json:"city,omitempty"`
	Region    string    `yaml:"region,omitempty" json:"region,omitempty"`
}

// DirectoryFile is the wrapped layout of the data file: a version marker and
// the list of groups. A bare top-level list of entries is accepted as well.
type DirectoryFile struct {
	Version string  `yaml:"version,omitempty"`
	Groups  []Entry `yaml:"groups"`
}
