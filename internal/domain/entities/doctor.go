package entities

import "slices"

// Doctor is an entry of the specialist directory.
type Doctor struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Specialty    string   `json:"specialty"`
	Rating       float64  `json:"rating"`
	Reviews      int      `json:"reviews"`
	Location     string   `json:"location"`
	Distance     string   `json:"distance"`
	Phone        string   `json:"phone"`
	Availability string   `json:"availability"`
	Languages    []string `json:"languages"`
	Education    string   `json:"education"`
	Experience   int      `json:"experience"`
	Image        string   `json:"image,omitempty"`
}

// Speaks reports whether the doctor lists language.
func (d *Doctor) Speaks(language string) bool {
	return slices.Contains(d.Languages, language)
}

// DirectoryOptions lists the values accepted by the directory filters.
type DirectoryOptions struct {
	Specialties []string `json:"specialties"`
	Locations   []string `json:"locations"`
	Languages   []string `json:"languages"`
}
