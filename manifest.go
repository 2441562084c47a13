package symdex

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// SectionAll is the name of the section that indexes every symbol.
const SectionAll = "all"

// Section is one search category of a generated site, such as "functions".
type Section struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`

	// Letters lists the first characters for which the section has a data
	// file. The position of a character selects the file.
	Letters string `json:"letters"`
}

// Files returns the data file names of the section in letter order.
func (s Section) Files() []string {
	letters := []rune(s.Letters)
	files := make([]string, len(letters))
	for i := range letters {
		files[i] = s.fileName(i)
	}
	return files
}

// FileFor returns the data file holding symbols that start like term.
// Files are chosen by the first character of the lowercased name, so
// "~Node" maps to the "~" file even though its key starts with "_7e".
// The bool result is false if the section has no file for it.
func (s Section) FileFor(term string) (string, bool) {
	first, ok := Letter(term)
	if !ok {
		return "", false
	}
	for i, r := range []rune(s.Letters) {
		if r == first {
			return s.fileName(i), true
		}
	}
	return "", false
}

func (s Section) fileName(i int) string {
	return s.Name + "_" + strconv.FormatInt(int64(i), 16) + ".js"
}

// Manifest describes the search sections of a site, as read from its
// searchdata.js.
type Manifest struct {
	Sections []Section `json:"sections"`
}

// Section returns the section with the given name, compared case-insensitively.
func (m *Manifest) Section(name string) (Section, bool) {
	for _, s := range m.Sections {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Section{}, false
}

// Files returns the data file names of the named sections, in the order the
// names are given. Every section is used when no names are given.
// Returns ENOTFOUND for an unknown section name.
func (m *Manifest) Files(names ...string) ([]string, error) {
	sections := m.Sections
	if len(names) > 0 {
		sections = make([]Section, 0, len(names))
		for _, name := range names {
			s, ok := m.Section(name)
			if !ok {
				return nil, Errorf(ENOTFOUND, "search section %q not found", name)
			}
			sections = append(sections, s)
		}
	}

	var files []string
	for _, s := range sections {
		files = append(files, s.Files()...)
	}
	return files, nil
}

// Letter returns the character that selects the data file for a symbol
// name: its first rune, lowercased.
func Letter(name string) (rune, bool) {
	if name == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(strings.ToLower(name))
	return r, true
}
