package model

// Format selects the CSV schema of a catalog file.
type Format int

const (
	// FormatCurrent is title,original_key,alternative_titles,lyricist,composer.
	FormatCurrent Format = iota

	// FormatLegacy is the four-column schema of the first site:
	// name,key,hymn_ref,sheet_type.
	FormatLegacy
)

// Header returns the column names of the format, in file order.
//
// A new slice is returned on every call.
func (f Format) Header() []string {
	if f == FormatLegacy {
		return []string{"name", "key", "hymn_ref", "sheet_type"}
	}
	return []string{"title", "original_key", "alternative_titles", "lyricist", "composer"}
}

// HasField reports whether name is one of the format's columns.
func (f Format) HasField(name string) bool {
	for _, field := range f.Header() {
		if field == name {
			return true
		}
	}
	return false
}

// String returns "legacy" or "current".
func (f Format) String() string {
	if f == FormatLegacy {
		return "legacy"
	}
	return "current"
}

// titleField and keyField return the column holding each value.
func (f Format) titleField() string {
	if f == FormatLegacy {
		return "name"
	}
	return "title"
}

func (f Format) keyField() string {
	if f == FormatLegacy {
		return "key"
	}
	return "original_key"
}
