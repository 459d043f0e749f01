package domain

import "strings"

// Format is the file format of a digital book.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatEPUB Format = "epub"
	FormatMOBI Format = "mobi"
	FormatAZW3 Format = "azw3"
	FormatDJVU Format = "djvu"
	FormatTXT  Format = "txt"
)

// AllFormats returns every supported format in display order.
func AllFormats() []Format {
	return []Format{FormatPDF, FormatEPUB, FormatMOBI, FormatAZW3, FormatDJVU, FormatTXT}
}

// IsValid checks that the format is a known value.
func (f Format) IsValid() bool {
	switch f {
	case FormatPDF, FormatEPUB, FormatMOBI, FormatAZW3, FormatDJVU, FormatTXT:
		return true
	}
	return false
}

// String returns the string representation of Format.
func (f Format) String() string { return string(f) }

// ParseFormat trims and lowercases raw and checks enum membership.
func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	if f == "" {
		return "", requiredError("format")
	}
	if !f.IsValid() {
		return "", invalidEnumError("format", raw, formatNames())
	}
	return f, nil
}

func formatNames() []string {
	all := AllFormats()
	names := make([]string, len(all))
	for i, f := range all {
		names[i] = string(f)
	}
	return names
}
