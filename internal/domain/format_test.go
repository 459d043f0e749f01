package domain

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		want     Format
		wantCode FieldErrorCode
	}{
		{name: "pdf", input: "pdf", want: FormatPDF},
		{name: "uppercase", input: "EPUB", want: FormatEPUB},
		{name: "padded", input: "  mobi ", want: FormatMOBI},
		{name: "azw3", input: "azw3", want: FormatAZW3},
		{name: "djvu", input: "DjVu", want: FormatDJVU},
		{name: "txt", input: "txt", want: FormatTXT},
		{name: "empty", input: "", wantCode: CodeRequired},
		{name: "blank", input: "   ", wantCode: CodeRequired},
		{name: "unknown", input: "docx", wantCode: CodeInvalidEnum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tt.input)
			if tt.wantCode != "" {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("ParseFormat(%q) error = %v, want *ValidationError", tt.input, err)
				}
				if ve.Code() != tt.wantCode {
					t.Errorf("code = %q, want %q", ve.Code(), tt.wantCode)
				}
				if ve.Errors[0].Field != "format" {
					t.Errorf("field = %q, want format", ve.Errors[0].Field)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range AllFormats() {
		if !f.IsValid() {
			t.Errorf("%q should be valid", f)
		}
	}
	if Format("PDF").IsValid() {
		t.Error("IsValid is case-sensitive; use ParseFormat for input")
	}
}
