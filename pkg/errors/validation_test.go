package errors

import (
	"math"
	"testing"
)

func TestValidateDocName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "family", false},
		{"valid with dash", "org-chart", false},
		{"valid with underscore", "org_chart", false},
		{"valid with dot", "org.chart", false},
		{"valid with spaces", "engineering org", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFileStem(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid svg", "layout.svg", false},
		{"valid json", "layout.json", false},
		{"valid bare", "layout", false},

		{"empty", "", true},
		{"with path /", "path/to/file", true},
		{"with path \\", "path\\to\\file", true},
		{"hidden file", ".hidden", true},
		{"hidden file long", ".secret.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileStem(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFileStem(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "layouts/abc123.json", false},
		{"valid nested", "a/b/c.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "foo/../bar", true},
		{"backslash", "foo\\bar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/tree.json", false},
		{"http", "http://example.com/tree.json", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBox(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"valid", 80, 36, false},
		{"zero is valid", 0, 0, false},

		{"negative width", -1, 36, true},
		{"negative height", 80, -1, true},
		{"nan width", math.NaN(), 36, true},
		{"nan height", 80, math.NaN(), true},
		{"positive infinity", math.Inf(1), 36, true},
		{"negative infinity", 80, math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBox(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBox(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGaps(t *testing.T) {
	tests := []struct {
		name    string
		v, h    float64
		wantErr bool
	}{
		{"valid", 20, 20, false},
		{"zero is valid", 0, 0, false},

		{"negative vertical", -5, 20, true},
		{"negative horizontal", 20, -5, true},
		{"nan", math.NaN(), 20, true},
		{"infinity", 20, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGaps(tt.v, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGaps(%v, %v) error = %v, wantErr %v", tt.v, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestValidateStyleName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "simple", false},
		{"blueprint", "blueprint", false},
		{"dashed", "high-contrast", false},

		{"empty", "", true},
		{"uppercase", "Simple", true},
		{"leading digit", "1simple", true},
		{"spaces", "my style", true},
		{"path chars", "../simple", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStyleName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStyleName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
