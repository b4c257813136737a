package security

import (
	"strings"
	"testing"

	"compliscan/scan-engine/internal/model"
)

func TestValidateScanRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     model.ScanRequest
		wantErr error
	}{
		{"valid", model.ScanRequest{Code: "x = 1"}, nil},
		{"valid with standards", model.ScanRequest{Code: "x = 1", Standards: []string{"PCI-DSS"}}, nil},
		{"empty code", model.ScanRequest{}, ErrEmptyCode},
		{"whitespace code", model.ScanRequest{Code: " \n\t "}, ErrEmptyCode},
		{"blank standard entry", model.ScanRequest{Code: "x = 1", Standards: []string{"PCI-DSS", " "}}, ErrBlankStandard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateScanRequest(tt.req, 0); err != tt.wantErr {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateScanRequestSizeCap(t *testing.T) {
	req := model.ScanRequest{Code: strings.Repeat("a", 100)}
	if err := ValidateScanRequest(req, 50); err != ErrCodeTooLarge {
		t.Fatalf("got %v, want ErrCodeTooLarge", err)
	}
	if err := ValidateScanRequest(req, 100); err != nil {
		t.Fatalf("code at the cap should pass, got %v", err)
	}
}
