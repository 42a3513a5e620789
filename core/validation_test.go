package core

import (
	"errors"
	"testing"
)

func TestValidatePassage(t *testing.T) {
	tests := []struct {
		name    string
		passage *Passage
		wantErr error
	}{
		{
			name:    "valid passage",
			passage: &Passage{Document: "handbook.pdf", Page: 3, Content: "The capital of France is Paris."},
			wantErr: nil,
		},
		{
			name:    "nil passage",
			passage: nil,
			wantErr: ErrInvalidPassage,
		},
		{
			name:    "empty content",
			passage: &Passage{Document: "handbook.pdf", Page: 1},
			wantErr: ErrEmptyContent,
		},
		{
			name:    "empty document",
			passage: &Passage{Page: 1, Content: "text"},
			wantErr: ErrEmptyDocument,
		},
		{
			name:    "zero page",
			passage: &Passage{Document: "handbook.pdf", Page: 0, Content: "text"},
			wantErr: ErrInvalidPage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassage(tt.passage)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePassage() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePassage() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuestion(t *testing.T) {
	if err := ValidateQuestion("What is the refund policy?"); err != nil {
		t.Errorf("ValidateQuestion() unexpected error: %v", err)
	}
	if err := ValidateQuestion("   \t\n"); !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("ValidateQuestion() error = %v, want ErrEmptyQuestion", err)
	}
}
