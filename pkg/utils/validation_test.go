package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title string   `json:"title" validate:"required,max=10"`
	Tags  []string `json:"tags,omitempty" validate:"omitempty,max=2,dive,max=5"`
	Sort  string   `json:"sortBy,omitempty" validate:"omitempty,oneof=newest oldest"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     sampleRequest
		wantErr string
	}{
		{name: "valid", req: sampleRequest{Title: "ok"}},
		{name: "missing title", req: sampleRequest{}, wantErr: "title is required"},
		{name: "title too long", req: sampleRequest{Title: "abcdefghijk"}, wantErr: "title must be at most 10 characters"},
		{name: "too many tags", req: sampleRequest{Title: "ok", Tags: []string{"a", "b", "c"}}, wantErr: "tags must have at most 2 items"},
		{name: "bad enum", req: sampleRequest{Title: "ok", Sort: "random"}, wantErr: "sortBy must be one of: newest oldest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.req)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
