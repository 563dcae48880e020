package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetValidate(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		wantErr bool
	}{
		{name: "post", target: PostTarget(3)},
		{name: "comment", target: CommentTarget(9)},
		{name: "missing id", target: Target{Kind: TargetPost}, wantErr: true},
		{name: "unknown kind", target: Target{Kind: "user", EntityID: 1}, wantErr: true},
		{name: "zero value", target: Target{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "comment:12", CommentTarget(12).String())
}
