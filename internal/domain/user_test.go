package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"both names", User{FirstName: "Sara", LastName: "Ahmadi"}, "Sara Ahmadi"},
		{"first only", User{FirstName: "Sara"}, "Sara"},
		{"no profile falls back to mobile", User{Mobile: "09121234567"}, "09121234567"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.user.FullName())
		})
	}
}
