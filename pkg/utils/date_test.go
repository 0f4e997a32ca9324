package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2024-03-01T10:15:00+03:00", want: "2024-03-01"},
		{in: "2024-03-01 10:15:00", want: "2024-03-01"},
		{in: "2024-03-01", want: "2024-03-01"},
		{in: " 2024-03-01T00:00:00 ", want: "2024-03-01"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateDate(tt.in))
		})
	}
}
