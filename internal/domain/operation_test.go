// internal/domain/operation_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryTotalMajorUnits(t *testing.T) {
	tests := []struct {
		name       string
		totalMinor int64
		want       string
	}{
		{"whole units", 500, "5"},
		{"with cents", 123456, "1234.56"},
		{"negative total", -250, "-2.5"},
		{"zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := CategoryTotal{TotalMinor: tt.totalMinor}
			assert.Equal(t, tt.want, total.Total().String())
		})
	}
}
