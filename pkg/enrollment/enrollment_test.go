package enrollment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"ничего не пройдено", 0, 10, 0},
		{"половина", 5, 10, 50},
		{"все уроки", 10, 10, 100},
		{"округление вверх", 2, 3, 67},
		{"округление вниз", 1, 3, 33},
		{"курс без уроков", 0, 0, 0},
		{"отрицательное всего", 3, -1, 0},
		{"завершено больше активных", 7, 5, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeProgress(tt.completed, tt.total))
		})
	}
}
