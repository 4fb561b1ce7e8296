package reviews

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"нет отзывов", nil, 0},
		{"один отзыв", []int{4}, 4},
		{"целое среднее", []int{5, 3}, 4},
		{"округление до сотых", []int{5, 4, 4}, 4.33},
		{"округление вверх", []int{5, 5, 4}, 4.67},
		{"минимальные оценки", []int{1, 1, 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageRating(tt.ratings))
		})
	}
}
