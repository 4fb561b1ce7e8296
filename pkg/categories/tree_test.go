package categories

import (
	"testing"

	"eduplace-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func cat(id uint, parent *uint, order int) models.Category {
	return models.Category{
		Model:    gorm.Model{ID: id},
		NameRu:   "Категория",
		ParentID: parent,
		Order:    order,
		IsActive: true,
	}
}

func uintPtr(v uint) *uint {
	return &v
}

func TestBuildTreeNesting(t *testing.T) {
	cats := []models.Category{
		cat(1, nil, 0),
		cat(2, uintPtr(1), 0),
		cat(3, uintPtr(2), 0),
		cat(4, uintPtr(3), 0),
		cat(5, nil, 1),
	}
	roots := BuildTree(cats)
	require.Len(t, roots, 2)
	assert.Equal(t, uint(1), roots[0].ID)
	assert.Equal(t, uint(5), roots[1].ID)

	require.Len(t, roots[0].Children, 1)
	level2 := roots[0].Children[0]
	assert.Equal(t, uint(2), level2.ID)
	require.Len(t, level2.Children, 1)
	level3 := level2.Children[0]
	assert.Equal(t, uint(3), level3.ID)
	require.Len(t, level3.Children, 1)
	assert.Equal(t, uint(4), level3.Children[0].ID)
	assert.Empty(t, level3.Children[0].Children)
}

func TestBuildTreeOrphanBecomesRoot(t *testing.T) {
	// родитель 99 не в выборке, например деактивирован
	cats := []models.Category{
		cat(1, nil, 0),
		cat(2, uintPtr(99), 0),
	}
	roots := BuildTree(cats)
	require.Len(t, roots, 2)
	assert.Equal(t, uint(1), roots[0].ID)
	assert.Equal(t, uint(2), roots[1].ID)
}

func TestBuildTreeSortsByOrderThenID(t *testing.T) {
	cats := []models.Category{
		cat(3, nil, 2),
		cat(1, nil, 5),
		cat(2, nil, 2),
		cat(10, uintPtr(3), 1),
		cat(7, uintPtr(3), 0),
	}
	roots := BuildTree(cats)
	require.Len(t, roots, 3)
	assert.Equal(t, uint(2), roots[0].ID)
	assert.Equal(t, uint(3), roots[1].ID)
	assert.Equal(t, uint(1), roots[2].ID)

	require.Len(t, roots[1].Children, 2)
	assert.Equal(t, uint(7), roots[1].Children[0].ID)
	assert.Equal(t, uint(10), roots[1].Children[1].ID)
}

func TestDescendantIDs(t *testing.T) {
	cats := []models.Category{
		cat(1, nil, 0),
		cat(2, uintPtr(1), 0),
		cat(3, uintPtr(1), 0),
		cat(4, uintPtr(2), 0),
		cat(5, uintPtr(4), 0),
		cat(6, nil, 0),
	}
	ids := DescendantIDs(cats, 1)
	assert.ElementsMatch(t, []uint{2, 3, 4, 5}, ids)

	ids = DescendantIDs(cats, 2)
	assert.ElementsMatch(t, []uint{4, 5}, ids)

	assert.Empty(t, DescendantIDs(cats, 5))
	assert.Empty(t, DescendantIDs(cats, 6))
}
