package categories

import (
	"eduplace-go/pkg/models"
	"sort"
)

type CategoryNode struct {
	models.Category
	Children []*CategoryNode `json:"children"`
}

// BuildTree раскладывает категории по родителям за один проход.
// Узлы без родителя (или с неактивным родителем) поднимаются в корень.
func BuildTree(cats []models.Category) []*CategoryNode {
	nodes := make(map[uint]*CategoryNode, len(cats))
	for i := range cats {
		nodes[cats[i].ID] = &CategoryNode{Category: cats[i], Children: []*CategoryNode{}}
	}
	roots := make([]*CategoryNode, 0)
	for _, node := range nodes {
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	sortNodes(roots)
	for _, node := range nodes {
		sortNodes(node.Children)
	}
	return roots
}

func sortNodes(nodes []*CategoryNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Order != nodes[j].Order {
			return nodes[i].Order < nodes[j].Order
		}
		return nodes[i].ID < nodes[j].ID
	})
}

// DescendantIDs обходит дерево в ширину по уровням, глубина не ограничена.
func DescendantIDs(cats []models.Category, rootID uint) []uint {
	byParent := make(map[uint][]uint, len(cats))
	for _, c := range cats {
		if c.ParentID != nil {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c.ID)
		}
	}
	var ids []uint
	frontier := []uint{rootID}
	for len(frontier) > 0 {
		var next []uint
		for _, id := range frontier {
			next = append(next, byParent[id]...)
		}
		ids = append(ids, next...)
		frontier = next
	}
	return ids
}
