package models

// BuildCategoryTree nests subcategories under their parents, optionally
// restricted to one category type. Subcategories whose parent is filtered out
// are dropped with it.
func BuildCategoryTree(categories []Category, categoryType CategoryType) []CategoryNode {
	var roots []CategoryNode
	for _, c := range categories {
		if c.ParentID != "" {
			continue
		}
		if categoryType != "" && c.Type != categoryType {
			continue
		}
		node := CategoryNode{Category: c}
		for _, sub := range categories {
			if sub.ParentID == c.ID {
				node.Subcategories = append(node.Subcategories, CategoryNode{Category: sub})
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// FlattenCategoryTree lists every category of a tree, parents before their
// subcategories.
func FlattenCategoryTree(tree []CategoryNode) []Category {
	var flat []Category
	for _, node := range tree {
		flat = append(flat, node.Category)
		for _, sub := range node.Subcategories {
			flat = append(flat, sub.Category)
		}
	}
	return flat
}
