package tree_test

import (
	"nodeforest/pkg/models"
)

func leaf(id int) *models.Node {
	return &models.Node{ID: id, Children: []*models.Node{}}
}

func branch(id int, children ...*models.Node) *models.Node {
	return &models.Node{ID: id, Children: children}
}

func expanded(n *models.Node) *models.Node {
	n.State.Expanded = true
	return n
}

func flat(id, parent int) *models.Node {
	return &models.Node{ID: id, ParentID: parent}
}

func rowIDs(rows []models.Row) []int {
	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.Node.ID)
	}
	return ids
}

func nodeIDs(nodes []*models.Node) []int {
	ids := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

// sampleForest:
//
//	1
//	├── 2
//	│   └── 4
//	└── 3
//	5
func sampleForest() []*models.Node {
	return []*models.Node{
		branch(1,
			branch(2, leaf(4)),
			leaf(3),
		),
		leaf(5),
	}
}
