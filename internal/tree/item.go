package tree

// Item is the display projection of a node: everything a host view needs to
// draw one row, with no reference back into the domain tree.
type Item struct {
	Label       string
	Description string
	Icon        string
	Expandable  bool
	Activatable bool
}

// Item projects the node for display.
func (n *Node) Item() Item {
	return Item{
		Label:       n.Label,
		Description: n.Description,
		Icon:        n.Icon,
		Expandable:  n.Kind == KindFolder,
		Activatable: n.Kind == KindCommand || n.Kind == KindFileLocation,
	}
}
