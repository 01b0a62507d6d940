// Package tree defines the report outline: a polymorphic node hierarchy that
// is rebuilt from scratch on every render and projected into display items at
// the UI boundary.
package tree

// Kind tags the node variants.
type Kind int

const (
	KindFolder Kind = iota
	KindInfo
	KindCommand
	KindFileLocation
)

// PlaceholderLabel is the single child substituted into a folder built from an
// empty child list.
const PlaceholderLabel = "No results"

// FileLocation points at a source range. StartLine and EndLine are 1-based,
// StartColumn and EndColumn are 0-based character offsets.
type FileLocation struct {
	Filename    string `json:"filename"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}

// Node is one entry in the report outline. Parent is a back-reference for the
// host's reveal operation only; ownership always flows from parent to child
// and the whole tree is discarded on the next rebuild.
type Node struct {
	Kind        Kind
	Label       string
	Description string
	Icon        string
	Children    []*Node
	Parent      *Node

	// Command and Args form the activation action of KindCommand nodes.
	Command string
	Args    any

	// Location is the activation target of KindFileLocation nodes.
	Location FileLocation
}

// Folder builds a folder node. Nil children are dropped; an empty child list
// is replaced by a single placeholder info leaf so empty sections still render.
func Folder(label string, children []*Node) *Node {
	kept := make([]*Node, 0, len(children))
	for _, child := range children {
		if child != nil {
			kept = append(kept, child)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, Info(PlaceholderLabel))
	}

	folder := &Node{
		Kind:     KindFolder,
		Label:    label,
		Icon:     "folder",
		Children: kept,
	}
	for _, child := range kept {
		child.Parent = folder
	}
	return folder
}

// Info builds a plain leaf with an optional description.
func Info(label string, description ...string) *Node {
	node := &Node{Kind: KindInfo, Label: label, Icon: "info"}
	if len(description) > 0 {
		node.Description = description[0]
	}
	return node
}

// Command builds a leaf whose activation dispatches the named command.
func Command(label, command string, args any) *Node {
	return &Node{
		Kind:    KindCommand,
		Label:   label,
		Icon:    "command",
		Command: command,
		Args:    args,
	}
}

// FileLoc builds a leaf whose activation navigates to a source range.
func FileLoc(label, filename string, startLine, startColumn, endLine, endColumn int) *Node {
	return &Node{
		Kind:  KindFileLocation,
		Label: label,
		Icon:  "location",
		Location: FileLocation{
			Filename:    filename,
			StartLine:   startLine,
			StartColumn: startColumn,
			EndLine:     endLine,
			EndColumn:   endColumn,
		},
	}
}

// WithIcon overrides the default icon tag and returns the node for chaining
// inside builder expressions.
func (n *Node) WithIcon(icon string) *Node {
	n.Icon = icon
	return n
}
