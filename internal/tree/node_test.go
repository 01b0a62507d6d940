package tree

import (
	"testing"
)

func TestFolderSetsParentLinks(t *testing.T) {
	a := Info("a")
	b := Info("b")

	folder := Folder("parent", []*Node{a, b})

	if len(folder.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(folder.Children))
	}
	for _, child := range folder.Children {
		if child.Parent != folder {
			t.Errorf("child %q has parent %v, want the folder", child.Label, child.Parent)
		}
	}
}

func TestFolderFiltersNilChildren(t *testing.T) {
	folder := Folder("parent", []*Node{nil, Info("kept"), nil})

	if len(folder.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(folder.Children))
	}
	if folder.Children[0].Label != "kept" {
		t.Errorf("child label = %q, want %q", folder.Children[0].Label, "kept")
	}
}

func TestFolderEmptyChildListGetsPlaceholder(t *testing.T) {
	cases := [][]*Node{nil, {}, {nil, nil}}

	for _, children := range cases {
		folder := Folder("empty", children)
		if len(folder.Children) != 1 {
			t.Fatalf("children = %d, want exactly 1 placeholder", len(folder.Children))
		}
		placeholder := folder.Children[0]
		if placeholder.Kind != KindInfo {
			t.Errorf("placeholder kind = %v, want KindInfo", placeholder.Kind)
		}
		if placeholder.Label != PlaceholderLabel {
			t.Errorf("placeholder label = %q, want %q", placeholder.Label, PlaceholderLabel)
		}
	}
}

func TestFileLocKeepsOneBasedLines(t *testing.T) {
	node := FileLoc("snippet", "src/App.jsx", 5, 2, 5, 20)

	loc := node.Location
	if loc.StartLine != 5 || loc.EndLine != 5 {
		t.Errorf("lines = %d..%d, want 5..5", loc.StartLine, loc.EndLine)
	}
	if loc.StartColumn != 2 || loc.EndColumn != 20 {
		t.Errorf("columns = %d..%d, want 2..20", loc.StartColumn, loc.EndColumn)
	}
	if loc.Filename != "src/App.jsx" {
		t.Errorf("filename = %q", loc.Filename)
	}
}

func TestItemProjection(t *testing.T) {
	tests := []struct {
		name        string
		node        *Node
		expandable  bool
		activatable bool
	}{
		{name: "folder", node: Folder("f", []*Node{Info("x")}), expandable: true},
		{name: "info", node: Info("i", "desc")},
		{name: "command", node: Command("run", "run", nil), activatable: true},
		{name: "file location", node: FileLoc("l", "f.jsx", 1, 0, 1, 4), activatable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := tt.node.Item()
			if item.Label != tt.node.Label {
				t.Errorf("label = %q, want %q", item.Label, tt.node.Label)
			}
			if item.Expandable != tt.expandable {
				t.Errorf("expandable = %v, want %v", item.Expandable, tt.expandable)
			}
			if item.Activatable != tt.activatable {
				t.Errorf("activatable = %v, want %v", item.Activatable, tt.activatable)
			}
		})
	}

	info := Info("i", "42%")
	if got := info.Item().Description; got != "42%" {
		t.Errorf("description = %q, want %q", got, "42%")
	}
}
