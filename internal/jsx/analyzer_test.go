package jsx

import (
	"testing"
)

const sampleReport = `{
	"directory": "/home/dev/app",
	"filenames": ["src/App.jsx", "src/Button.jsx"],
	"elapsedTime": 0.42,
	"componentTotal": 2,
	"componentUsageTotal": 13,
	"componentUsage": {"Button": 10, "Card": 3},
	"propUsage": {"Button": {"onClick": 6, "variant": 4}},
	"lineUsage": {
		"Button": {
			"onClick": [
				{
					"filename": "src/App.jsx",
					"startLoc": {"line": 12, "column": 8},
					"endLoc": {"line": 12, "column": 30},
					"propCode": "onClick={submit}"
				}
			]
		}
	},
	"errors": {
		"src/Broken.jsx": {
			"loc": {"line": 3, "column": 1},
			"message": "Unexpected token"
		}
	},
	"suggestedPlugins": ["jsx", "typescript"]
}`

func TestDecodeResult(t *testing.T) {
	result, err := DecodeResult([]byte(sampleReport))
	if err != nil {
		t.Fatalf("DecodeResult() error: %v", err)
	}

	if result.Directory != "/home/dev/app" {
		t.Errorf("Directory = %q", result.Directory)
	}
	if len(result.Filenames) != 2 {
		t.Errorf("Filenames count = %d, want 2", len(result.Filenames))
	}
	if result.ComponentUsage["Button"] != 10 {
		t.Errorf("ComponentUsage[Button] = %d, want 10", result.ComponentUsage["Button"])
	}
	if result.PropUsage["Button"]["variant"] != 4 {
		t.Errorf("PropUsage[Button][variant] = %d, want 4", result.PropUsage["Button"]["variant"])
	}

	occs := result.LineUsage["Button"]["onClick"]
	if len(occs) != 1 {
		t.Fatalf("LineUsage[Button][onClick] count = %d, want 1", len(occs))
	}
	if occs[0].StartLoc.Line != 12 || occs[0].StartLoc.Column != 8 {
		t.Errorf("occurrence start = %+v", occs[0].StartLoc)
	}
	if occs[0].PropCode != "onClick={submit}" {
		t.Errorf("PropCode = %q", occs[0].PropCode)
	}

	ferr, ok := result.Errors["src/Broken.jsx"]
	if !ok {
		t.Fatal("missing error entry for src/Broken.jsx")
	}
	if ferr.Message != "Unexpected token" || ferr.Loc.Line != 3 {
		t.Errorf("error entry = %+v", ferr)
	}
}

func TestDecodeResultNormalizesNilMaps(t *testing.T) {
	result, err := DecodeResult([]byte(`{"directory": "/app", "elapsedTime": 0.1}`))
	if err != nil {
		t.Fatalf("DecodeResult() error: %v", err)
	}

	if result.ComponentUsage == nil {
		t.Error("ComponentUsage should not be nil")
	}
	if result.PropUsage == nil {
		t.Error("PropUsage should not be nil")
	}
	if result.LineUsage == nil {
		t.Error("LineUsage should not be nil")
	}
	if result.Errors == nil {
		t.Error("Errors should not be nil")
	}
}

func TestDecodeResultInvalidJSON(t *testing.T) {
	if _, err := DecodeResult([]byte("not json")); err == nil {
		t.Error("DecodeResult() should fail on invalid JSON")
	}
}

func TestLastLine(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "single\n", want: "single"},
		{input: "first\nsecond\n\n", want: "second"},
		{input: "first\n   \nthird  \n", want: "third"},
	}

	for _, tt := range tests {
		if got := lastLine(tt.input); got != tt.want {
			t.Errorf("lastLine(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
