package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# jsxplorer configuration
version: "1.0"

# How the analyzer is invoked. The command runs with --json and the
# analysis arguments appended.
analyzer:
  command: ["npx", "jsx-info"]
  # Per-run timeout. Large trees can take a while on first run while
  # npx resolves the package.
  timeout: 120s

# Editor used to open report locations from the TUI (e key).
# {file}, {line} and {column} are replaced per location; line and column
# are 1-based.
editor:
  command: []   # empty: $EDITOR, then vi

output:
  # text, json, markdown or csv
  default_format: text
  # auto, always or never
  color_mode: auto
  verbose: false
  emoji: true

# Settings for the watch command.
watch:
  # Quiet period after the last relevant change before re-running.
  debounce: 500ms
  # File extensions that trigger a re-run.
  extensions: [".js", ".jsx", ".ts", ".tsx"]
`
}

// MinimalSampleConfig returns a compact configuration with the settings most
// people change
func MinimalSampleConfig() string {
	return `# jsxplorer configuration
analyzer:
  command: ["npx", "jsx-info"]
output:
  default_format: text
`
}
