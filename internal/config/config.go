// Package config parses the jsonlist command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/jacoelho/jsonlist/internal/exit"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "dev"

var (
	ErrNoArguments           = errors.New("no arguments provided")
	ErrNoScenarioFiles       = errors.New("no scenario files specified")
	ErrInvalidVariableFormat = errors.New("variable must be in format name=value")
	ErrEmptyVariableName     = errors.New("variable name cannot be empty")
	ErrUnknownOutput         = errors.New("unknown output format")
)

// Config represents the complete configuration for the jsonlist tool.
type Config struct {
	ScenarioFiles []string
	Debug         bool
	Repeat        int     // Additional iterations after first run (negative = infinite)
	RateLimit     float64 // Steps per second (0 = unlimited)

	Output  string
	NoColor bool

	Variables map[string]any
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.ScenarioFiles) == 0 {
		return ErrNoScenarioFiles
	}

	for _, file := range c.ScenarioFiles {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("scenario file %s not found: %w", file, err)
		}
	}

	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutput, c.Output)
	}

	return nil
}

// variablesFlag implements flag.Value for parsing multiple -variable flags.
type variablesFlag map[string]any

func (v variablesFlag) String() string {
	var pairs []string
	for k, val := range v {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, val))
	}
	return strings.Join(pairs, ",")
}

// Set parses and stores a variable in name=value format.
func (v variablesFlag) Set(value string) error {
	name, val, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("%w, got: %s", ErrInvalidVariableFormat, value)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyVariableName
	}

	v[name] = val
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help/version is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage and error output since we handle it ourselves
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		debug        = fs.Bool("debug", false, "Print each step's inputs and result")
		repeat       = fs.Int("repeat", 0, "Number of additional times to repeat after the first run (negative for infinite loop)")
		rateLimit    = fs.Float64("rate-limit", 0, "Rate limit in steps per second (0 for unlimited)")
		variables    = make(variablesFlag)
		variableFile = fs.String("variable-file", "", "Path to key=value file containing template variables")
		output       = fs.String("output", OutputText, "Output format: text or json")
		noColor      = fs.Bool("no-color", false, "Disable colored output")
		version      = fs.Bool("version", false, "Show version information")
		versionShort = fs.Bool("v", false, "Show version information")
	)

	fs.Var(variables, "variable", "Variable in format name=value (can be used multiple times)")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Usagef("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	if *version || *versionShort {
		return nil, exit.Success(fmt.Sprintf("jsonlist %s\n", Version))
	}

	files := fs.Args()
	if len(files) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrNoScenarioFiles, Usage())
	}

	// Command-line variables take precedence over file variables
	finalVariables := make(map[string]any)
	if *variableFile != "" {
		fileVariables, err := loadVariableFile(*variableFile)
		if err != nil {
			return nil, exit.Errorf("Error: failed to load variable file: %v\n", err)
		}
		maps.Copy(finalVariables, fileVariables)
	}
	maps.Copy(finalVariables, variables)

	config := &Config{
		ScenarioFiles: files,
		Debug:         *debug,
		Repeat:        *repeat,
		RateLimit:     *rateLimit,
		Output:        *output,
		NoColor:       *noColor,
		Variables:     finalVariables,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// loadVariableFile loads variables from a key=value format file.
// It supports comments (lines starting with #) and empty lines.
func loadVariableFile(filename string) (map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	variables := make(map[string]any)

	for lineNum, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid format at line %d: %s (expected key=value)", lineNum+1, line)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("empty key at line %d: %s", lineNum+1, line)
		}

		variables[key] = strings.TrimSpace(value)
	}

	return variables, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jsonlist - path-addressable JSON scenario runner

Usage: jsonlist [options] <file1> [file2] ...

Options:
  --debug                 Print each step's inputs and result
  --repeat N              Number of additional times to repeat after first run (negative for infinite)
  --rate-limit N          Rate limit in steps per second (0 for unlimited)
  --variable NAME=VALUE   Variable in format name=value (can be used multiple times)
  --variable-file FILE    Path to key=value file containing template variables
  --output FORMAT         Output format: text or json (default: text)
  --no-color              Disable colored output
  -h, --help              Show this help message
  -v, --version           Show version information

Examples:
  jsonlist scenario.yaml                      # Run scenario file once
  jsonlist --debug scenario.yaml              # Trace every step
  jsonlist --repeat 9 scenario.yaml           # Run scenario ten times
  jsonlist --output json scenario.yaml        # Machine-readable report
  jsonlist a.yaml b.yaml                      # Run multiple scenario files in sequence
  jsonlist --variable ID=42 scenario.yaml     # Pass variable to templates
`
}
