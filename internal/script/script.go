package script

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/todos-go/internal/todo"
)

// Version is the only script version understood.
const Version = 1

//go:embed demo.yaml
var demoScript []byte

// Format is the encoding of a script document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension. Anything that is not
// .json is read as YAML, which also accepts JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Seed is a starting task.
type Seed struct {
	Title  string      `json:"title"`
	Status todo.Status `json:"status,omitempty"`
}

// Script is a validated sequence of actions.
type Script struct {
	Version  int           `json:"version"`
	Examples bool          `json:"examples,omitempty"`
	Seed     []Seed        `json:"seed,omitempty"`
	Actions  []todo.Action `json:"actions"`
}

// Load reads, validates and decodes the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Demo returns the built-in scenario: two example tasks, one added task,
// toggle-all twice, the completed tab and a clear that removes nothing.
func Demo() *Script {
	s, err := Parse(demoScript, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded demo script: %v", err))
	}
	return s
}

// Parse validates and decodes a script document. Validation failures are
// reported as one *ValidationError per problem, joined together.
func Parse(data []byte, format Format) (*Script, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	normalizeRefs(doc)

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode script: %w", err)
	}
	var s Script
	if err := json.Unmarshal(normalized, &s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

// decode turns a document into the generic JSON value tree the schema
// validator expects.
func decode(data []byte, format Format) (interface{}, error) {
	var raw interface{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
		return raw, nil
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown script format %q", format)
	}

	// Round-trip through JSON so YAML scalars get JSON types.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return doc, nil
}

// normalizeRefs rewrites numeric refs as strings.
func normalizeRefs(doc interface{}) {
	root, ok := doc.(map[string]interface{})
	if !ok {
		return
	}
	actions, _ := root["actions"].([]interface{})
	for _, a := range actions {
		action, ok := a.(map[string]interface{})
		if !ok {
			continue
		}
		if n, ok := action["ref"].(float64); ok {
			action["ref"] = strconv.FormatFloat(n, 'f', -1, 64)
		}
	}
}

// Options returns the store options that set up the script's starting state.
func (s *Script) Options() []todo.Option {
	var opts []todo.Option
	if s.Examples {
		opts = append(opts, todo.WithExampleTasks())
	}
	if len(s.Seed) > 0 {
		tasks := make([]todo.Task, 0, len(s.Seed))
		for _, seed := range s.Seed {
			status := seed.Status
			if status == "" {
				status = todo.StatusActive
			}
			tasks = append(tasks, todo.Task{Title: seed.Title, Status: status})
		}
		opts = append(opts, todo.WithTasks(tasks))
	}
	return opts
}
