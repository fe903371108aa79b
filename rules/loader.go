package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// fileRule is the YAML shape of one declarative rule entry. Custom
// formatting in files is limited to referencing named formatters; anything
// richer is authored as a catalogue package.
type fileRule struct {
	Name        string            `yaml:"name" validate:"required"`
	Match       string            `yaml:"match" validate:"required"`
	Pattern     bool              `yaml:"pattern"`
	Priority    int               `yaml:"priority" validate:"gte=0"`
	Title       []string          `yaml:"title"`
	Photo       []string          `yaml:"photo"`
	Body        []string          `yaml:"body"`
	Description []string          `yaml:"description"`
	Nested      []string          `yaml:"nested"`
	Multi       map[string]string `yaml:"multi"`
	Formatters  map[string]string `yaml:"formatters"`
}

// ruleFile is the top-level YAML document.
type ruleFile struct {
	Rules []fileRule `yaml:"rules"`
}

var fileValidator = validator.New()

// LoadFile parses one YAML rule file into registry entries. named maps
// formatter names usable in the file's `formatters` section to their
// implementations; referencing an unknown name is a load error (spec: rule
// problems fail at load time, never mid-render).
func LoadFile(path string, named map[string]FormatSingle) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}

	var doc ruleFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rule file %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(doc.Rules))
	for i := range doc.Rules {
		entry, err := doc.Rules[i].toEntry(named)
		if err != nil {
			return nil, fmt.Errorf("rule file %s: %w", path, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LoadDir loads every YAML rule file under dir (recursively), in sorted path
// order so reload results are deterministic. A missing directory yields no
// entries and no error.
func LoadDir(dir string, named map[string]FormatSingle) ([]Entry, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(dir, "**", "*.{yaml,yml}"))
	if err != nil {
		return nil, fmt.Errorf("glob rule files: %w", err)
	}
	sort.Strings(matches)

	var entries []Entry
	for _, path := range matches {
		fileEntries, err := LoadFile(path, named)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileEntries...)
	}
	return entries, nil
}

// toEntry validates and converts one file rule.
func (fr *fileRule) toEntry(named map[string]FormatSingle) (Entry, error) {
	if err := fileValidator.Struct(fr); err != nil {
		return Entry{}, fmt.Errorf("rule %q: %w", fr.Name, err)
	}

	key := Exact(fr.Match)
	if fr.Pattern {
		var err error
		key, err = Pattern(fr.Match)
		if err != nil {
			return Entry{}, fmt.Errorf("rule %q: %w", fr.Name, err)
		}
	}

	rs := &RuleSet{
		Name:             fr.Name,
		TitleProps:       fr.Title,
		PhotoProps:       fr.Photo,
		BodyProps:        fr.Body,
		DescriptionProps: fr.Description,
		NestedProps:      fr.Nested,
		Priority:         fr.Priority,
	}

	if len(fr.Multi) > 0 {
		rs.MultiPolicies = make(map[string]MultiPolicy, len(fr.Multi))
		for prop, policy := range fr.Multi {
			switch policy {
			case "all":
				rs.MultiPolicies[prop] = JoinAll
			case "first":
				rs.MultiPolicies[prop] = FirstOnly
			default:
				return Entry{}, fmt.Errorf("rule %q: unknown multi policy %q for %s (want all or first)", fr.Name, policy, prop)
			}
		}
	}

	if len(fr.Formatters) > 0 {
		byProp := make(map[string]FormatSingle, len(fr.Formatters))
		for prop, name := range fr.Formatters {
			f, ok := named[name]
			if !ok {
				return Entry{}, fmt.Errorf("rule %q: unknown formatter %q for %s", fr.Name, name, prop)
			}
			byProp[prop] = f
		}
		rs.Single = Dispatch(byProp)
	}

	return Entry{Key: key, Rule: rs}, nil
}
