// Package catalog holds the static set of nudge templates. Definitions are
// parsed once from the embedded prompts.yaml and never mutated afterwards.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/smartprompts/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnknownPrompt is returned when a prompt id has no definition.
var ErrUnknownPrompt = errors.New("unknown prompt")

//go:embed prompts.yaml
var promptsYAML []byte

// ActionTemplate is an action whose href may contain placeholders.
type ActionTemplate struct {
	Label string            `yaml:"label"`
	Type  domain.ActionType `yaml:"type"`
	Href  string            `yaml:"href"`
}

// Definition is one nudge template.
type Definition struct {
	ID          string           `yaml:"id"`
	Engine      domain.EngineID  `yaml:"engine"`
	Type        domain.NudgeType `yaml:"type"`
	Urgency     domain.Urgency   `yaml:"urgency"`
	Title       string           `yaml:"title"`
	Message     string           `yaml:"message"`
	Vars        []string         `yaml:"vars"`
	Actions     []ActionTemplate `yaml:"actions"`
	Dismissible bool             `yaml:"dismissible"`
	Snoozeable  bool             `yaml:"snoozeable"`
}

// Catalog is an immutable, ordered set of definitions.
type Catalog struct {
	defs []Definition
	byID map[string]Definition
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("decoding prompt catalog: %w", err)
	}
	if errs := Validate(defs); len(errs) > 0 {
		return nil, fmt.Errorf("invalid prompt catalog: %w", errors.Join(errs...))
	}
	c := &Catalog{defs: defs, byID: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		c.byID[d.ID] = d
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog. The embedded document is covered by
// tests, so a parse failure here is a programming error.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(promptsYAML)
		if err != nil {
			panic(err)
		}
		defaultCat = c
	})
	return defaultCat
}

// Get returns the definition for id.
func (c *Catalog) Get(id string) (Definition, error) {
	d, ok := c.byID[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownPrompt, id)
	}
	return d, nil
}

// MustGet returns the definition for id and panics if it is missing.
func (c *Catalog) MustGet(id string) Definition {
	d, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return d
}

// All returns every definition in catalog order.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// ByEngine returns the definitions owned by engine, in catalog order.
func (c *Catalog) ByEngine(engine domain.EngineID) []Definition {
	var out []Definition
	for _, d := range c.defs {
		if d.Engine == engine {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}
