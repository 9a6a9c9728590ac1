// Package catalog is the static registry of kinetic machines and recipes.
// It maps world-block identifiers to machine templates and recipe input
// keys to outputs per processing kind — Gearline's "machine phonebook".
// Pure data: no mutable state after load, no side effects.
package catalog

import (
	"fmt"

	"github.com/gearline/gearline/internal/domain"
)

// WindmillBlock is the designated marker block that propagation
// reinterprets as a synthetic motor with height-proportional speed.
const WindmillBlock domain.BlockID = "gearline:windmill_sail"

// DefaultMotorSpeed is the nominal motor speed when no config overrides it.
const DefaultMotorSpeed = 128

// Machines is the built-in machine template table.
// InputSlot/OutputSlot of -1 means the machine has no such slot.
var Machines = []domain.MachineTemplate{
	{
		Block:          "gearline:motor",
		Kind:           domain.KindMotor,
		Speed:          DefaultMotorSpeed,
		StressCapacity: 2048,
		Consumption:    0,
		InputSlot:      -1,
		OutputSlot:     -1,
	},
	{
		Block:          WindmillBlock,
		Kind:           domain.KindMotor,
		Speed:          0, // derived from height during propagation
		StressCapacity: 0, // windmill capacity is a propagation-time bonus
		Consumption:    0,
		InputSlot:      -1,
		OutputSlot:     -1,
	},
	{
		Block:       "gearline:shaft",
		Kind:        domain.KindShaft,
		Consumption: 1,
		InputSlot:   -1,
		OutputSlot:  -1,
	},
	{
		Block:       "gearline:gearbox",
		Kind:        domain.KindGearbox,
		Consumption: 2,
		InputSlot:   -1,
		OutputSlot:  -1,
	},
	{
		Block:       "gearline:belt",
		Kind:        domain.KindBelt,
		Consumption: 2,
		InputSlot:   -1,
		OutputSlot:  -1,
	},
	{
		Block:          "gearline:press",
		Kind:           domain.KindPress,
		Consumption:    32,
		ProcessingTime: 8,
		InputSlot:      0,
		OutputSlot:     1,
	},
	{
		Block:          "gearline:millstone",
		Kind:           domain.KindMillstone,
		Consumption:    16,
		ProcessingTime: 10,
		InputSlot:      0,
		OutputSlot:     1,
	},
	{
		Block:          "gearline:mixer",
		Kind:           domain.KindMixer,
		Consumption:    24,
		ProcessingTime: 12,
		InputSlot:      0,
		OutputSlot:     1,
		NeedsHeat:      true,
	},
}

// Recipes is the built-in recipe book, one table per processing kind.
// Multi-input recipes use a comma-joined composite key (see RecipeEntry.Key).
var Recipes = map[domain.ProcessKind][]domain.RecipeEntry{
	domain.ProcessMilling: {
		{Inputs: []domain.ItemID{"wheat"}, Output: "flour", Count: 1, StressCost: 4, Time: 10},
		{Inputs: []domain.ItemID{"bone"}, Output: "bone_meal", Count: 3, StressCost: 4, Time: 6},
		{Inputs: []domain.ItemID{"gravel"}, Output: "flint", Count: 1, StressCost: 4, Time: 12},
	},
	domain.ProcessPressing: {
		{Inputs: []domain.ItemID{"iron_ingot"}, Output: "iron_sheet", Count: 1, StressCost: 8, Time: 8},
		{Inputs: []domain.ItemID{"gold_ingot"}, Output: "gold_sheet", Count: 1, StressCost: 8, Time: 8},
		{Inputs: []domain.ItemID{"copper_ingot"}, Output: "copper_sheet", Count: 1, StressCost: 8, Time: 8},
	},
	domain.ProcessMixing: {
		{Inputs: []domain.ItemID{"raw_iron"}, Output: "iron_ingot", Count: 1, StressCost: 12, Time: 12, NeedsHeat: true},
		{Inputs: []domain.ItemID{"raw_copper"}, Output: "copper_ingot", Count: 1, StressCost: 12, Time: 12, NeedsHeat: true},
		{Inputs: []domain.ItemID{"flour", "water"}, Output: "dough", Count: 1, StressCost: 6, Time: 6},
	},
}

// ─── Catalog ────────────────────────────────────────────────────────────────

// Catalog is an indexed, validated view over the static tables.
type Catalog struct {
	templates map[domain.BlockID]domain.MachineTemplate
	recipes   map[domain.ProcessKind]map[string]domain.RecipeEntry
}

// New builds a catalog from the built-in tables with the motor template's
// nominal speed overridden by motorSpeed. Fails fast on malformed data.
func New(motorSpeed float64) (*Catalog, error) {
	if motorSpeed <= 0 {
		motorSpeed = DefaultMotorSpeed
	}

	c := &Catalog{
		templates: make(map[domain.BlockID]domain.MachineTemplate, len(Machines)),
		recipes:   make(map[domain.ProcessKind]map[string]domain.RecipeEntry, len(Recipes)),
	}

	for _, t := range Machines {
		if err := validateTemplate(t); err != nil {
			return nil, err
		}
		if _, dup := c.templates[t.Block]; dup {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateBlock, t.Block)
		}
		if t.Kind == domain.KindMotor && t.Block != WindmillBlock {
			t.Speed = motorSpeed
		}
		c.templates[t.Block] = t
	}

	for kind, table := range Recipes {
		if kind != domain.ProcessPressing && kind != domain.ProcessMilling && kind != domain.ProcessMixing {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProcessor, kind)
		}
		indexed := make(map[string]domain.RecipeEntry, len(table))
		for _, r := range table {
			if err := validateRecipe(r); err != nil {
				return nil, fmt.Errorf("%s table: %w", kind, err)
			}
			key := r.Key()
			if _, dup := indexed[key]; dup {
				return nil, fmt.Errorf("%w: %s/%s", domain.ErrDuplicateRecipe, kind, key)
			}
			indexed[key] = r
		}
		c.recipes[kind] = indexed
	}

	return c, nil
}

// Default builds the catalog with the default motor speed.
// Panics on malformed built-in tables; those are a programming error.
func Default() *Catalog {
	c, err := New(DefaultMotorSpeed)
	if err != nil {
		panic(err)
	}
	return c
}

// TemplateFor looks up the machine template for a block id.
// Absence is not an error.
func (c *Catalog) TemplateFor(block domain.BlockID) (domain.MachineTemplate, bool) {
	t, ok := c.templates[block]
	return t, ok
}

// RecipeFor looks up a recipe by processing kind and input key.
func (c *Catalog) RecipeFor(kind domain.ProcessKind, inputKey string) (domain.RecipeEntry, bool) {
	table, ok := c.recipes[kind]
	if !ok {
		return domain.RecipeEntry{}, false
	}
	r, ok := table[inputKey]
	return r, ok
}

// Templates returns all machine templates, for diagnostics and the API.
func (c *Catalog) Templates() []domain.MachineTemplate {
	out := make([]domain.MachineTemplate, 0, len(c.templates))
	for _, t := range c.templates {
		out = append(out, t)
	}
	return out
}

// RecipeTable returns a copy of one processing kind's recipe table.
func (c *Catalog) RecipeTable(kind domain.ProcessKind) []domain.RecipeEntry {
	table := c.recipes[kind]
	out := make([]domain.RecipeEntry, 0, len(table))
	for _, r := range table {
		out = append(out, r)
	}
	return out
}

// ─── Validation ─────────────────────────────────────────────────────────────

func validateTemplate(t domain.MachineTemplate) error {
	if t.Block == "" {
		return fmt.Errorf("%w: empty block id", domain.ErrTemplateInvalid)
	}
	switch t.Kind {
	case domain.KindMotor, domain.KindShaft, domain.KindGearbox, domain.KindBelt,
		domain.KindPress, domain.KindMillstone, domain.KindMixer:
	default:
		return fmt.Errorf("%w: %s has unknown kind %q", domain.ErrTemplateInvalid, t.Block, t.Kind)
	}
	if t.Consumption < 0 || t.StressCapacity < 0 {
		return fmt.Errorf("%w: %s has negative stress figures", domain.ErrTemplateInvalid, t.Block)
	}
	if _, processing := t.Kind.ProcessKind(); processing {
		if !t.HasInput() || t.OutputSlot < 0 {
			return fmt.Errorf("%w: %s is a processing machine without slots", domain.ErrTemplateInvalid, t.Block)
		}
		if t.ProcessingTime <= 0 {
			return fmt.Errorf("%w: %s has no processing time", domain.ErrTemplateInvalid, t.Block)
		}
	}
	return nil
}

func validateRecipe(r domain.RecipeEntry) error {
	if len(r.Inputs) == 0 {
		return fmt.Errorf("%w: no inputs", domain.ErrRecipeInvalid)
	}
	for _, in := range r.Inputs {
		if in == "" {
			return fmt.Errorf("%w: empty input id", domain.ErrRecipeInvalid)
		}
	}
	if r.Output == "" || r.Count <= 0 {
		return fmt.Errorf("%w: %s has no output", domain.ErrRecipeInvalid, r.Key())
	}
	if r.Time <= 0 {
		return fmt.Errorf("%w: %s has non-positive time", domain.ErrRecipeInvalid, r.Key())
	}
	return nil
}
