package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tabletop/meta"
)

// Config is the declarative rule document a match is composed from. Every
// boolean enable flag gates its own block: when the flag is false the rest of
// the block is meaningless and no module is built for it.
//
// The document is versionable by addition only - absent keys keep their
// defaults, so any previously valid document still loads.
type Config struct {
	Currency   CurrencyRules   `yaml:"currency"`
	Board      BoardRules      `yaml:"board"`
	Property   PropertyRules   `yaml:"property"`
	Combat     CombatRules     `yaml:"combat"`
	Visibility VisibilityRules `yaml:"visibility"`
	Players    PlayerRules     `yaml:"players"`
	Win        WinRules        `yaml:"win"`
	Dice       DiceRules       `yaml:"dice"`
	Resources  ResourceRules   `yaml:"resources"`
}

type CurrencyRules struct {
	Enabled         bool `yaml:"enabled"`
	StartingBalance int  `yaml:"starting_balance"`
	PassBonus       int  `yaml:"pass_bonus"`
}

type BoardRules struct {
	// SeparateBoards gives every player their own square grid instead of a
	// shared loop.
	SeparateBoards bool `yaml:"separate_boards"`
	TilesPerSide   int  `yaml:"tiles_per_side"`
}

type PropertyRules struct {
	Purchasable     bool `yaml:"purchasable"`
	Tradable        bool `yaml:"tradable"`
	RentCollectible bool `yaml:"rent_collectible"`
	Bankruptcy      bool `yaml:"bankruptcy"`
}

// DamageRange bounds one damage roll, inclusive on both ends.
type DamageRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type CombatRules struct {
	Enabled       bool `yaml:"enabled"`
	ShipPlacement bool `yaml:"ship_placement"`
	// Interval spaces out combat trigger positions; combat fires on non-zero
	// multiples of it.
	Interval  int         `yaml:"interval"`
	Encounter DamageRange `yaml:"encounter_damage"`
	Attack    DamageRange `yaml:"attack_damage"`
	Skirmish  DamageRange `yaml:"skirmish_damage"`
}

type VisibilityRules struct {
	// Range limits how far away an enemy token can be seen (and targeted).
	// Zero means unlimited.
	Range int `yaml:"range"`
}

type PlayerRules struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// WinCondition selects how a match ends.
type WinCondition string

const (
	WinByElimination WinCondition = "elimination"
	WinByBalance     WinCondition = "balance"
)

type WinRules struct {
	Condition WinCondition `yaml:"condition"`
	// Threshold is the winning balance for WinByBalance.
	Threshold int `yaml:"threshold"`
}

type DiceRules struct {
	Count int `yaml:"count"`
	Sides int `yaml:"sides"`
	// DuplicateBonus doubles a roll where every die shows the same face.
	DuplicateBonus bool `yaml:"duplicate_bonus"`
}

type ResourceRules struct {
	Count      int      `yaml:"count"`
	Names      []string `yaml:"names"`
	PerTypeCap int      `yaml:"per_type_cap"`
}

// Default returns the baseline rule document: a trading game on a shared
// loop, no combat.
func Default() Config {
	return Config{
		Currency: CurrencyRules{
			Enabled:         true,
			StartingBalance: meta.STARTING_BALANCE,
			PassBonus:       meta.PASS_BONUS,
		},
		Board: BoardRules{
			SeparateBoards: false,
			TilesPerSide:   10,
		},
		Property: PropertyRules{
			Purchasable:     true,
			Tradable:        true,
			RentCollectible: true,
			Bankruptcy:      true,
		},
		Combat: CombatRules{
			Enabled:       false,
			ShipPlacement: false,
			Interval:      meta.COMBAT_INTERVAL,
			Encounter:     DamageRange{Min: meta.ENCOUNTER_DAMAGE_MIN, Max: meta.ENCOUNTER_DAMAGE_MAX},
			Attack:        DamageRange{Min: meta.ATTACK_DAMAGE_MIN, Max: meta.ATTACK_DAMAGE_MAX},
			Skirmish:      DamageRange{Min: meta.SKIRMISH_DAMAGE_MIN, Max: meta.SKIRMISH_DAMAGE_MAX},
		},
		Visibility: VisibilityRules{Range: 0},
		Players:    PlayerRules{Min: 2, Max: 6},
		Win:        WinRules{Condition: WinByElimination},
		Dice:       DiceRules{Count: 2, Sides: 6, DuplicateBonus: false},
		Resources:  ResourceRules{},
	}
}

// Parse decodes a rule document. Keys absent from the document keep their
// default values, so old documents load without migration.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("rules: parse document: %w", err)
	}
	return cfg, nil
}

// Load reads and parses a rule document from disk.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("rules: read %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes the document for the persistence collaborator.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("rules: marshal document: %w", err)
	}
	return data, nil
}
