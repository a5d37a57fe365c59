// meta/meta.go
package meta

// STANDARD_LOOP_SIZE is the fixed board size used whenever trading-style
// rules (currency + purchasable property on a shared board) are active,
// regardless of the configured tile count.
const STANDARD_LOOP_SIZE = 40

// COMBAT_INTERVAL defines the default spacing of combat trigger positions.
const COMBAT_INTERVAL = 5

// MAX_TURNS caps the demo runner's game loop.
const MAX_TURNS = 500

// Default damage ranges per trigger type. All three are overridable in the
// rule document.
const (
	ENCOUNTER_DAMAGE_MIN = 10
	ENCOUNTER_DAMAGE_MAX = 30

	ATTACK_DAMAGE_MIN = 15
	ATTACK_DAMAGE_MAX = 35

	SKIRMISH_DAMAGE_MIN = 5
	SKIRMISH_DAMAGE_MAX = 20
)

// Default seeding values for new matches.
const (
	STARTING_BALANCE = 1500
	PASS_BONUS       = 200
	MAX_HEALTH       = 100
)

// Property placement price schedule.
const (
	PROPERTY_BASE_PRICE = 60
	PROPERTY_PRICE_STEP = 10
	PROPERTY_RENT_DIV   = 5
)
