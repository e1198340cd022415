// Package tables holds the read-only static descriptors (component A):
// moves, abilities, items, and the type effectiveness chart. These are
// process-wide immutable singletons populated at startup, per the design
// note against introducing mutable global state. The package is
// deliberately a thin, minimal real implementation — the spec treats the
// full data tables as an external collaborator and specs only their
// interface and shape.
package tables

// MoveCategory distinguishes how a move's damage (if any) is computed.
type MoveCategory string

const (
	CategoryPhysical MoveCategory = "physical"
	CategorySpecial  MoveCategory = "special"
	CategoryStatus   MoveCategory = "status"
)

// MoveFlag is a bit in a move's flag set.
type MoveFlag uint32

const (
	FlagPowder MoveFlag = 1 << iota
	FlagSound
	FlagContact
	FlagDrag
	FlagHazardClearingOwn  // rapid-spin style
	FlagHazardClearingBoth // defog style
	FlagHazardSwap         // court-change style
)

func (f MoveFlag) Has(bit MoveFlag) bool { return f&bit != 0 }

// MoveData is the immutable descriptor for one move identifier.
type MoveData struct {
	ID       string
	Type     string
	Category MoveCategory
	BasePower int
	// Accuracy is a percentage in [0,100]. It is ignored when AlwaysHits
	// is set; otherwise the hit chance is Accuracy/100, so 0 never hits.
	Accuracy   int
	AlwaysHits bool
	Priority   int
	Flags      MoveFlag

	// CrashFractionPct is the percent of the attacker's maxhp taken as
	// crash damage on a miss (0 = none).
	CrashFractionPct int
	// DrainPercent/RecoilPercent are percentages of damage dealt,
	// healed back to the attacker or dealt to the attacker respectively.
	DrainPercent  int
	RecoilPercent int

	// SetsSideCondition, when non-empty, is the hazard/screen this move
	// layers on a successful hit: screens, safeguard and tailwind go on
	// the attacker's side, everything else on the target's side.
	SetsSideCondition string
	// AppliesVolatile/AppliesStatus, when non-empty, is applied to the
	// move's target on a successful hit (subject to immunity checks).
	AppliesVolatile string
	AppliesStatus   string

	// BoostSelf/BoostTarget map stat names to stage changes applied on
	// hit to the attacker and to the move's target respectively.
	BoostSelf   map[string]int
	BoostTarget map[string]int

	// WeatherSet/TerrainSet, when non-"", sets the field condition.
	WeatherSet  string
	TerrainSet  string
	FieldTurns  int

	// MissedBlunderPolicy: on miss, remove the attacker's item and raise
	// its speed by two stages (step 10).
	MissedBlunderPolicy bool
}

// AbilityData is the immutable descriptor for one ability identifier.
// Behavior lives in internal/effects, keyed by ID; this struct only
// carries display data.
type AbilityData struct {
	ID   string
	Name string
}

// ItemData mirrors AbilityData for held items.
type ItemData struct {
	ID   string
	Name string
}

// Catalog is the process-wide table set, populated once at startup and
// never mutated afterward.
type Catalog struct {
	Moves      map[string]MoveData
	Abilities  map[string]AbilityData
	Items      map[string]ItemData
	TypeChart  TypeChart
}

var defaultCatalog = buildDefaultCatalog()

// Default returns the process-wide immutable catalog.
func Default() *Catalog { return defaultCatalog }

// Move looks up a move by ID; ok is false for an unknown identifier.
func (c *Catalog) Move(id string) (MoveData, bool) {
	m, ok := c.Moves[id]
	return m, ok
}

// Ability looks up an ability by ID.
func (c *Catalog) Ability(id string) (AbilityData, bool) {
	a, ok := c.Abilities[id]
	return a, ok
}

// Item looks up an item by ID.
func (c *Catalog) Item(id string) (ItemData, bool) {
	it, ok := c.Items[id]
	return it, ok
}
