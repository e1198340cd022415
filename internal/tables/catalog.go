package tables

func buildDefaultCatalog() *Catalog {
	moves := map[string]MoveData{
		"tackle": {
			ID: "tackle", Type: "normal", Category: CategoryPhysical,
			BasePower: 40, Accuracy: 100, Flags: FlagContact,
		},
		"thunder-wave": {
			ID: "thunder-wave", Type: "electric", Category: CategoryStatus,
			Accuracy: 90, AppliesStatus: "paralyze",
		},
		"spikes": {
			ID: "spikes", Type: "ground", Category: CategoryStatus,
			AlwaysHits: true, SetsSideCondition: "spikes",
		},
		"stone-axe": {
			ID: "stone-axe", Type: "rock", Category: CategoryPhysical,
			BasePower: 65, Accuracy: 90, SetsSideCondition: "stealth_rock",
		},
		"substitute": {
			ID: "substitute", Type: "normal", Category: CategoryStatus,
			AlwaysHits: true, AppliesVolatile: "substitute",
		},
		"will-o-wisp": {
			ID: "will-o-wisp", Type: "fire", Category: CategoryStatus,
			Accuracy: 85, AppliesStatus: "burn",
		},
		"rapid-spin": {
			ID: "rapid-spin", Type: "normal", Category: CategoryPhysical,
			BasePower: 20, Accuracy: 100, Flags: FlagContact | FlagHazardClearingOwn,
		},
		"defog": {
			ID: "defog", Type: "flying", Category: CategoryStatus,
			AlwaysHits: true, Flags: FlagHazardClearingBoth,
		},
		"court-change": {
			ID: "court-change", Type: "normal", Category: CategoryStatus,
			AlwaysHits: true, Flags: FlagHazardSwap,
		},
		"rain-dance": {
			ID: "rain-dance", Type: "water", Category: CategoryStatus,
			AlwaysHits: true, WeatherSet: "rain", FieldTurns: 5,
		},
		"hail": {
			ID: "hail", Type: "ice", Category: CategoryStatus,
			AlwaysHits: true, WeatherSet: "hail", FieldTurns: 5,
		},
		"aurora-veil": {
			ID: "aurora-veil", Type: "ice", Category: CategoryStatus,
			AlwaysHits: true, SetsSideCondition: "aurora_veil",
		},
		"splash": {
			ID: "splash", Type: "normal", Category: CategoryStatus,
			AlwaysHits: true,
		},
	}

	abilities := map[string]AbilityData{
		"sturdy":       {ID: "sturdy", Name: "Sturdy"},
		"guts":         {ID: "guts", Name: "Guts"},
		"marvel-scale": {ID: "marvel-scale", Name: "Marvel Scale"},
		"quick-feet":   {ID: "quick-feet", Name: "Quick Feet"},
		"limber":       {ID: "limber", Name: "Limber"},
		"water-veil":   {ID: "water-veil", Name: "Water Veil"},
		"clear-body":   {ID: "clear-body", Name: "Clear Body"},
		"none":         {ID: "none", Name: "(none)"},
	}

	items := map[string]ItemData{
		"leftovers":  {ID: "leftovers", Name: "Leftovers"},
		"flame-orb":  {ID: "flame-orb", Name: "Flame Orb"},
		"toxic-orb":  {ID: "toxic-orb", Name: "Toxic Orb"},
		"black-sludge": {ID: "black-sludge", Name: "Black Sludge"},
		"none":       {ID: "none", Name: "(none)"},
	}

	return &Catalog{
		Moves:     moves,
		Abilities: abilities,
		Items:     items,
		TypeChart: defaultTypeChart(),
	}
}
