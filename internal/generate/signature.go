package generate

import (
	"fmt"

	"github.com/nicoberrocal/battlecore/internal/delta"
)

// deltaTag renders one delta as a stable, comparable string used by
// CombineDuplicateInstructions. A plain %#v would work too, but an
// explicit switch keeps the tag readable in test failures.
func deltaTag(d delta.Delta) string {
	switch v := d.(type) {
	case *delta.Switch:
		return fmt.Sprintf("Switch{%d,%d,%d}", v.Side, v.PreviousIndex, v.NextIndex)
	case delta.Damage:
		return fmt.Sprintf("Damage{%d,%d}", v.Side, v.Amount)
	case delta.Heal:
		return fmt.Sprintf("Heal{%d,%d}", v.Side, v.Amount)
	case delta.Boost:
		return fmt.Sprintf("Boost{%d,%s,%d}", v.Side, v.Stat, v.Delta)
	case delta.ChangeStatus:
		return fmt.Sprintf("ChangeStatus{%d,%d,%s,%s}", v.Side, v.PokemonIndex, v.Old, v.New)
	case delta.ApplyVolatileStatus:
		return fmt.Sprintf("ApplyVolatileStatus{%d,%s}", v.Side, v.Status)
	case delta.RemoveVolatileStatus:
		return fmt.Sprintf("RemoveVolatileStatus{%d,%s}", v.Side, v.Status)
	case delta.ChangeSideCondition:
		return fmt.Sprintf("ChangeSideCondition{%d,%s,%d}", v.Side, v.Condition, v.Delta)
	case delta.ChangeWeather:
		return fmt.Sprintf("ChangeWeather{%s,%d,%s,%d}", v.NewKind, v.NewTurns, v.PreviousKind, v.PreviousTurns)
	case delta.ChangeTerrain:
		return fmt.Sprintf("ChangeTerrain{%s,%d,%s,%d}", v.NewKind, v.NewTurns, v.PreviousKind, v.PreviousTurns)
	case delta.ChangeType:
		return fmt.Sprintf("ChangeType{%d,%v,%v}", v.Side, v.PreviousTypes, v.NewTypes)
	case delta.EnableMove:
		return fmt.Sprintf("EnableMove{%d,%d}", v.Side, v.MoveIndex)
	case delta.DisableMove:
		return fmt.Sprintf("DisableMove{%d,%d}", v.Side, v.MoveIndex)
	case delta.ChangeItem:
		return fmt.Sprintf("ChangeItem{%d,%s,%s}", v.Side, v.PreviousItem, v.NewItem)
	case delta.IncrementWish:
		return fmt.Sprintf("IncrementWish{%d,%d}", v.Side, v.HealAmount)
	case delta.DecrementWish:
		return fmt.Sprintf("DecrementWish{%d}", v.Side)
	case delta.SetSubstituteHealth:
		return fmt.Sprintf("SetSubstituteHealth{%d,%d,%d}", v.Side, v.Previous, v.New)
	default:
		return fmt.Sprintf("%#v", v)
	}
}
