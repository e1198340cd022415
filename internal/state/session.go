package state

import "go.mongodb.org/mongo-driver/v2/bson"

// Session wraps a BattleState with a correlation identifier, the same
// role bson.ObjectID plays as ships.ShipStack.ID in the teacher repo: an
// external caller (CLI, tests, or a future persistence layer) can tag a
// single decision-engine run without the engine itself touching a
// database.
type Session struct {
	ID    bson.ObjectID
	State BattleState
}

// NewSession allocates a fresh correlation ID for the given state.
func NewSession(s BattleState) Session {
	return Session{ID: bson.NewObjectID(), State: s}
}
