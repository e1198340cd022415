package main

import (
	"testing"

	"github.com/nicoberrocal/battlecore/internal/choice"
	"github.com/nicoberrocal/battlecore/internal/generate"
	"github.com/nicoberrocal/battlecore/internal/serialize"
	"github.com/nicoberrocal/battlecore/internal/state"
	"github.com/nicoberrocal/battlecore/internal/testutil"
)

func TestLoadStateEmptyStringGivesZeroValue(t *testing.T) {
	s, err := loadState("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.SideOne.Creatures[0].ID != "" {
		t.Fatalf("expected zero-value state, got %+v", s.SideOne.Creatures[0])
	}
}

func TestLoadStateRoundTripsThroughSerialize(t *testing.T) {
	fixture := testutil.NewState()
	text := serialize.Serialize(&fixture)

	s, err := loadState(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.SideOne.Creatures[0].ID != "side-one-lead" {
		t.Fatalf("expected side-one-lead, got %q", s.SideOne.Creatures[0].ID)
	}
}

func TestLoadStateRejectsMalformedText(t *testing.T) {
	_, err := loadState("not-a-valid-state")
	if err == nil {
		t.Fatal("expected an error for malformed state text")
	}
}

func TestDescribeChoiceMove(t *testing.T) {
	fixture := testutil.NewState()
	m, _ := generate.New().Catalog.Move("tackle")
	c := choice.NewMoveChoice(0, m)
	if got := describeChoice(&fixture.SideOne, c); got != "tackle" {
		t.Fatalf("expected \"tackle\", got %q", got)
	}
}

func TestDescribeChoiceSwitch(t *testing.T) {
	fixture := testutil.NewState()
	c := choice.NewSwitchChoice(1)
	if got := describeChoice(&fixture.SideOne, c); got != "switch s1-bench" {
		t.Fatalf("expected \"switch s1-bench\", got %q", got)
	}
}

func TestStringToChoiceResolvesMoveToken(t *testing.T) {
	fixture := testutil.NewState()
	g := generate.New()
	c, ok := stringToChoice(g, &fixture, state.SideOne, "tackle")
	if !ok {
		t.Fatal("expected tackle to resolve")
	}
	if c.Kind != choice.KindMove || c.Move.ID != "tackle" {
		t.Fatalf("expected a move choice for tackle, got %+v", c)
	}
}

func TestStringToChoiceResolvesSwitchToken(t *testing.T) {
	fixture := testutil.NewState()
	g := generate.New()
	c, ok := stringToChoice(g, &fixture, state.SideOne, "s1-bench")
	if !ok {
		t.Fatal("expected s1-bench to resolve to a switch choice")
	}
	if c.Kind != choice.KindSwitch {
		t.Fatalf("expected a switch choice, got %+v", c)
	}
}

func TestStringToChoiceRejectsUnknownToken(t *testing.T) {
	fixture := testutil.NewState()
	g := generate.New()
	_, ok := stringToChoice(g, &fixture, state.SideOne, "not-a-real-move")
	if ok {
		t.Fatal("expected unknown token to fail resolution")
	}
}
