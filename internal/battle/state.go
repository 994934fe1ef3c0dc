package battle

import (
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/wallacewatler/battlesim/internal/catalog"
)

// Agent is one side's field presence: which Pokemon (by index into
// State.Pokemon) is out, its legal actions for the coming turn, the
// order those actions are visited in during SMAB search, and how many
// turns in a row it has switched (capped to curb infinite-switch
// stalling).
type Agent struct {
	OnField             *int
	Actions             []Action
	ActionOrder         []int
	ConsecutiveSwitches uint16
}

// State is one node of the battle tree: the twelve participating
// Pokemon (0-5 belong to Min, 6-11 to Max), field-wide conditions, and
// a lazily materialized grid of children indexed by the current
// action lists' Cartesian product.
type State struct {
	Catalog *catalog.Catalog
	Log     zerolog.Logger

	Pokemon [12]Pokemon
	Min     Agent
	Max     Agent

	Weather        Weather
	WeatherCounter Counter[uint16]
	Terrain        Terrain
	TurnNumber     uint16

	DisplayText []string

	// Children is row-major over (max action index, min action index);
	// nil entries are generated on demand by GetOrGenChild.
	Children []*State
}

// NewState builds the initial battle node: both teams off the field,
// each Agent seeded with the single mandatory opening Switch action
// (its own send-out, since neither side has anyone out yet).
func NewState(cat *catalog.Catalog, log zerolog.Logger, pokemon [12]Pokemon, weather Weather, terrain Terrain) *State {
	s := &State{
		Catalog: cat,
		Log:     log,
		Pokemon: pokemon,
		Weather: weather,
		Terrain: terrain,
	}
	s.Min.Actions = []Action{{Kind: ActionSwitch, SwitchingInID: 0, TargetPosition: catalog.Min}}
	s.Max.Actions = []Action{{Kind: ActionSwitch, SwitchingInID: 6, TargetPosition: catalog.Max}}
	s.Min.ActionOrder = []int{0}
	s.Max.ActionOrder = []int{0}
	s.Children = make([]*State, 1)
	return s
}

// PokemonByID returns a pointer into s.Pokemon; IDs 0-5 are Min's team,
// 6-11 are Max's.
func (s *State) PokemonByID(id int) *Pokemon {
	return &s.Pokemon[id]
}

// AgentAt returns the Agent occupying position (Min or Max).
func (s *State) AgentAt(position catalog.FieldPosition) *Agent {
	if position == catalog.Min {
		return &s.Min
	}
	return &s.Max
}

// AddDisplayText appends a line to the battle log and mirrors it to
// the structured log sink.
func (s *State) AddDisplayText(text string) {
	s.DisplayText = append(s.DisplayText, text)
	s.Log.Debug().Msg(text)
}

// HasBattleEnded reports whether either side has no Pokemon left able
// to fight.
func (s *State) HasBattleEnded() bool {
	return !sideHasUsablePokemon(s, 0, 6) || !sideHasUsablePokemon(s, 6, 12)
}

func sideHasUsablePokemon(s *State, lo, hi int) bool {
	for i := lo; i < hi; i++ {
		if s.Pokemon[i].CurrentHP > 0 {
			return true
		}
	}
	return false
}

// CopyGameState clones s into a fresh node ready to have a turn played
// out on it: Pokemon and field conditions carry over, but the actions,
// action order, display text and children of a turn belong to that
// turn alone and start empty.
func (s *State) CopyGameState() *State {
	child := &State{
		Catalog:        s.Catalog,
		Log:            s.Log,
		Pokemon:        s.Pokemon,
		Weather:        s.Weather,
		WeatherCounter: s.WeatherCounter,
		Terrain:        s.Terrain,
		TurnNumber:     s.TurnNumber,
	}
	child.Min.OnField = copyIntPtr(s.Min.OnField)
	child.Min.ConsecutiveSwitches = s.Min.ConsecutiveSwitches
	child.Max.OnField = copyIntPtr(s.Max.OnField)
	child.Max.ConsecutiveSwitches = s.Max.ConsecutiveSwitches
	return child
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// GetOrGenChild returns the state reached by playing maxAction (the
// maxActionOrder[i]'th entry of Max.Actions) against minAction (the
// minActionOrder[j]'th entry of Min.Actions), materializing it on
// first visit. The cache slot is keyed by the raw action indices
// (ActionOrder[i], ActionOrder[j]) rather than by the positions i and
// j, so it stays valid across iterative-deepening resorts of
// ActionOrder.
func (s *State) GetOrGenChild(i, j int, rng *rand.Rand) *State {
	maxIdx := s.Max.ActionOrder[i]
	minIdx := s.Min.ActionOrder[j]
	childIndex := maxIdx*len(s.Min.Actions) + minIdx

	if s.Children[childIndex] != nil {
		return s.Children[childIndex]
	}

	child := s.CopyGameState()
	child.Max.ConsecutiveSwitches = nextConsecutiveSwitches(child.Max.ConsecutiveSwitches, &s.Max.Actions[maxIdx])
	child.Min.ConsecutiveSwitches = nextConsecutiveSwitches(child.Min.ConsecutiveSwitches, &s.Min.Actions[minIdx])

	queue := []Action{s.Max.Actions[maxIdx], s.Min.Actions[minIdx]}
	PlayOutTurn(child, queue, rng)
	if !child.HasBattleEnded() {
		GenerateActions(child, rng)
	}

	s.Children[childIndex] = child
	return child
}

// nextConsecutiveSwitches applies the counter rule: a Move resets it,
// a voluntary Switch increments it, and a mandatory send-out (no
// switcher, nobody was on the field to switch out) resets it instead
// of counting toward the cap.
func nextConsecutiveSwitches(current uint16, action *Action) uint16 {
	switch {
	case action.Kind == ActionSwitch && action.SwitcherID != nil:
		return current + 1
	default:
		return 0
	}
}

// RemoveChild extracts and detaches the already-materialized child at
// (i, j), generating it first if root play has not visited it yet.
func (s *State) RemoveChild(i, j int, rng *rand.Rand) *State {
	child := s.GetOrGenChild(i, j, rng)
	maxIdx := s.Max.ActionOrder[i]
	minIdx := s.Min.ActionOrder[j]
	s.Children[maxIdx*len(s.Min.Actions)+minIdx] = nil
	return child
}
