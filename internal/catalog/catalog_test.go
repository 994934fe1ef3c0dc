package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(6, "../../resources/x_y")
	require.NoError(t, err)
	return c
}

func TestLoadResolvesMovesAndSpecies(t *testing.T) {
	c := loadTestCatalog(t)
	require.NotEmpty(t, c.Moves)
	require.NotEmpty(t, c.Species)

	id, err := c.SpeciesIDByName("bulbasaur")
	require.NoError(t, err)
	sp := c.SpeciesByID(id)
	require.Equal(t, "Bulbasaur", sp.Name())
	require.Equal(t, TypeGrass, sp.Type1())
	require.Equal(t, TypePoison, sp.Type2())
}

func TestMoveIDByNameIsCaseInsensitive(t *testing.T) {
	c := loadTestCatalog(t)
	id1, err := c.MoveIDByName("tackle")
	require.NoError(t, err)
	id2, err := c.MoveIDByName("TACKLE")
	require.NoError(t, err)
	require.Equal(t, id1, id2)
}

func TestMoveIDByNameUnknown(t *testing.T) {
	c := loadTestCatalog(t)
	_, err := c.MoveIDByName("does-not-exist")
	require.Error(t, err)
}

func TestTypeEffectivenessLaws(t *testing.T) {
	c := loadTestCatalog(t)
	require.Equal(t, 1.0, c.Effectiveness(TypeNone, TypeFire, TypeNone))
	require.Equal(t, 1.0, c.Effectiveness(TypeFire, TypeNone, TypeNone))
	require.Equal(t, 0.0, c.Effectiveness(TypeNormal, TypeGhost, TypeNone))
	require.Equal(t, 2.0, c.Effectiveness(TypeFire, TypeGrass, TypeNone))
	require.Equal(t, 2.0, c.Effectiveness(TypeFighting, TypePsychic, TypeNone))
}

func TestGhostSteelEffectivenessIsRuleGenDependent(t *testing.T) {
	old := &Catalog{RuleGen: 5}
	require.Equal(t, 0.5, old.Effectiveness(TypeGhost, TypeSteel, TypeNone))

	modern := &Catalog{RuleGen: 6}
	require.Equal(t, 1.0, modern.Effectiveness(TypeGhost, TypeSteel, TypeNone))
}

func TestStatStageMonotonicity(t *testing.T) {
	prev := mainStatStageMultiplier(-6)
	for s := -5; s <= 6; s++ {
		cur := mainStatStageMultiplier(int8(s))
		require.Greater(t, cur, prev)
		prev = cur
	}
}

// mainStatStageMultiplier mirrors the main-stat formula
// max(2,2+s)/max(2,2-s) used by the turn resolver; duplicated here only
// to pin the monotonicity law at the catalog layer without importing
// internal/battle (which would create an import cycle in reverse, since
// battle already imports catalog).
func mainStatStageMultiplier(s int8) float64 {
	num := 2.0 + float64(s)
	if num < 2.0 {
		num = 2.0
	}
	den := 2.0 - float64(s)
	if den < 2.0 {
		den = 2.0
	}
	return num / den
}
