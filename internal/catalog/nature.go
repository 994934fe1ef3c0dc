package catalog

// Nature is one of 25 variants. Neutral natures (and HP/Accuracy/Evasion
// under any nature) carry a 1.0 stat modifier; the rest boost one of
// {Atk, Def, SpAtk, SpDef, Spd} by 10% and cut another by 10%.
type Nature uint8

const (
	NatureAdamant Nature = iota
	NatureBashful
	NatureBold
	NatureBrave
	NatureCalm
	NatureCareful
	NatureDocile
	NatureGentle
	NatureHardy
	NatureHasty
	NatureImpish
	NatureJolly
	NatureLax
	NatureLonely
	NatureMild
	NatureModest
	NatureNaive
	NatureNaughty
	NatureQuiet
	NatureQuirky
	NatureRash
	NatureRelaxed
	NatureSassy
	NatureSerious
	NatureTimid
	natureArraySize
)

// natureMods[nature] holds the five modifiers for {Atk, Def, SpAtk,
// SpDef, Spd}, in that order. Neutral natures are all-1.0.
var natureMods = [natureArraySize][5]float64{
	NatureAdamant: {1.1, 1.0, 0.9, 1.0, 1.0},
	NatureBashful: {1.0, 1.0, 1.0, 1.0, 1.0},
	NatureBold:    {0.9, 1.1, 1.0, 1.0, 1.0},
	NatureBrave:   {1.1, 1.0, 1.0, 1.0, 0.9},
	NatureCalm:    {0.9, 1.0, 1.0, 1.1, 1.0},
	NatureCareful: {1.0, 1.0, 0.9, 1.1, 1.0},
	NatureDocile:  {1.0, 1.0, 1.0, 1.0, 1.0},
	NatureGentle:  {1.0, 0.9, 1.0, 1.1, 1.0},
	NatureHardy:   {1.0, 1.0, 1.0, 1.0, 1.0},
	NatureHasty:   {1.0, 0.9, 1.0, 1.0, 1.1},
	NatureImpish:  {1.0, 1.1, 0.9, 1.0, 1.0},
	NatureJolly:   {1.0, 1.0, 0.9, 1.0, 1.1},
	NatureLax:     {1.0, 1.1, 1.0, 0.9, 1.0},
	NatureLonely:  {1.1, 0.9, 1.0, 1.0, 1.0},
	NatureMild:    {1.0, 0.9, 1.1, 1.0, 1.0},
	NatureModest:  {0.9, 1.0, 1.1, 1.0, 1.0},
	NatureNaive:   {1.0, 1.0, 1.0, 0.9, 1.1},
	NatureNaughty: {1.1, 1.0, 1.0, 0.9, 1.0},
	NatureQuiet:   {1.0, 1.0, 1.1, 1.0, 0.9},
	NatureQuirky:  {1.0, 1.0, 1.0, 1.0, 1.0},
	NatureRash:    {1.0, 1.0, 1.1, 0.9, 1.0},
	NatureRelaxed: {1.0, 1.1, 1.0, 1.0, 0.9},
	NatureSassy:   {1.0, 1.0, 1.0, 1.1, 0.9},
	NatureSerious: {1.0, 1.0, 1.0, 1.0, 1.0},
	NatureTimid:   {0.9, 1.0, 1.0, 1.0, 1.1},
}

// StatMod returns this nature's modifier for stat. Always 1.0 for HP,
// Accuracy and Evasion.
func (n Nature) StatMod(stat StatIndex) float64 {
	switch stat {
	case StatHp, StatAcc, StatEva:
		return 1.0
	default:
		return natureMods[n][int(stat)-1]
	}
}
