package model

// DieKind identifies one kind of die in the shared pool
type DieKind string

// DieCatalog classifies a die kind by its consumption rules
type DieCatalog string

const (
	CatalogGood   DieCatalog = "good"
	CatalogBad    DieCatalog = "bad"
	CatalogCommon DieCatalog = "common"
)

// GoodDice are player-contributed dice; selecting one consumes it permanently
var GoodDice = []DieKind{"456Dice", "OneMoreDice", "HighDice", "WildDice"}

// BadDice are penalty dice seeded into every pool; selecting one returns it
var BadDice = []DieKind{"123Dice", "OneMinusDice", "RiskDice"}

// CommonDice are neutral dice seeded into every pool; selecting one returns it
var CommonDice = []DieKind{"1or6Dice", "ConstantDice", "OddDice", "EvenDice"}

// Catalog returns the catalog a die kind belongs to, or "" for unknown kinds
func Catalog(kind DieKind) DieCatalog {
	for _, k := range GoodDice {
		if k == kind {
			return CatalogGood
		}
	}
	for _, k := range BadDice {
		if k == kind {
			return CatalogBad
		}
	}
	for _, k := range CommonDice {
		if k == kind {
			return CatalogCommon
		}
	}
	return ""
}

// IsGood reports whether a die kind is in the good catalog
func IsGood(kind DieKind) bool {
	return Catalog(kind) == CatalogGood
}

// DiceRecord maps good die kinds to the count a player contributes
type DiceRecord map[DieKind]int

// ContributionSize is the number of good dice every player must contribute
const ContributionSize = 4

// Validate checks that a contribution names only good kinds, keeps every
// count in [0, ContributionSize], and sums to exactly ContributionSize
func (r DiceRecord) Validate() error {
	if r == nil {
		return ErrInvalidDiceRecord
	}
	sum := 0
	for kind, count := range r {
		if !IsGood(kind) {
			return ErrInvalidDiceRecord
		}
		if count < 0 || count > ContributionSize {
			return ErrInvalidDiceRecord
		}
		sum += count
	}
	if sum != ContributionSize {
		return ErrInvalidDiceRecord
	}
	return nil
}
