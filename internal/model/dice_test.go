package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiceRecordValidate(t *testing.T) {
	cases := []struct {
		name   string
		record DiceRecord
		valid  bool
	}{
		{
			name:   "even split",
			record: DiceRecord{"456Dice": 2, "WildDice": 2},
			valid:  true,
		},
		{
			name:   "all one kind",
			record: DiceRecord{"HighDice": 4},
			valid:  true,
		},
		{
			name:   "one of each",
			record: DiceRecord{"456Dice": 1, "OneMoreDice": 1, "HighDice": 1, "WildDice": 1},
			valid:  true,
		},
		{
			name:   "sum too low",
			record: DiceRecord{"456Dice": 3},
			valid:  false,
		},
		{
			name:   "sum too high",
			record: DiceRecord{"456Dice": 3, "WildDice": 2},
			valid:  false,
		},
		{
			name:   "negative count",
			record: DiceRecord{"456Dice": 5, "WildDice": -1},
			valid:  false,
		},
		{
			name:   "bad die in record",
			record: DiceRecord{"456Dice": 3, "123Dice": 1},
			valid:  false,
		},
		{
			name:   "common die in record",
			record: DiceRecord{"456Dice": 3, "OddDice": 1},
			valid:  false,
		},
		{
			name:   "unknown kind",
			record: DiceRecord{"MysteryDice": 4},
			valid:  false,
		},
		{
			name:   "empty",
			record: DiceRecord{},
			valid:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.record.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidDiceRecord)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	for _, k := range GoodDice {
		assert.Equal(t, CatalogGood, Catalog(k))
	}
	for _, k := range BadDice {
		assert.Equal(t, CatalogBad, Catalog(k))
	}
	for _, k := range CommonDice {
		assert.Equal(t, CatalogCommon, Catalog(k))
	}
	assert.Equal(t, DieCatalog(""), Catalog("MysteryDice"))
}

func TestIsGood(t *testing.T) {
	for _, k := range GoodDice {
		assert.True(t, IsGood(k))
	}
	for _, k := range BadDice {
		assert.False(t, IsGood(k))
	}
	for _, k := range CommonDice {
		assert.False(t, IsGood(k))
	}
}
