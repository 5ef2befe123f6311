package probability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeKeepsUnrelatedGroups(t *testing.T) {
	existing := Snapshot{GroupShot: {"success": 0.65}}

	got := Merge(existing, Update{Betting: Group{"offer_double": 0.4}})

	assert.Equal(t, Snapshot{
		GroupShot:    {"success": 0.65},
		GroupBetting: {"offer_double": 0.4},
	}, got)
}

func TestMergeReplacesGroupWholesale(t *testing.T) {
	existing := Snapshot{
		GroupShot:    {"success": 0.65},
		GroupBetting: {"offer_double": 0.4, "accept_double": 0.7},
	}

	got := Merge(existing, Update{Betting: Group{"decline_double": 0.2}})

	assert.Equal(t, Group{"decline_double": 0.2}, got[GroupBetting], "group replace, not deep merge")
	assert.Equal(t, Group{"success": 0.65}, got[GroupShot])
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	existing := Snapshot{GroupShot: {"success": 0.5}}
	incoming := Group{"success": 0.9}

	got := Merge(existing, Update{Shot: incoming})
	got[GroupShot]["success"] = 0.1

	assert.Equal(t, 0.5, existing[GroupShot]["success"])
	assert.Equal(t, 0.9, incoming["success"])
}

func TestMergeClampsProbabilities(t *testing.T) {
	got := Merge(nil, Update{Shot: Group{"success": 1.4, "hazard": -0.2, "green": 0.3}})

	require.Contains(t, got, GroupShot)
	assert.Equal(t, 1.0, got[GroupShot]["success"])
	assert.Equal(t, 0.0, got[GroupShot]["hazard"])
	assert.Equal(t, 0.3, got[GroupShot]["green"])
}

func TestMergePassesExpectedValuesThrough(t *testing.T) {
	got := Merge(nil, Update{Betting: Group{
		"offer_double_ev": -3.5,
		"expected_value":  12,
		"swing_quarters":  8,
		"offer_double":    1.2,
	}})

	b := got[GroupBetting]
	assert.Equal(t, -3.5, b["offer_double_ev"])
	assert.Equal(t, 12.0, b["expected_value"])
	assert.Equal(t, 8.0, b["swing_quarters"])
	assert.Equal(t, 1.0, b["offer_double"])
}

func TestMergeIsOrderIndependentForDisjointGroups(t *testing.T) {
	shot := Update{Shot: Group{"success": 0.3}}
	bet := Update{Betting: Group{"offer_double": 0.6}}

	a := Merge(Merge(nil, shot), bet)
	b := Merge(Merge(nil, bet), shot)

	assert.Equal(t, a, b)
}

func TestMergeEmptyUpdate(t *testing.T) {
	existing := Snapshot{GroupShot: {"success": 0.65}}
	got := Merge(existing, Update{})
	assert.Equal(t, existing, got)
	assert.True(t, Update{}.Empty())
}
