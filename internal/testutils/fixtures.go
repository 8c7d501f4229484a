package testutils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/player"
)

// TestBuildName is the default build name for test fixtures
const TestBuildName = "Test"

// CreateTestSnapshot returns a warrior build with a value in every record.
// Numbers are float64 and lists are []any, as they come back from storage.
func CreateTestSnapshot() *player.Snapshot {
	return &player.Snapshot{
		Name:     TestBuildName,
		Spec:     sim.SpecWarrior,
		Class:    sim.ClassWarrior,
		Race:     sim.RaceOrc,
		Rotation: map[string]any{"use_rend": true, "ms_rage_threshold": float64(35)},
		Options:  map[string]any{"shout": float64(2)},
		Talents:  map[string]any{"glyphs": []any{float64(1), float64(3)}},
		Gear: sim.EquipmentSpec{Items: []sim.ItemSpec{
			{ID: 40528, Enchant: 44879, Gems: []int32{41398, 42153}},
		}},
	}
}

// StoredSnapshot returns snap as it reads back after being saved as JSON
func StoredSnapshot(t *testing.T, snap *player.Snapshot) *player.Snapshot {
	t.Helper()

	data, err := json.Marshal(snap)
	require.NoError(t, err, "failed to encode snapshot")

	var decoded player.Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded), "failed to decode snapshot")
	return &decoded
}
