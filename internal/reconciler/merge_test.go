package reconciler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shelfsync/shelfsync/models"
)

func TestMerge_NewerLocalWinsAllFields(t *testing.T) {
	local := models.Product{
		LocalID: 7, SyncID: "x", Name: "rice", Count: 5, MRP: 80,
		LastUpdated: at(3000), UpdatedBy: "shop-a", Version: 2,
	}
	shared := models.Product{
		SyncID: "x", Name: "rice (old)", Count: 2, MRP: 99,
		LastUpdated: at(2000), UpdatedBy: "shop-b", Version: 4,
	}

	merged := Merge(local, shared, "shop-a", at(5000))

	assert.Equal(t, "rice", merged.Name)
	assert.Equal(t, int64(5), merged.Count)
	assert.Equal(t, float64(80), merged.MRP)
	assert.Equal(t, int64(5), merged.Version, "max(2,4)+1")
	assert.Equal(t, int64(7), merged.LocalID, "local row key is preserved")
	assert.Equal(t, "shop-a"+MergedSuffix, merged.UpdatedBy)
	assert.Equal(t, at(5000), merged.LastUpdated)
}

func TestMerge_NewerSharedWinsAllFields(t *testing.T) {
	local := models.Product{
		SyncID: "x", Count: 5, LastUpdated: at(2000), UpdatedBy: "shop-a", Version: 2,
	}
	shared := models.Product{
		SyncID: "x", Count: 9, LastUpdated: at(3000), UpdatedBy: "shop-b", Version: 2,
	}

	merged := Merge(local, shared, "shop-a", at(5000))

	assert.Equal(t, int64(9), merged.Count, "the newer revision contributes every field")
	assert.Equal(t, int64(3), merged.Version)
}

func TestMerge_TimestampTie_HigherVersionWins(t *testing.T) {
	local := models.Product{SyncID: "x", Count: 5, LastUpdated: at(2000), Version: 4}
	shared := models.Product{SyncID: "x", Count: 9, LastUpdated: at(2000), Version: 2}

	merged := Merge(local, shared, "shop-a", at(5000))

	assert.Equal(t, int64(5), merged.Count)
	assert.Equal(t, int64(5), merged.Version)
}

func TestMerge_TimestampTie_SharedWinsWhenVersionHigher(t *testing.T) {
	local := models.Product{SyncID: "x", Count: 5, LastUpdated: at(2000), Version: 2, UpdatedBy: "shop-a"}
	shared := models.Product{SyncID: "x", Count: 9, LastUpdated: at(2000), Version: 3, UpdatedBy: "shop-b"}

	merged := Merge(local, shared, "shop-a", at(5000))

	assert.Equal(t, int64(9), merged.Count)
	assert.Equal(t, int64(4), merged.Version)
}

func TestMerge_ConvergedInputsProduceNoNewRevision(t *testing.T) {
	record := models.Product{
		SyncID: "x", Count: 5, LastUpdated: at(2000), UpdatedBy: "shop-b", Version: 3,
	}

	merged := Merge(record, record, "shop-a", at(5000))

	assert.Equal(t, record, merged)
	assert.Equal(t, int64(3), merged.Version, "version must not climb for converged records")
}

func TestMerge_DeletionSticky(t *testing.T) {
	cases := []struct {
		name          string
		localDeleted  bool
		sharedDeleted bool
	}{
		{"local deleted", true, false},
		{"shared deleted", false, true},
		{"both deleted", true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			local := models.Product{
				SyncID: "x", LastUpdated: at(2000), Version: 2, Deleted: tc.localDeleted,
			}
			shared := models.Product{
				SyncID: "x", LastUpdated: at(3000), Version: 2, Deleted: tc.sharedDeleted,
			}

			merged := Merge(local, shared, "shop-a", at(5000))
			assert.True(t, merged.Deleted)
		})
	}
}

func TestMerge_VersionStrictlyExceedsBothInputs(t *testing.T) {
	for _, versions := range [][2]int64{{1, 1}, {2, 7}, {9, 3}} {
		local := models.Product{SyncID: "x", LastUpdated: at(2000), Version: versions[0]}
		shared := models.Product{SyncID: "x", LastUpdated: at(3000), Version: versions[1]}

		merged := Merge(local, shared, "shop-a", at(5000))

		assert.Greater(t, merged.Version, local.Version)
		assert.Greater(t, merged.Version, shared.Version)
	}
}

func TestMerge_SubMillisecondDifferenceIsATie(t *testing.T) {
	base := time.UnixMilli(2000)
	local := models.Product{SyncID: "x", Count: 5, LastUpdated: base.Add(200 * time.Microsecond), Version: 1}
	shared := models.Product{SyncID: "x", Count: 9, LastUpdated: base, Version: 1}

	merged := Merge(local, shared, "shop-a", at(5000))

	// comparisons happen at millisecond granularity, so this is converged
	assert.Equal(t, local, merged)
}
