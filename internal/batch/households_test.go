package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/voltwise/internal/batch"
	"github.com/rshade/voltwise/internal/estimator"
)

const sampleYAML = `
households:
  - id: flat-a
    housing_type: 1BHK
  - id: flat-b
    housing_type: 2bhk
    ac: true
    fridge: true
    washing_machine: true
  - housing_type: "3"
    ac: true
`

func TestDecode(t *testing.T) {
	f, err := batch.Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Len(t, f.Households, 3)
	assert.Equal(t, "flat-b", f.Households[1].ID)
	assert.True(t, f.Households[1].WashingMachine)

	f, err = batch.Decode(strings.NewReader(`{"households":[{"id":"j","housing_type":"2BHK","fridge":true}]}`))
	require.NoError(t, err)
	require.Len(t, f.Households, 1)
	assert.True(t, f.Households[0].Refrigerator)

	f, err = batch.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Households)

	_, err = batch.Decode(strings.NewReader("households: {"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	f, err := batch.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Households, 3)

	_, err = batch.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun(t *testing.T) {
	f, err := batch.Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	rows, err := batch.Run(context.Background(), f.Households, batch.Options{BatchSize: 1, Concurrency: 3})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"flat-a", "flat-b", "#3"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.InDelta(t, 2.4, rows[0].Result.DailyEnergyKWh, 1e-9)
	assert.InDelta(t, 10.8, rows[1].Result.DailyEnergyKWh, 1e-9)
	assert.Equal(t, estimator.StatusAboveAverage, rows[1].Comparison.Status)
	assert.InDelta(t, 7.8, rows[2].Result.DailyEnergyKWh, 1e-9)

	for _, r := range rows {
		assert.Equal(t, estimator.Estimate(r.Profile), r.Result)
	}
}

func TestRun_OrderIsStableUnderConcurrency(t *testing.T) {
	households := make([]batch.Household, 250)
	types := []string{"1BHK", "2BHK", "3BHK"}
	for i := range households {
		households[i] = batch.Household{
			ID:             strings.Repeat("x", i%5) + types[i%3],
			HousingType:    types[i%3],
			AirConditioner: i%2 == 0,
		}
	}

	var mu sync.Mutex
	var last batch.ProgressSnapshot
	rows, err := batch.Run(context.Background(), households, batch.Options{
		BatchSize:   10,
		Concurrency: 8,
		OnProgress: func(s batch.ProgressSnapshot) {
			mu.Lock()
			defer mu.Unlock()
			if s.ProcessedItems > last.ProcessedItems {
				last = s
			}
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, len(households))

	for i, r := range rows {
		assert.Equal(t, households[i].ID, r.ID)
		assert.Equal(t, households[i].AirConditioner, r.Profile.HasAirConditioner)
	}
	assert.True(t, last.IsComplete())
	assert.Equal(t, 25, last.TotalBatches)
}

func TestRun_InvalidRow(t *testing.T) {
	_, err := batch.Run(context.Background(), []batch.Household{
		{ID: "ok", HousingType: "1BHK"},
		{ID: "villa", HousingType: "6BHK"},
	}, batch.Options{})
	require.ErrorIs(t, err, batch.ErrInvalidHousehold)
	require.ErrorIs(t, err, estimator.ErrUnknownHousingType)
	assert.Contains(t, err.Error(), "villa")

	_, err = batch.Run(context.Background(), []batch.Household{{HousingType: "?"}}, batch.Options{})
	assert.Contains(t, err.Error(), "#1")
}

func TestRun_Errors(t *testing.T) {
	_, err := batch.Run(context.Background(), nil, batch.Options{})
	require.ErrorIs(t, err, batch.ErrEmptyItems)

	_, err = batch.Run(context.Background(), []batch.Household{{HousingType: "1"}}, batch.Options{BatchSize: 5000})
	require.ErrorIs(t, err, batch.ErrInvalidBatchSize)
}

func TestSummarize(t *testing.T) {
	f, err := batch.Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	rows, err := batch.Run(context.Background(), f.Households, batch.Options{})
	require.NoError(t, err)

	s := batch.Summarize(rows)
	assert.Equal(t, 3, s.Households)
	assert.InDelta(t, 2.4+10.8+7.8, s.TotalDailyKWh, 1e-9)
	assert.InDelta(t, 7.0, s.AverageDailyKWh, 1e-9)
	assert.Equal(t, 1, s.AboveAverage)
	assert.Equal(t, 1, s.Ratings[estimator.RatingExcellent])
	assert.Equal(t, 1, s.Ratings[estimator.RatingGood])
	assert.Equal(t, 1, s.Ratings[estimator.RatingAverage])

	assert.Zero(t, batch.Summarize(nil).AverageDailyKWh)
}
