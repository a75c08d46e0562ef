package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rshade/voltwise/internal/estimator"
	"github.com/rshade/voltwise/internal/logging"
)

// ErrInvalidHousehold wraps every problem with an individual input row.
var ErrInvalidHousehold = errors.New("invalid household")

// DefaultConcurrency is the number of batches estimated at once.
const DefaultConcurrency = 4

// Household is one row of a batch file.
type Household struct {
	ID             string `json:"id"              yaml:"id"`
	HousingType    string `json:"housing_type"    yaml:"housing_type"`
	AirConditioner bool   `json:"ac"              yaml:"ac"`
	Refrigerator   bool   `json:"fridge"          yaml:"fridge"`
	WashingMachine bool   `json:"washing_machine" yaml:"washing_machine"`
}

// Profile converts the row into an estimator profile.
func (h Household) Profile() (estimator.HouseholdProfile, error) {
	housing, err := estimator.ParseHousingType(h.HousingType)
	if err != nil {
		return estimator.HouseholdProfile{}, err
	}
	return estimator.HouseholdProfile{
		HousingType:       housing,
		HasAirConditioner: h.AirConditioner,
		HasRefrigerator:   h.Refrigerator,
		HasWashingMachine: h.WashingMachine,
	}, nil
}

// File is the document read by `voltwise batch`.
type File struct {
	Households []Household `json:"households" yaml:"households"`
}

// Decode reads a YAML or JSON batch document.
func Decode(r io.Reader) (File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decoding households: %w", err)
	}
	return f, nil
}

// LoadFile reads a batch document from path.
func LoadFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("opening batch file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Row is the estimate of one household.
type Row struct {
	ID         string                      `json:"id"         yaml:"id"`
	Profile    estimator.HouseholdProfile  `json:"profile"    yaml:"profile"`
	Result     estimator.ConsumptionResult `json:"result"     yaml:"result"`
	Comparison estimator.Comparison        `json:"comparison" yaml:"comparison"`
}

// Options tune Run. Zero values select the defaults.
type Options struct {
	BatchSize   int
	Concurrency int
	OnProgress  ProgressCallback
}

// Run estimates every household and returns the rows in input order.
// All rows are validated before any estimate is made; the first invalid row
// fails the whole run with its id (or 1-based position) in the error.
func Run(ctx context.Context, households []Household, opts Options) ([]Row, error) {
	log := logging.FromContext(ctx)

	profiles := make([]estimator.HouseholdProfile, len(households))
	for i, h := range households {
		p, err := h.Profile()
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrInvalidHousehold, rowName(h, i), err)
		}
		profiles[i] = p
	}

	batchSize := opts.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	processor, err := NewProcessor[estimator.HouseholdProfile](batchSize)
	if err != nil {
		return nil, err
	}
	processor.WithProgressCallback(opts.OnProgress)

	rows := make([]Row, len(households))
	err = processor.ProcessConcurrent(ctx, profiles, func(_ context.Context, batch []estimator.HouseholdProfile, offset int) error {
		for j, p := range batch {
			i := offset + j
			result := estimator.Estimate(p)
			rows[i] = Row{
				ID:         rowName(households[i], i),
				Profile:    p,
				Result:     result,
				Comparison: estimator.Compare(result),
			}
		}
		log.Debug().Int("offset", offset).Int("size", len(batch)).Msg("batch estimated")
		return nil
	}, concurrency)
	if err != nil {
		return nil, err
	}

	log.Info().Int("households", len(rows)).Int("batch_size", batchSize).
		Int("concurrency", concurrency).Msg("batch estimation complete")
	return rows, nil
}

func rowName(h Household, i int) string {
	if h.ID != "" {
		return h.ID
	}
	return fmt.Sprintf("#%d", i+1)
}

// Summary aggregates a batch run.
type Summary struct {
	Households       int                      `json:"households"         yaml:"households"`
	TotalDailyKWh    float64                  `json:"total_daily_kwh"    yaml:"total_daily_kwh"`
	AverageDailyKWh  float64                  `json:"average_daily_kwh"  yaml:"average_daily_kwh"`
	TotalMonthlyCost float64                  `json:"total_monthly_cost" yaml:"total_monthly_cost"`
	TotalYearlyCO2Kg float64                  `json:"total_yearly_co2_kg" yaml:"total_yearly_co2_kg"`
	AboveAverage     int                      `json:"above_average"      yaml:"above_average"`
	Ratings          map[estimator.Rating]int `json:"ratings"            yaml:"ratings"`
}

// Summarize totals the rows of a run.
func Summarize(rows []Row) Summary {
	s := Summary{Households: len(rows), Ratings: make(map[estimator.Rating]int)}
	for _, r := range rows {
		s.TotalDailyKWh += r.Result.DailyEnergyKWh
		s.TotalMonthlyCost += r.Result.MonthlyCost
		s.TotalYearlyCO2Kg += r.Result.CO2YearlyKg
		s.Ratings[r.Result.EfficiencyRating]++
		if r.Comparison.IsAboveAverage() {
			s.AboveAverage++
		}
	}
	if len(rows) > 0 {
		s.AverageDailyKWh = s.TotalDailyKWh / float64(len(rows))
	}
	return s
}
