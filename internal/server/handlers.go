package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rshade/voltwise/internal/estimator"
	"github.com/rshade/voltwise/internal/greenops"
	"github.com/rshade/voltwise/internal/logging"
)

const maxBodyBytes = 1 << 16

// EstimateRequest is the body of POST /v1/estimate.
type EstimateRequest struct {
	estimator.HouseholdProfile

	Resident *estimator.Resident `json:"resident,omitempty"`
}

// EstimateResponse is returned by POST /v1/estimate.
type EstimateResponse struct {
	Greeting    string                      `json:"greeting,omitempty"`
	Location    string                      `json:"location,omitempty"`
	Result      estimator.ConsumptionResult `json:"result"`
	Comparison  estimator.Comparison        `json:"comparison"`
	Projection  []estimator.ProjectionPoint `json:"projection,omitempty"`
	Equivalency greenops.EquivalencyOutput  `json:"equivalency"`
	Tips        []estimator.TipGroup        `json:"tips"`
}

// HousingTypeInfo describes one supported tier.
type HousingTypeInfo struct {
	HousingType     estimator.HousingType `json:"housing_type"`
	BaseLoadKWh     float64               `json:"base_load_kwh"`
	RegionalAverage float64               `json:"regional_average_kwh"`
}

func housingInfo(h estimator.HousingType) HousingTypeInfo {
	return HousingTypeInfo{
		HousingType:     h,
		BaseLoadKWh:     estimator.BaseLoad(h),
		RegionalAverage: estimator.RegionalAverage(h),
	}
}

func handleEstimate(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	days, err := parseDays(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req EstimateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err = dec.Decode(&req); err != nil {
		msg := "invalid request body"
		if errors.Is(err, estimator.ErrUnknownHousingType) {
			msg = err.Error()
		}
		respondError(w, r, http.StatusBadRequest, msg)
		return
	}
	if !req.HousingType.IsValid() {
		respondError(w, r, http.StatusBadRequest, "housing_type is required (1BHK, 2BHK or 3BHK)")
		return
	}

	resp := EstimateResponse{Tips: estimator.SavingTips()}
	if req.Resident != nil {
		if err = req.Resident.Validate(); err != nil {
			respondError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		resp.Greeting = req.Resident.Greeting()
		resp.Location = req.Resident.LocationLine(req.HousingType)
	}

	resp.Result = estimator.Estimate(req.HouseholdProfile)
	resp.Comparison = estimator.Compare(resp.Result)
	resp.Equivalency = greenops.CalculateForEnergy(resp.Result.YearlyEnergyKWh)
	if days > 0 {
		resp.Projection, _ = estimator.Project(resp.Result, days)
	}

	log.Debug().
		Stringer("housing_type", req.HousingType).
		Float64("daily_kwh", resp.Result.DailyEnergyKWh).
		Stringer("rating", resp.Result.EfficiencyRating).
		Msg("estimate served")

	respondJSON(w, r, http.StatusOK, resp)
}

// parseDays reads the optional days query parameter; 0 means absent.
func parseDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > estimator.MaxProjectionDays {
		return 0, fmt.Errorf("%w: days must be between 1 and %d",
			estimator.ErrInvalidProjectionDays, estimator.MaxProjectionDays)
	}
	return days, nil
}

func handleHousingTypes(w http.ResponseWriter, r *http.Request) {
	types := estimator.HousingTypes()
	infos := make([]HousingTypeInfo, 0, len(types))
	for _, h := range types {
		infos = append(infos, housingInfo(h))
	}
	respondJSON(w, r, http.StatusOK, infos)
}

func handleHousingType(w http.ResponseWriter, r *http.Request) {
	h, err := estimator.ParseHousingType(mux.Vars(r)["type"])
	if err != nil {
		respondError(w, r, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, r, http.StatusOK, housingInfo(h))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
