package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/pos-analytics-api/internal/domain"
	"github.com/vfg2006/pos-analytics-api/internal/usecases/dashboarding"
	"github.com/vfg2006/pos-analytics-api/pkg/log"
	"github.com/vfg2006/pos-analytics-api/pkg/utils"
)

func GetDashboardInsights(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		period := r.URL.Query().Get("period")
		if period == "" {
			period = string(domain.PeriodAll)
		}

		selector := domain.PeriodSelector(period)
		if !selector.IsValid() {
			logger.WithField("period", period).Warn("dashboard: invalid period parameter")
			http.Error(w, "invalid period", http.StatusBadRequest)
			return
		}

		var customRange domain.DateRange
		if selector == domain.PeriodCustom {
			startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
			if err != nil {
				logger.WithFields(log.Fields{
					"start_date": r.URL.Query().Get("start_date"),
					"error":      err.Error(),
				}).Warn("dashboard: invalid start_date parameter")

				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
			if err != nil {
				logger.WithFields(log.Fields{
					"end_date": r.URL.Query().Get("end_date"),
					"error":    err.Error(),
				}).Warn("dashboard: invalid end_date parameter")

				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			if !startDate.IsZero() {
				customRange.Start = startDate
			}
			if !endDate.IsZero() {
				customRange.End = endDate
			}
		}

		logger.WithField("period", period).Debug("dashboard: building insights for period")

		insights, err := service.GetDashboardInsights(selector, customRange)
		if err != nil {
			logger.WithFields(log.Fields{
				"period": period,
				"error":  err.Error(),
			}).Error("dashboard: failed to build insights")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		// Catálogo ou vendas ainda não carregados
		if insights == nil {
			logger.WithField("period", period).Info("dashboard: data not ready yet")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		logger.WithFields(log.Fields{
			"period":   period,
			"products": len(insights.Consumption),
		}).Info("dashboard: insights built successfully")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(insights); err != nil {
			logger.WithField("error", err.Error()).Error("dashboard: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func GetConsumptionAnalysis(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		logger.Info("dashboard: computing consumption analysis")

		analyses, err := service.GetConsumptionAnalysis()
		if err != nil {
			logger.WithField("error", err.Error()).Error("dashboard: failed to compute consumption analysis")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if analyses == nil {
			logger.Info("dashboard: consumption data not ready yet")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(analyses); err != nil {
			logger.WithField("error", err.Error()).Error("dashboard: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func GetConsumptionSnapshot(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		logger.Info("dashboard: fetching latest consumption snapshot")

		entry, err := service.GetConsumptionSnapshot()
		if err != nil {
			logger.WithField("error", err.Error()).Error("dashboard: failed to fetch consumption snapshot")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if entry == nil {
			logger.Info("dashboard: no consumption snapshot available")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logger.WithField("error", err.Error()).Error("dashboard: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
