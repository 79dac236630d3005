package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vfg2006/pos-analytics-api/infrastructure/repository"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
	"github.com/vfg2006/pos-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/pos-analytics-api/pkg/log"
	"github.com/vfg2006/pos-analytics-api/pkg/utils"
)

func ListSales(repo repository.SaleRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"start_date": r.URL.Query().Get("start_date"),
				"error":      err.Error(),
			}).Warn("sales: invalid start_date parameter")

			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"end_date": r.URL.Query().Get("end_date"),
				"error":    err.Error(),
			}).Warn("sales: invalid end_date parameter")

			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var dateRange domain.DateRange
		if !startDate.IsZero() {
			dateRange.Start = startDate
		}
		if !endDate.IsZero() {
			dateRange.End = endDate
		}

		sales, err := repo.ListSales(dateRange)
		if err != nil {
			logger.WithField("error", err.Error()).Error("sales: failed to list sales")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sales); err != nil {
			logger.WithField("error", err.Error()).Error("sales: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func CreateSale(repo repository.SaleRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var sale domain.Sale
		if err := json.NewDecoder(r.Body).Decode(&sale); err != nil {
			logger.WithField("error", err.Error()).Warn("sales: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if len(sale.SaleItems) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "A venda precisa de pelo menos um item", nil)
			return
		}

		if !sale.PaymentMethod.IsValid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Forma de pagamento inválida. Valores aceitos: card, cash, pix", nil)
			return
		}

		if sale.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				logger.WithField("error", err.Error()).Error("sales: failed to generate sale ID")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador da venda", nil)
				return
			}
			sale.ID = id
		}

		if sale.CreatedAt.IsZero() {
			sale.CreatedAt = time.Now()
		}

		// O total é derivado dos itens quando não informado
		if sale.Total == 0 {
			for _, item := range sale.SaleItems {
				sale.Total += float64(item.Quantity) * item.PriceAtSale
			}
			sale.Total = utils.RoundWithTwoDecimalPlace(sale.Total)
		}

		if err := repo.CreateSale(r.Context(), &sale); err != nil {
			logger.WithFields(log.Fields{
				"sale_id": sale.ID,
				"error":   err.Error(),
			}).Error("sales: failed to create sale")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar venda", nil)
			return
		}

		logger.WithFields(log.Fields{
			"sale_id": sale.ID,
			"total":   sale.Total,
			"items":   len(sale.SaleItems),
		}).Info("sales: sale created successfully")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(sale); err != nil {
			logger.WithField("error", err.Error()).Error("sales: failed to encode response")
		}
	})
}
