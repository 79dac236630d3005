package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/pos-analytics-api/infrastructure/repository"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
	"github.com/vfg2006/pos-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/pos-analytics-api/pkg/log"
	"github.com/vfg2006/pos-analytics-api/pkg/utils"
)

func ListProducts(repo repository.ProductRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		products, err := repo.ListProducts()
		if err != nil {
			logger.WithField("error", err.Error()).Error("products: failed to list products")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(products); err != nil {
			logger.WithField("error", err.Error()).Error("products: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func GetProduct(repo repository.ProductRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("product_id", id).Info("products: fetching product by ID")

		product, err := repo.GetProductByID(id)
		if err != nil {
			logger.WithFields(log.Fields{
				"product_id": id,
				"error":      err.Error(),
			}).Error("products: failed to get product")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if product == nil {
			http.Error(w, "produto não encontrado", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logger.WithField("error", err.Error()).Error("products: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func CreateProduct(repo repository.ProductRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var product domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			logger.WithField("error", err.Error()).Warn("products: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if product.Name == "" || product.Category == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome e categoria são obrigatórios", nil)
			return
		}

		if product.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				logger.WithField("error", err.Error()).Error("products: failed to generate product ID")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador do produto", nil)
				return
			}
			product.ID = id
		}

		if err := repo.CreateProduct(&product); err != nil {
			logger.WithFields(log.Fields{
				"product_id": product.ID,
				"error":      err.Error(),
			}).Error("products: failed to create product")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar produto", nil)
			return
		}

		logger.WithField("product_id", product.ID).Info("products: product created successfully")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logger.WithField("error", err.Error()).Error("products: failed to encode response")
		}
	})
}

func UpdateProduct(repo repository.ProductRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var product domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			logger.WithField("error", err.Error()).Warn("products: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		product.ID = id

		existing, err := repo.GetProductByID(id)
		if err != nil {
			logger.WithFields(log.Fields{
				"product_id": id,
				"error":      err.Error(),
			}).Error("products: failed to get product")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar produto", nil)
			return
		}

		if existing == nil {
			http.Error(w, "produto não encontrado", http.StatusNotFound)
			return
		}

		if err := repo.UpdateProduct(&product); err != nil {
			logger.WithFields(log.Fields{
				"product_id": id,
				"error":      err.Error(),
			}).Error("products: failed to update product")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar produto", nil)
			return
		}

		logger.WithField("product_id", id).Info("products: product updated successfully")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logger.WithField("error", err.Error()).Error("products: failed to encode response")
		}
	})
}
