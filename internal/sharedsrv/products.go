package sharedsrv

import (
	"encoding/json"
	"net/http"

	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/utils"
	"github.com/shelfsync/shelfsync/models"
)

func (h *Handler) insert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.insert").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if request.Product.SyncID == "" {
		log.Error().Str("func", "*Handler.insert").Msg("no sync ID was given")
		http.Error(w, "no sync ID was given", http.StatusBadRequest)
		return
	}

	if err := h.repo.UpsertOne(ctx, request.Product); err != nil {
		log.Err(err).Str("func", "*Handler.insert").Msg("error saving product")
		http.Error(w, "error saving product", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.UpsertResponse{OK: true}, http.StatusOK)
}

func (h *Handler) insertBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.UpsertBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.insertBatch").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	for _, product := range request.Products {
		if product.SyncID == "" {
			log.Error().Str("func", "*Handler.insertBatch").Msg("batch contains a record without sync ID")
			http.Error(w, "batch contains a record without sync ID", http.StatusBadRequest)
			return
		}
	}

	if err := h.repo.UpsertBatch(ctx, request.Products); err != nil {
		log.Err(err).Str("func", "*Handler.insertBatch").Msg("error saving product batch")
		http.Error(w, "error saving product batch", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.UpsertResponse{OK: true}, http.StatusOK)
}

func (h *Handler) query(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.query").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if request.Where == "" {
		log.Error().Str("func", "*Handler.query").Msg("no selection expression was given")
		http.Error(w, "no selection expression was given", http.StatusBadRequest)
		return
	}

	products, err := h.repo.Query(ctx, request.Where, request.Args...)
	if err != nil {
		log.Err(err).Str("func", "*Handler.query").Msg("error querying products")
		http.Error(w, "error querying products", http.StatusInternalServerError)
		return
	}

	response := models.QueryResponse{
		Products: products,
		Length:   len(products),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// update is wire-compatible with insert: both resolve to an upsert keyed by
// sync ID, so a record replayed through either operation lands identically.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.update").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if request.Product.SyncID == "" {
		log.Error().Str("func", "*Handler.update").Msg("no sync ID was given")
		http.Error(w, "no sync ID was given", http.StatusBadRequest)
		return
	}

	if err := h.repo.UpsertOne(ctx, request.Product); err != nil {
		log.Err(err).Str("func", "*Handler.update").Msg("error updating product")
		http.Error(w, "error updating product", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.UpsertResponse{OK: true}, http.StatusOK)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.delete").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if request.SyncID == "" {
		log.Error().Str("func", "*Handler.delete").Msg("no sync ID was given")
		http.Error(w, "no sync ID was given", http.StatusBadRequest)
		return
	}

	deleted, err := h.repo.SoftDelete(ctx, request.SyncID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.delete").Msg("error deleting product")
		http.Error(w, "error deleting product", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.UpsertResponse{OK: deleted}, http.StatusOK)
}
