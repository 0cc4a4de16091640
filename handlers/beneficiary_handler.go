package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"

	"beneficiarydesk/auth"
	"beneficiarydesk/models"
	"beneficiarydesk/repository"

	"github.com/gorilla/mux"
)

var cnicPattern = regexp.MustCompile(`^\d{5}-\d{7}-\d$`)

type BeneficiaryHandler struct {
	Repo repository.BeneficiaryRepository
}

// Create registers a beneficiary and issues its token. createdBy comes from
// the session identity, never from the request body.
func (h *BeneficiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var b models.Beneficiary
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if b.CNIC == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "CNIC is required",
		})
		return
	}
	if !cnicPattern.MatchString(b.CNIC) {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "CNIC must be in the form 12345-1234567-1",
		})
		return
	}

	id, ok := auth.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ApiResponse{
			Success: false,
			Message: "Authorization missing",
		})
		return
	}
	b.CreatedBy = id.UserID
	b.Status = models.StatusPending
	b.TokenID = ""
	b.Remarks = ""

	if err := h.Repo.Register(&b); err != nil {
		writeRepoError(w, err, "CNIC already exists")
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Data:    b,
	})
}

// List supports tokenID/cnic filters with offset pagination, newest first.
func (h *BeneficiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := int64(1)
	if v := q.Get("page"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			page = parsed
		}
	}
	limit := int64(20)
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	filter := repository.ListFilter{
		TokenID: q.Get("tokenID"),
		CNIC:    q.Get("cnic"),
	}

	beneficiaries, total, err := h.Repo.List(filter, page, limit)
	if err != nil {
		writeRepoError(w, err, "")
		return
	}
	if beneficiaries == nil {
		beneficiaries = []*models.Beneficiary{}
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data: map[string]interface{}{
			"beneficiaries": beneficiaries,
			"total":         total,
			"page":          page,
		},
	})
}

// Update applies a partial status/remarks change. Only supplied fields move;
// the status enum is enforced at the ledger boundary as well.
func (h *BeneficiaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	beneficiaryID := mux.Vars(r)["id"]

	var body struct {
		Status  *string `json:"status"`
		Remarks *string `json:"remarks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if body.Status != nil && !models.ValidStatus(*body.Status) {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Status must be pending, in-progress, or completed",
		})
		return
	}

	b, err := h.Repo.UpdateStatusRemarks(beneficiaryID, repository.BeneficiaryUpdate{
		Status:  body.Status,
		Remarks: body.Remarks,
	})
	if err != nil {
		writeRepoError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    b,
	})
}
