package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"beneficiarydesk/repository"
	"beneficiarydesk/utils"

	"github.com/gorilla/mux"
)

type SlipHandler struct {
	Repo     *repository.SlipRepository
	SavePath string
}

// TokenSlip renders a printable slip PDF for a beneficiary, saves it locally,
// and uploads it to R2 when the bucket is configured.
func (h *SlipHandler) TokenSlip(w http.ResponseWriter, r *http.Request) {
	beneficiaryID := mux.Vars(r)["id"]

	data, err := h.Repo.GetSlipData(beneficiaryID)
	if err != nil {
		writeRepoError(w, err, "")
		return
	}

	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./slips"
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		writeRepoError(w, err, "")
		return
	}

	pdfBytes, err := utils.GenerateSlipPDF(data)
	if err != nil {
		writeRepoError(w, err, "")
		return
	}

	filename := fmt.Sprintf("slip_%s.pdf", data.Beneficiary.TokenID)
	savePath := filepath.Join(saveDir, filename)
	if err := os.WriteFile(savePath, pdfBytes, 0644); err != nil {
		writeRepoError(w, err, "")
		return
	}

	fileURL := ""
	if utils.R2Configured() {
		fileURL, err = utils.UploadSlipToR2(pdfBytes, filename)
		if err != nil {
			// The slip is already on disk; don't fail the print job over the
			// archive copy.
			log.Printf("failed to upload slip %s to R2: %v", filename, err)
			fileURL = ""
		}
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data: map[string]string{
			"file": filename,
			"url":  fileURL,
		},
	})
}
