package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/dmitrijs2005/doclife/internal/server/models"
	"github.com/dmitrijs2005/doclife/internal/webutil"
)

type createDocumentRequest struct {
	// UserID defaults to the caller and must match it when present.
	UserID       string `json:"user_id"`
	DocumentType string `json:"document_type"`
	ExpiryDate   string `json:"expiry_date"`
}

type documentResponse struct {
	ID           string    `json:"doc_id"`
	UserID       string    `json:"user_id"`
	DocumentType string    `json:"document_type"`
	ExpiryDate   string    `json:"expiry_date"`
	CreatedAt    time.Time `json:"created_at"`
}

func toDocumentResponse(d models.Document) documentResponse {
	return documentResponse{
		ID:           d.ID,
		UserID:       d.UserID,
		DocumentType: d.DocumentType,
		ExpiryDate:   d.ExpiryDate.Format(common.DateLayout),
		CreatedAt:    d.CreatedAt,
	}
}

func (a *API) handleCreateDocument(w http.ResponseWriter, r *http.Request) error {
	var req createDocumentRequest
	if err := webutil.DecodeJSON(r, &req); err != nil {
		return err
	}

	caller, ok := userIDFromContext(r.Context())
	if !ok {
		return common.ErrorUnauthorized
	}
	if req.UserID == "" {
		req.UserID = caller
	}
	if err := requireSelf(r, req.UserID); err != nil {
		return err
	}

	expiry, err := time.ParseInLocation(common.DateLayout, req.ExpiryDate, a.loc)
	if err != nil {
		return webutil.ErrBadRequestWrap("expiry_date must be YYYY-MM-DD", err)
	}

	d, err := a.documents.Create(r.Context(), req.UserID, req.DocumentType, expiry)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return webutil.ErrBadRequest("User does not exist")
		}
		return err
	}

	webutil.RespondWithJSON(w, http.StatusCreated, toDocumentResponse(*d))
	return nil
}

func (a *API) handleDeleteDocument(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "document")
	if err != nil {
		return err
	}
	caller, ok := userIDFromContext(r.Context())
	if !ok {
		return common.ErrorUnauthorized
	}

	if err := a.documents.Delete(r.Context(), caller, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return webutil.ErrNotFound("Document not found")
		}
		return err
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"detail": "Document deleted successfully"})
	return nil
}

func (a *API) handleListUserDocuments(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "user")
	if err != nil {
		return err
	}
	if err := requireSelf(r, id); err != nil {
		return err
	}

	docs, err := a.documents.ListByUser(r.Context(), id)
	if err != nil {
		return err
	}

	resp := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, toDocumentResponse(d))
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
	return nil
}
