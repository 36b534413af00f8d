package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/dmitrijs2005/doclife/internal/webutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type createUserRequest struct {
	Name         string `json:"name"`
	MobileNumber string `json:"mobile_number"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message     string `json:"message"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type passwordUpdateRequest struct {
	Password string `json:"password"`
}

// pathID reads the {id} path parameter and checks it is a UUID.
func pathID(r *http.Request, what string) (string, error) {
	id := chi.URLParam(r, paramID)
	if _, err := uuid.Parse(id); err != nil {
		return "", webutil.ErrBadRequest("Invalid " + what + " ID format")
	}
	return id, nil
}

func (a *API) handleCreateUser(w http.ResponseWriter, r *http.Request) error {
	var req createUserRequest
	if err := webutil.DecodeJSON(r, &req); err != nil {
		return err
	}

	u, err := a.users.Register(r.Context(), req.Name, req.MobileNumber, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return webutil.ErrBadRequest("Email already registered")
		}
		return err
	}

	webutil.RespondWithJSON(w, http.StatusCreated, u)
	return nil
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := webutil.DecodeJSON(r, &req); err != nil {
		return err
	}

	res, err := a.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return webutil.ErrUnauthorized("Invalid username or password")
		}
		return err
	}

	webutil.RespondWithJSON(w, http.StatusOK, loginResponse{
		Message:     "Login successful",
		UserID:      res.UserID,
		Name:        res.Name,
		AccessToken: res.AccessToken,
		TokenType:   common.AuthorizationScheme,
	})
	return nil
}

func (a *API) handleGetUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "user")
	if err != nil {
		return err
	}
	if err := requireSelf(r, id); err != nil {
		return err
	}

	u, err := a.users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return webutil.ErrNotFound("User not found")
		}
		return err
	}

	webutil.RespondWithJSON(w, http.StatusOK, u)
	return nil
}

func (a *API) handleUpdateUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "user")
	if err != nil {
		return err
	}
	if err := requireSelf(r, id); err != nil {
		return err
	}

	var req passwordUpdateRequest
	if err := webutil.DecodeJSON(r, &req); err != nil {
		return err
	}

	u, err := a.users.UpdatePassword(r.Context(), id, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return webutil.ErrNotFound("User not found")
		}
		return err
	}

	webutil.RespondWithJSON(w, http.StatusOK, u)
	return nil
}

func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "user")
	if err != nil {
		return err
	}
	if err := requireSelf(r, id); err != nil {
		return err
	}

	if err := a.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return webutil.ErrNotFound("User not found")
		}
		return err
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"detail": "User deleted successfully"})
	return nil
}
