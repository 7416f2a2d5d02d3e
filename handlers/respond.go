package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salora/services/scheduling"
	"salora/utils"
)

// respondError maps the scheduling error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		vErr  *scheduling.ValidationError
		cErr  *scheduling.ConflictError
		nfErr *scheduling.NotFoundError
		tsErr *scheduling.TransientStoreError
	)
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", vErr.Error())
	case errors.As(err, &cErr):
		utils.JSONError(c, http.StatusConflict, "slot unavailable", cErr.Error())
	case errors.As(err, &nfErr):
		utils.JSONError(c, http.StatusNotFound, "not found", nfErr.Error())
	case errors.As(err, &tsErr):
		utils.JSONError(c, http.StatusServiceUnavailable, "store unavailable", tsErr.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
