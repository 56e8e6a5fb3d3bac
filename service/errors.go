package service

import (
	"Favour/pkg/errorx"
	"net/http"
)

var (
	ErrAlreadyFavourited = errorx.NewError(http.StatusUnprocessableEntity, "status already favourited")
	ErrNotFavourited     = errorx.NewError(http.StatusNotFound, "status not favourited")
	ErrStatusNotFound    = errorx.NewError(http.StatusNotFound, "status not found")
	ErrAccountNotFound   = errorx.NewError(http.StatusNotFound, "account not found")
	ErrStatusMismatch    = errorx.NewError(http.StatusBadRequest, "status does not match favourite")
	ErrStatMissing       = errorx.NewError(http.StatusInternalServerError, "status stat row missing")
)
