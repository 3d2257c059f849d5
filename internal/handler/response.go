package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"darf/internal/domain"
	"darf/internal/middleware"
	"darf/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Business errors keep their own message since it names the offending keys.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"

	case errors.Is(err, domain.ErrInvalidGrossAmount):
		return http.StatusBadRequest, "INVALID_GROSS_AMOUNT", err.Error()
	case errors.Is(err, domain.ErrInvalidPaymentDate):
		return http.StatusBadRequest, "INVALID_PAYMENT_DATE", err.Error()
	case errors.Is(err, domain.ErrInvalidFilterRange):
		return http.StatusBadRequest, "INVALID_FILTER", err.Error()
	case errors.Is(err, domain.ErrInvalidOrgUnit):
		return http.StatusBadRequest, "INVALID_ORG_UNIT", err.Error()
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "INVALID_ROLE", err.Error()

	case errors.Is(err, domain.ErrDuplicateInvoice):
		return http.StatusConflict, "DUPLICATE_INVOICE", err.Error()
	case errors.Is(err, domain.ErrDuplicateDocumentNumber):
		return http.StatusConflict, "DUPLICATE_DOCUMENT_NUMBER", err.Error()
	case errors.Is(err, domain.ErrAmbiguousDocumentNumber):
		return http.StatusConflict, "AMBIGUOUS_DOCUMENT_NUMBER", err.Error()
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists"

	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, "RECORD_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrNoMatchingRecords):
		return http.StatusNotFound, "NO_MATCHING_RECORDS", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"

	case errors.Is(err, domain.ErrIncomeNatureMismatch):
		return http.StatusUnprocessableEntity, "INCOME_NATURE_MISMATCH", err.Error()
	case errors.Is(err, domain.ErrInvalidIncomeNature):
		return http.StatusUnprocessableEntity, "INVALID_INCOME_NATURE", err.Error()
	case errors.Is(err, domain.ErrInvalidFiscalCode):
		return http.StatusUnprocessableEntity, "INVALID_FISCAL_CODE", err.Error()

	case errors.Is(err, service.ErrStorageNotConfigured):
		return http.StatusServiceUnavailable, "STORAGE_NOT_CONFIGURED", err.Error()

	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		zap.L().Error("internal error", zap.Any("request_id", requestID), zap.Error(err))
	}
	RespondError(c, status, code, msg)
}

// requireUser returns the authenticated user's ID.
// Returns false if auth context is missing (error response already written).
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, false
	}
	return userID, true
}

// parseUUID reads a path parameter as a UUID, writing a 400 on failure.
func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+param+": must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination reads offset/limit with the given default limit and a cap of 100.
func parsePagination(c *gin.Context, defaultLimit int) (domain.PageRequest, bool) {
	page := domain.PageRequest{Limit: defaultLimit}
	if s := c.Query("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'offset': must be a non-negative integer")
			return page, false
		}
		page.Offset = v
	}
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'limit': must be a positive integer")
			return page, false
		}
		page.Limit = v
	}
	if page.Limit > 100 {
		page.Limit = 100
	}
	return page, true
}
