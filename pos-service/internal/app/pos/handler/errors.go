package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"webpos/pkg/logger"
	"webpos/pkg/money"
	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// writeError maps a service error to its HTTP status and the standard error body.
func writeError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unclassified error")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "internal error", Kind: "storage"})
		return
	}

	status := statusFor(svcErr.Kind)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		_ = c.Error(err)
	}

	c.JSON(status, entity.ErrorResponse{
		Error:   svcErr.Message,
		Kind:    svcErr.KindName(),
		Details: svcErr.Details,
	})
}

func statusFor(kind error) int {
	switch kind {
	case service.ErrNotFound:
		return http.StatusNotFound
	case service.ErrValidation:
		return http.StatusBadRequest
	case service.ErrConflict, service.ErrDependency:
		return http.StatusConflict
	case service.ErrUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, message string, details map[string]interface{}) {
	c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: message, Kind: "validation", Details: details})
}

// bindJSON decodes the body and runs struct validation. It writes the 400
// response itself and reports whether the handler may continue.
// newValidator returns a validator that compares Money and Rate fields by
// their numeric value, so tags like gt=0 apply to them.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch value := field.Interface().(type) {
		case money.Money:
			return value.Float64()
		case money.Rate:
			return value.Float64()
		}
		return nil
	}, money.Money{}, money.Rate{})
	return v
}

func bindJSON(c *gin.Context, v *validator.Validate, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "invalid request body", map[string]interface{}{"cause": err.Error()})
		return false
	}
	if err := v.Struct(dst); err != nil {
		badRequest(c, formatValidationError(err), nil)
		return false
	}
	return true
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		msgs := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			msgs = append(msgs, fe.Namespace()+" failed on "+fe.Tag())
		}
		return strings.Join(msgs, "; ")
	}
	return "validation failed"
}
