package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"villa-backend/dtos"
	"villa-backend/middleware"
	"villa-backend/repository"
	"villa-backend/utils"
)

// parseID reads the :id path parameter. Zero is rejected like any other
// malformed id.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// actor names the token subject behind an admin request, for audit lines.
func actor(c *gin.Context) zap.Field {
	if claims := middleware.ClaimsFrom(c); claims != nil {
		return zap.String("actor", claims.Subject)
	}
	return zap.Skip()
}

type pageQuery struct {
	PageSize   int `form:"pageSize"`
	PageNumber int `form:"pageNumber,default=1"`
}

func (q pageQuery) page() repository.Page {
	return repository.Page{Size: q.PageSize, Number: q.PageNumber}.Normalize()
}

func setPaginationHeader(c *gin.Context, page repository.Page) {
	b, _ := json.Marshal(dtos.Pagination{PageNumber: page.Number, PageSize: page.Size})
	c.Header(dtos.PaginationHeader, string(b))
}

// bindError turns a binding failure into readable messages.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, fieldMessage(fe))
		}
		utils.JSONError(c, http.StatusBadRequest, messages...)
		return
	}
	utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "gt", "gte":
		return fe.Field() + " is out of range"
	default:
		return fe.Field() + " is invalid"
	}
}

const (
	jsonPatchContentType = "application/json-patch+json"
	maxPatchBytes        = 1 << 20
)

// parsePatch checks a PATCH body up front and returns the function that
// applies it to a JSON document. An operation list is recognized by its
// content type or by being a JSON array; anything else must be a merge
// object. Empty patches are rejected.
func parsePatch(contentType string, body []byte) (func([]byte) ([]byte, error), bool) {
	if contentType == jsonPatchContentType || bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		patch, err := jsonpatch.DecodePatch(body)
		if err != nil || len(patch) == 0 {
			return nil, false
		}
		return patch.Apply, true
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return nil, false
	}
	return func(doc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(doc, body)
	}, true
}
