package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/service"
	"github.com/maxviazov/listresult/pkg/response"
	"github.com/rs/zerolog"
)

const (
	viewFull    = "full"
	viewSummary = "summary"

	// readTimeout bounds a single list read against the store.
	readTimeout = 5 * time.Second
)

// listQuery is the query string every list endpoint accepts.
type listQuery struct {
	listing.Pagination
	View string `form:"view" binding:"omitempty,oneof=full summary"`
}

func bindListQuery(c *gin.Context) (listQuery, error) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return listQuery{}, bindingError(err)
	}
	if q.View == "" {
		q.View = viewFull
	}
	return q, nil
}

// writeList reads one page out of res and writes the envelope. The summary
// view goes through the projection so deferred stores load only its fields.
func writeList[T, P any](c *gin.Context, res listing.ListResult[T], view string, summary listing.Projection[T, P]) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	logger := zerolog.Ctx(ctx).With().
		Str("path", c.Request.URL.Path).
		Str("view", view).
		Bool("deferred", res.IsQueryable()).
		Int("total", res.Page().Total).
		Logger()

	if view == viewSummary {
		items, err := listing.ProjectTo(ctx, res, summary)
		observeRead(res.IsQueryable(), view, err)
		if err != nil {
			logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("list read failed")
			response.WriteError(c, err)
			return
		}
		logger.Debug().Int("items", len(items)).Dur("duration", time.Since(start)).Msg("list served")
		response.WritePage(c, res.Page(), items)
		return
	}

	items, err := res.GetData(ctx)
	observeRead(res.IsQueryable(), view, err)
	if err != nil {
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("list read failed")
		response.WriteError(c, err)
		return
	}
	logger.Debug().Int("items", len(items)).Dur("duration", time.Since(start)).Msg("list served")
	response.WritePage(c, res.Page(), items)
}

// bindingError turns gin/validator failures into field-level input errors.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fe := make([]service.FieldError, 0, len(verrs))
		for _, v := range verrs {
			fe = append(fe, service.FieldError{Field: strings.ToLower(v.Field()), Message: "failed " + v.Tag() + " check"})
		}
		return service.NewInvalidInputError(fe)
	}
	var nerr *strconv.NumError
	if errors.As(err, &nerr) {
		return service.NewInvalidInputError([]service.FieldError{{Field: "query", Message: "must be a valid integer"}})
	}
	return service.NewInvalidInputError([]service.FieldError{{Field: "query", Message: err.Error()}})
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.NewInvalidInputError([]service.FieldError{{Field: name, Message: "must be a valid integer > 0"}})
	}
	return id, nil
}
