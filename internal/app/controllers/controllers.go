package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/pkg/imagedata"
	"github.com/samialh/ketab/internal/pkg/logger"
)

// parseIDParam reads the :id path parameter. On failure it writes the
// 404 itself and returns false.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, dto.NewDetailResponse("Not found."))
		return 0, false
	}
	return id, true
}

// bindError writes the uniform 400 body for a binding failure.
func bindError(c *gin.Context, err error) {
	logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Request binding failed")
	c.JSON(http.StatusBadRequest, dto.NewDetailResponse(err.Error()))
}

// formImage extracts an uploaded image from a multipart request. A
// request without an image part yields (nil, nil); a non-image part is
// a client error.
func formImage(c *gin.Context) (*imagedata.Image, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	return imagedata.FromMultipart(fh)
}
