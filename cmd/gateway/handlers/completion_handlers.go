package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"grux/cmd/gateway/dto"
	"grux/cmd/gateway/services"
	"grux/cmd/gateway/trace"
	"grux/cmd/internal/logger"
)

// CompletionHandler godoc
// @Summary      Chat completion
// @Description  Forwards one user turn to the upstream model and relays the reply. Attached files contribute metadata only.
// @Tags         completion
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CompletionRequestDTO  true  "completion request"
// @Success      200   {object}  dto.CompletionResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO  "upstream credential missing"
// @Failure      502   {object}  dto.ErrorResponseDTO
// @Router       /chat-completion [post]
func CompletionHandler(completionSvc *services.CompletionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CompletionRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		// an empty message is valid only when files are attached
		if strings.TrimSpace(req.Message) == "" && len(req.Files) == 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "message or files required"})
			return
		}

		resp, complErr := completionSvc.Complete(c.Request.Context(), req.Message, req.Files)
		if complErr != nil {
			// diagnostics only; the user message itself is never logged
			logger.ErrorWithFields("completion failed", logger.Fields{
				"kind":       string(complErr.Kind),
				"error_code": complErr.ErrorCode,
				"cause":      complErr.Unwrap().Error(),
				"request_id": trace.RequestIDFromContext(c.Request.Context()),
			})
			c.JSON(complErr.StatusCode, dto.ErrorResponseDTO{Error: complErr.ErrorCode})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
