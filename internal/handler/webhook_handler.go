package handler

import (
	"io"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// StripeからのwebhookのHTTP。POST以外はechoが405を返す。
type WebhookHandler struct {
	uc *usecase.WebhookUsecase
}

// DI
func NewWebhookHandler(uc *usecase.WebhookUsecase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/stripe-webhook", h.receive)
}

func (h *WebhookHandler) receive(c echo.Context) error {
	// 署名検証は生のボディが必要（Bindは使えない）
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	body, err := h.uc.HandleEvent(c.Request().Context(), payload, sig)
	if err != nil {
		return writeError(c, err)
	}

	return c.String(http.StatusOK, body)
}
