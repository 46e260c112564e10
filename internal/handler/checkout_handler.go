package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// チェックアウトセッション作成のHTTP
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CheckoutRequest struct {
	LineItems     []usecase.LineItemInput   `json:"lineItems"`
	Items         []usecase.LegacyItemInput `json:"items"`
	SuccessURL    string                    `json:"successUrl"`
	CancelURL     string                    `json:"cancelUrl"`
	CustomerEmail string                    `json:"customerEmail"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/create-checkout-session", h.create)
}

func (h *CheckoutHandler) create(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateCheckoutSession(c.Request().Context(), usecase.CheckoutInput{
		LineItems:     req.LineItems,
		Items:         req.Items,
		SessionID:     middleware.SessionID(c),
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
