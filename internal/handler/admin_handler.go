package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SuccessResponse は { message: string } の形。
type SuccessResponse struct {
	Message string `json:"message"`
}

// /admin 配下（ログイン・設定・商品・在庫・注文）をまとめる
type AdminHandler struct {
	authUC     *usecase.AdminAuthUsecase
	settingsUC *usecase.SettingsUsecase
	productUC  *usecase.ProductUsecase
	orderUC    *usecase.AdminOrderUsecase
}

// DI
func NewAdminHandler(
	authUC *usecase.AdminAuthUsecase,
	settingsUC *usecase.SettingsUsecase,
	productUC *usecase.ProductUsecase,
	orderUC *usecase.AdminOrderUsecase,
) *AdminHandler {
	return &AdminHandler{
		authUC:     authUC,
		settingsUC: settingsUC,
		productUC:  productUC,
		orderUC:    orderUC,
	}
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminProductRequest struct {
	Code     string                     `json:"code"`
	Name     string                     `json:"name"`
	Sizes    map[string]model.SizeLevel `json:"sizes"`
	IsActive bool                       `json:"is_active"`
}

type InventoryUpdateRequest struct {
	Stock    int64 `json:"stock"`
	Reserved int64 `json:"reserved"`
}

type SettingsUpdateRequest struct {
	Data    map[string]any `json:"data"`
	Version int64          `json:"version"`
}

// adminルートを登録（ログイン以外はJWTガード）
func (h *AdminHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/api/admin/login", h.login)

	admin := e.Group("/api/admin")
	admin.Use(middleware.AdminAuthJWT(cfg))

	admin.GET("/settings", h.getSettings)
	admin.PUT("/settings", h.putSettings)

	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:code", h.updateProduct)
	admin.DELETE("/products/:code", h.deleteProduct)
	admin.PUT("/inventory/:code/:size", h.updateInventory)

	admin.GET("/orders", h.listOrders)
	admin.GET("/orders/:id", h.orderDetail)
}

func (h *AdminHandler) login(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.authUC.Login(c.Request().Context(), usecase.AdminLoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) getSettings(c echo.Context) error {
	out, err := h.settingsUC.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) putSettings(c echo.Context) error {
	var req SettingsUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.settingsUC.Update(c.Request().Context(), usecase.UpdateSettingsInput{
		Data:    req.Data,
		Version: req.Version,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) createProduct(c echo.Context) error {
	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.productUC.AdminCreateProduct(c.Request().Context(), usecase.AdminProductInput{
		Code:     req.Code,
		Name:     req.Name,
		Sizes:    req.Sizes,
		IsActive: req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) updateProduct(c echo.Context) error {
	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.productUC.AdminUpdateProduct(c.Request().Context(), c.Param("code"), usecase.AdminProductInput{
		Name:     req.Name,
		Sizes:    req.Sizes,
		IsActive: req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminHandler) deleteProduct(c echo.Context) error {
	if err := h.productUC.AdminDeleteProduct(c.Request().Context(), c.Param("code")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminHandler) updateInventory(c echo.Context) error {
	var req InventoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.productUC.AdminSetSizeLevel(c.Request().Context(), c.Param("code"), c.Param("size"), model.SizeLevel{
		Stock:    req.Stock,
		Reserved: req.Reserved,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminHandler) listOrders(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.orderUC.List(c.Request().Context(), page, limit, c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) orderDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orderUC.Detail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
