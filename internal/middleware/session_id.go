package middleware

import "github.com/labstack/echo/v4"

// カートの持ち主を識別するセッションID。
// X-Session-Id ヘッダ優先、無ければ session_id クエリ。
func SessionID(c echo.Context) string {
	if v := c.Request().Header.Get("X-Session-Id"); v != "" {
		return v
	}
	return c.QueryParam("session_id")
}
