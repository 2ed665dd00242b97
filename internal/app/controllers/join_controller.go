package controllers

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/services"
)

// JoinController serves the public invite landing page
type JoinController struct {
	groupService   services.GroupService
	deepLinkScheme string
}

// NewJoinController creates a new JoinController
func NewJoinController(groupService services.GroupService, deepLinkScheme string) *JoinController {
	return &JoinController{groupService: groupService, deepLinkScheme: deepLinkScheme}
}

const joinLandingHTML = `<!doctype html>
<html>
  <head><meta charset="utf-8"><title>Unirte al grupo</title></head>
  <body style="font-family: system-ui, sans-serif; padding: 24px">
    <h2>Unirte al grupo</h2>
    <p>Si tienes la app instalada, <a href="%s://join?code=%s">toca aqu&iacute; para abrirla</a>.</p>
    <p>Si a&uacute;n no la tienes, instala la app y usa este c&oacute;digo:</p>
    <pre style="font-size: 28px; font-weight: 700">%s</pre>
  </body>
</html>
`

// Landing renders the invite landing page with the app deep link
// @Summary Invite landing page
// @Description Public HTML page that deep links into the app with the invite code
// @Tags join
// @Produce html
// @Param code query string true "Invite code"
// @Success 200 {string} string "HTML page"
// @Failure 400 {object} dto.ErrorResponse "Missing code"
// @Router /join [get]
func (c *JoinController) Landing(ctx *gin.Context) {
	code := ctx.Query("code")
	if code == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invite code is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	escaped := html.EscapeString(code)
	page := fmt.Sprintf(joinLandingHTML, c.deepLinkScheme, escaped, escaped)
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
