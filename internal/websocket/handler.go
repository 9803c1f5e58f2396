package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"wallpaper-admin/internal/middleware"
	"wallpaper-admin/pkg/response"
)

// Handler 处理管理端事件流的 WebSocket 连接
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler 创建 WebSocket Handler
// 参数:
//   - hub: 事件中心
//   - allowOrigins: 允许的来源，为空时接受任意来源（与 CORS 配置一致）
func NewHandler(hub *Hub, allowOrigins []string) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowOrigins),
		},
	}
}

// checkOrigin 按允许列表检查来源，没有 Origin 头的请求（非浏览器客户端）总是放行
func checkOrigin(allowOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowOrigins) == 0 {
			return true
		}
		for _, o := range allowOrigins {
			if o == origin {
				return true
			}
		}
		return false
	}
}

// ServeEvents 处理管理端事件流连接
// 路由: GET /api/v1/admin/events（需经过认证中间件）
func (h *Handler) ServeEvents(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "No access token found", nil)
		return
	}

	// 升级失败时 upgrader 已写入错误响应
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.log.WithError(err).Warn("failed to upgrade connection")
		return
	}

	client := NewClient(h.hub, conn, admin.Profile.ID)
	h.hub.Register(client)
	client.SendMessage(NewMessage(TypeConnected, &ConnectedPayload{
		AdminID: admin.Profile.ID,
		Clients: h.hub.ClientCount(),
	}))

	go client.WritePump()
	go client.ReadPump()
}
