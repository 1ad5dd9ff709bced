package cart

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"saunahub/pkg/models"
)

const sessionCookie = "saunahub_session"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // same-origin enforcement happens at the CORS layer
	},
}

// Handler exposes the cart over HTTP: a single action-dispatch endpoint for
// mutations and reads, plus a WebSocket feed for multi-tab updates.
type Handler struct {
	Manager *Manager
	Hub     *Hub
	Log     *zap.Logger
}

func NewHandler(m *Manager, hub *Hub, log *zap.Logger) *Handler {
	return &Handler{Manager: m, Hub: hub, Log: log}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/cart", h.handleAction)
	r.GET("/api/cart", h.handleGet)
	r.GET("/api/cart/ws", h.handleWS)
}

type actionRequest struct {
	Action   string          `json:"action" binding:"required"`
	Variant  *models.Variant `json:"variant"`
	Product  *models.Product `json:"product"`
	LineID   string          `json:"lineId"`
	Quantity int             `json:"quantity"`
}

type cartResponse struct {
	Cart          *models.Cart `json:"cart"`
	TotalQuantity int          `json:"totalQuantity"`
}

// sessionID reads the session cookie, minting one on first contact. The
// cookie is the only client-side state; everything else lives server-side.
func (h *Handler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(sessionCookie, id, 365*24*3600, "/", "", false, true)
	return id
}

func (h *Handler) respond(c *gin.Context, s *Synchronizer) {
	cart := s.Cart()
	c.JSON(http.StatusOK, cartResponse{Cart: cart, TotalQuantity: cart.TotalQuantity()})
}

func (h *Handler) handleGet(c *gin.Context) {
	s := h.Manager.Synchronizer(c.Request.Context(), h.sessionID(c))
	h.respond(c, s)
}

func (h *Handler) handleAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	s := h.Manager.Synchronizer(ctx, h.sessionID(c))

	var err error
	switch req.Action {
	case "get":
		// read only, fall through to respond
	case "create":
		_, err = s.EnsureCart(ctx)
	case "add":
		if req.Variant == nil || req.Product == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "add requires variant and product"})
			return
		}
		err = s.AddItem(ctx, *req.Variant, *req.Product, req.Quantity)
	case "update":
		if req.LineID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "update requires lineId"})
			return
		}
		err = s.UpdateItem(ctx, req.LineID, req.Quantity)
	case "remove":
		if req.LineID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "remove requires lineId"})
			return
		}
		err = s.RemoveItem(ctx, req.LineID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
		return
	}

	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	h.respond(c, s)
}

func (h *Handler) handleWS(c *gin.Context) {
	sessionID := h.sessionID(c)
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.Hub.Add(sessionID, ws)
	h.Log.Debug("cart ws connected", zap.String("session", sessionID))

	// Push the current state so a new tab renders without a round trip.
	s := h.Manager.Synchronizer(c.Request.Context(), sessionID)
	h.Hub.BroadcastCart(sessionID, s.Cart())

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	h.Hub.Remove(sessionID, ws)
	h.Log.Debug("cart ws disconnected", zap.String("session", sessionID))
}
