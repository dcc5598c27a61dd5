package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"yatube/models"
	"yatube/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type WebSocketHandler struct {
	hubService   *services.HubService
	groupService *services.GroupService
	upgrader     websocket.Upgrader
}

func NewWebSocketHandler(db *gorm.DB, hubService *services.HubService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hubService:   hubService,
		groupService: services.NewGroupService(db),
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
	}
}

// originChecker allows same-host requests plus the configured CORS origins.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		return false
	}
}

// HandleFeed upgrades to a websocket that streams newly created posts.
// ?group=<slug> narrows the stream to one group.
func (wh *WebSocketHandler) HandleFeed(c *gin.Context) {
	group := c.Query("group")
	if group != "" {
		if _, err := wh.groupService.GetBySlug(group); err != nil {
			if errors.Is(err, services.ErrGroupNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load group"})
			return
		}
	}

	conn, err := wh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := models.NewClient(wh.hubService.GetHub(), conn, group)

	client.Hub.Register <- client
	go wh.writePump(client)
	go wh.readPump(client)
}

// readPump only drains control traffic; subscribers never publish.
func (wh *WebSocketHandler) readPump(client *models.Client) {
	defer func() {
		client.Hub.Unregister <- client
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close error for client %s: %v", client.ID, err)
			}
			return
		}
	}
}

func (wh *WebSocketHandler) writePump(client *models.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Error writing to client %s: %v", client.ID, err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Error sending ping to client %s: %v", client.ID, err)
				return
			}
		}
	}
}
