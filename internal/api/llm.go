package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/pageza/zenkitchen/backend/internal/llm"
	"github.com/pageza/zenkitchen/backend/internal/middleware"
	"github.com/pageza/zenkitchen/backend/internal/models"
	"github.com/pageza/zenkitchen/backend/internal/service"
	"github.com/pageza/zenkitchen/backend/internal/types"
)

const (
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
	wsWriteWait  = 10 * time.Second
	wsReadLimit  = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The session token authorizes the connection.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type AIHandler struct {
	ai        *service.AIService
	inventory *service.InventoryService
	recipes   *service.RecipeService
}

func NewAIHandler(ai *service.AIService, inventory *service.InventoryService, recipes *service.RecipeService) *AIHandler {
	return &AIHandler{ai: ai, inventory: inventory, recipes: recipes}
}

func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recognize", h.Recognize)
	router.GET("/drafts/:id", h.GetDrafts)
	router.POST("/drafts/:id/confirm", h.ConfirmDrafts)
	router.DELETE("/drafts/:id", h.DiscardDrafts)
	router.POST("/chat", h.Chat)
	router.GET("/chat/ws", h.ChatSocket)
}

// Recognize accepts a multipart "image" and an optional "hint" field and
// returns a pending draft batch.
func (h *AIHandler) Recognize(c *gin.Context) {
	data, header, err := readFormFile(c, "image")
	if err != nil {
		badRequest(c, err)
		return
	}
	hint := c.DefaultPostForm("hint", service.HintFridge)

	image := llm.Image{Data: data, MIMEType: contentType(header, data)}
	batch, err := h.ai.RecognizeBatch(c.Request.Context(), middleware.UserID(c), image, hint)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (h *AIHandler) GetDrafts(c *gin.Context) {
	batch, err := h.ai.Draft(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// ConfirmDrafts imports a draft batch. The body may carry the drafts as
// edited by the user; an empty body imports them unchanged.
func (h *AIHandler) ConfirmDrafts(c *gin.Context) {
	var req struct {
		Drafts []models.ItemDraft `json:"drafts"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	owner := middleware.UserID(c)
	items, err := h.ai.ConfirmDrafts(c.Request.Context(), owner, c.Param("id"), req.Drafts, h.inventory)
	if err != nil {
		if len(items) > 0 {
			log.Printf("[AIHandler] Partial import for %s: %d items added before: %v", owner, len(items), err)
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": items})
}

func (h *AIHandler) DiscardDrafts(c *gin.Context) {
	if err := h.ai.DiscardDrafts(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Chat answers one turn. The client sends the history it holds.
func (h *AIHandler) Chat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(c, errors.New("message must not be empty"))
		return
	}

	reply, err := h.reply(c.Request.Context(), middleware.UserID(c), req.History, req.Message)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.ChatResponse{Reply: reply, Timestamp: reply.Timestamp})
}

// reply runs one conversation turn against the session's current data.
func (h *AIHandler) reply(ctx context.Context, owner string, history []models.ChatMessage, message string) (models.ChatMessage, error) {
	items, err := h.inventory.Items(ctx, owner)
	if err != nil {
		return models.ChatMessage{}, err
	}
	recipes, err := h.recipes.List(ctx, owner, "")
	if err != nil {
		return models.ChatMessage{}, err
	}
	text := h.ai.Converse(ctx, history, message, items, recipes)
	return models.ChatMessage{Role: models.RoleModel, Text: text, Timestamp: time.Now()}, nil
}

// chatFrame is one websocket message in either direction.
type chatFrame struct {
	Message string              `json:"message,omitempty"`
	Reply   *models.ChatMessage `json:"reply,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// ChatSocket keeps the conversation on the server for the lifetime of the
// connection. Each text frame {"message": "..."} is answered with one
// {"reply": {...}} frame.
func (h *AIHandler) ChatSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[AIHandler] Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	owner := middleware.UserID(c)
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	var writeMu sync.Mutex
	write := func(messageType int, v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if messageType == websocket.PingMessage {
			return conn.WriteMessage(websocket.PingMessage, nil)
		}
		return conn.WriteJSON(v)
	}

	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := write(websocket.PingMessage, nil); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	var history []models.ChatMessage
	for {
		var in chatFrame
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[AIHandler] WebSocket error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsPongWait))

		message := strings.TrimSpace(in.Message)
		if message == "" {
			if err := write(websocket.TextMessage, chatFrame{Error: "message must not be empty"}); err != nil {
				return
			}
			continue
		}

		reply, err := h.reply(ctx, owner, history, message)
		if err != nil {
			if err := write(websocket.TextMessage, chatFrame{Error: err.Error()}); err != nil {
				return
			}
			continue
		}
		history = append(history,
			models.ChatMessage{Role: models.RoleUser, Text: message, Timestamp: time.Now()},
			reply,
		)
		if err := write(websocket.TextMessage, chatFrame{Reply: &reply}); err != nil {
			return
		}
	}
}
