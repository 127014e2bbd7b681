package handler

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"football-bot/pkg/logger"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const updateTimeout = 15 * time.Second

// SecretTokenHeader Telegram 呼叫 webhook 時用來帶 secret_token 的 header
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateHandler 由 bot.Bot 實作
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

type WebhookHandler struct {
	bot    UpdateHandler
	path   string
	secret string
}

// secret 為空時所有請求都會被拒絕
func NewWebhookHandler(bot UpdateHandler, path, secret string) *WebhookHandler {
	if path == "" {
		path = "/webhook"
	}
	return &WebhookHandler{bot: bot, path: path, secret: secret}
}

func (h *WebhookHandler) RegisterRoutes(r gin.IRouter) {
	r.POST(h.path, h.Receive)
}

// Receive 處理失敗仍回 200，避免 Telegram 重送同一則 update
func (h *WebhookHandler) Receive(c *gin.Context) {
	if !h.authorized(c.GetHeader(SecretTokenHeader)) {
		logger.WithComponent("handler").Warn("webhook secret mismatch", zap.String("remote", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var update tgbotapi.Update
	if err := BindJson(c, &update); err != nil {
		logger.WithComponent("handler").Warn("invalid update payload", zap.Error(err))
		return
	}

	// client 斷線不中斷處理
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), updateTimeout)
	defer cancel()

	_ = h.bot.HandleUpdate(ctx, update)
	c.Status(http.StatusOK)
}

func (h *WebhookHandler) authorized(token string) bool {
	if h.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) == 1
}
