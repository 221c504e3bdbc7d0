package controller

import (
	"crypto/subtle"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/dto"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/serverutils"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITelegramController interface {
	RegisterRoutes(r fiber.Router)
	Webhook(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type telegramController struct {
	telegramService service.ITelegramService
	webhookSecret   string
}

func NewTelegramController(telegramService service.ITelegramService, webhookSecret string) ITelegramController {
	return &telegramController{
		telegramService: telegramService,
		webhookSecret:   webhookSecret,
	}
}

func (c *telegramController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/telegram/v1")
	h.Post("webhook", c.Webhook)
	h.Get("history", serverutils.JwtMiddleware, c.History)
}

// Webhook is called by Telegram, not by our clients, so it authenticates
// with the secret token set when the webhook was registered.
func (c *telegramController) Webhook(ctx *fiber.Ctx) error {
	got := ctx.Get("X-Telegram-Bot-Api-Secret-Token")
	if c.webhookSecret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(c.webhookSecret)) != 1 {
		return serverutils.NewForbiddenError("Invalid webhook secret")
	}

	var update dto.TelegramUpdate
	if err := ctx.BodyParser(&update); err != nil {
		return err
	}

	if err := c.telegramService.HandleUpdate(ctx.Context(), &update); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", nil))
}

func (c *telegramController) History(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.telegramService.History(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list telegram history", res))
}
