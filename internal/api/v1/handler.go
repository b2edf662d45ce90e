package v1

import (
	"strconv"
	"time"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/api/contract"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/api/validator"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/constants"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/metrics"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger     *zap.Logger
	points     service.PointsService
	rewards    service.RewardService
	XValidator validator.IXValidator
	metrics    *metrics.Metrics
}

func NewHandler(logger *zap.Logger, points service.PointsService, rewards service.RewardService,
	XValidator validator.IXValidator, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:     logger,
		points:     points,
		rewards:    rewards,
		XValidator: XValidator,
		metrics:    metrics,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) GetPointBalance(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		c.Status(fiber.StatusUnprocessableEntity)
		return c.JSON(contract.Response{Code: constants.ErrCodeValidationFailed, Message: "invalid user id"})
	}

	balance, err := h.points.GetBalance(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Code: "success", Result: fiber.Map{
		"user_id": userID,
		"points":  balance,
	}})
}

func (h *Handler) GivePoints(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		c.Status(fiber.StatusUnprocessableEntity)
		return c.JSON(contract.Response{Code: constants.ErrCodeValidationFailed, Message: "invalid user id"})
	}

	var handlerRequest GivePointsRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Error("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	newBalance, err := h.points.GivePoints(c.UserContext(), userID, handlerRequest.Amount)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Code: "success", Result: fiber.Map{
		"user_id": userID,
		"points":  newBalance,
	}})
}

func (h *Handler) ListRewards(c *fiber.Ctx) error {
	start := time.Now()

	rewards, err := h.rewards.ListRewards(c.UserContext())
	if err != nil {
		return err
	}

	h.logger.Debug("Rewards listed",
		zap.Int("count", len(rewards)),
		zap.Duration("duration", time.Since(start)),
	)

	return c.JSON(contract.Response{Code: "success", Result: rewards})
}

func (h *Handler) CreateReward(c *fiber.Ctx) error {
	var handlerRequest CreateRewardRequest

	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Error("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	reward, err := h.rewards.AddReward(c.UserContext(), handlerRequest.Name, handlerRequest.PointCost)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Code: "success", Message: "reward created", Result: reward})
}

func (h *Handler) DeleteReward(c *fiber.Ctx) error {
	name := c.Params("name")

	if err := h.rewards.RemoveReward(c.UserContext(), name); err != nil {
		return err
	}

	return c.JSON(contract.Response{Code: "success", Message: "reward removed"})
}
