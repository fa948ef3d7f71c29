package handler

import (
	"context"
	"fmt"
	"strconv"

	"travel-booking-service/internal/module/booking/models/request"
	"travel-booking-service/internal/module/booking/usecases"
	"travel-booking-service/internal/pkg/errors"
	"travel-booking-service/internal/pkg/helpers"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type BookingHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
	Publish   message.Publisher
}

func (h *BookingHandler) CheckAvailability(ctx *fiber.Ctx) error {
	var req request.CheckAvailability
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.CheckAvailability(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error check availability: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success check availability")
}

func (h *BookingHandler) CreateHold(ctx *fiber.Ctx) error {
	var req request.CreateHold
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if sessionID, ok := ctx.Locals("session_id").(string); ok && req.SessionID == "" {
		req.SessionID = sessionID
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.CreateHold(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create hold: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success create hold")
}

func (h *BookingHandler) ListHolds(ctx *fiber.Ctx) error {
	sessionID := ctx.Query("session_id")
	if sessionID == "" {
		sessionID, _ = ctx.Locals("session_id").(string)
	}
	if sessionID == "" {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("missing session id"))
	}

	resp, err := h.Usecase.GetActiveHolds(ctx.UserContext(), sessionID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error list holds: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success list holds")
}

func (h *BookingHandler) ExtendHold(ctx *fiber.Ctx) error {
	sessionID, _ := ctx.Locals("session_id").(string)
	holdID := ctx.Query("hold_id")
	if holdID == "" {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("missing hold id"))
	}

	resp, err := h.Usecase.ExtendHold(ctx.UserContext(), sessionID, holdID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error extend hold: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success extend hold")
}

func (h *BookingHandler) CleanupHolds(ctx *fiber.Ctx) error {
	resp, err := h.Usecase.CleanupExpiredHolds(ctx.UserContext())
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error cleanup holds: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success cleanup holds")
}

func (h *BookingHandler) InitiatePaymentHotel(ctx *fiber.Ctx) error {
	return h.initiatePayment(ctx)
}

func (h *BookingHandler) InitiatePaymentService(ctx *fiber.Ctx) error {
	return h.initiatePayment(ctx)
}

func (h *BookingHandler) initiatePayment(ctx *fiber.Ctx) error {
	var req request.InitiatePayment
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if sessionID, ok := ctx.Locals("session_id").(string); ok && req.SessionID == "" {
		req.SessionID = sessionID
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.InitiatePayment(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error initiate payment: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// PhonePeCallback is the gateway's server-to-server entry point. A bad
// signature gets a 400; after that the gateway always gets its ack so it
// does not retry forever over application-level hiccups.
func (h *BookingHandler) PhonePeCallback(ctx *fiber.Ctx) error {
	var req request.PhonePeCallback
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse callback: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate callback: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	xVerify := ctx.Get("X-VERIFY")
	if err := h.Usecase.HandleCallback(ctx.UserContext(), req.Response, xVerify); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error handle callback: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *BookingHandler) CheckPaymentStatus(ctx *fiber.Ctx) error {
	mtid := ctx.Query("mtid")
	if mtid == "" {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("missing mtid"))
	}

	resp, err := h.Usecase.CheckPaymentStatus(ctx.UserContext(), mtid)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error check payment status: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(resp)
}

func (h *BookingHandler) BlockCapacity(ctx *fiber.Ctx) error {
	return h.adjustCapacity(ctx, false)
}

func (h *BookingHandler) UnblockCapacity(ctx *fiber.Ctx) error {
	return h.adjustCapacity(ctx, true)
}

func (h *BookingHandler) adjustCapacity(ctx *fiber.Ctx, unblock bool) error {
	var req request.BlockCapacity
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	var err error
	if unblock {
		err = h.Usecase.UnblockCapacity(ctx.UserContext(), &req)
	} else {
		err = h.Usecase.BlockCapacity(ctx.UserContext(), &req)
	}
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error adjust capacity: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, nil, "success adjust capacity")
}

func (h *BookingHandler) PotentialOverbooking(ctx *fiber.Ctx) error {
	resp, err := h.Usecase.PotentialOverbooking(ctx.UserContext())
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error potential overbooking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success potential overbooking")
}

func (h *BookingHandler) LowAvailability(ctx *fiber.Ctx) error {
	threshold := 0.2
	if raw := ctx.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return helpers.RespError(ctx, h.Log, errors.BadRequest("invalid threshold"))
		}
		threshold = parsed
	}

	resp, err := h.Usecase.LowAvailability(ctx.UserContext(), threshold)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error low availability: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success low availability")
}

// ConsumeReconcileQueue re-drives reconciliation for payments whose status
// check could not complete earlier.
func (h *BookingHandler) ConsumeReconcileQueue(msg *message.Message) error {
	msg.Ack()
	var req request.ReconcileTask
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error unmarshal message: %v", err))
		h.publishPoisoned(msg, err)
		return err
	}

	ctx := context.Background()

	if _, err := h.Usecase.ReconcilePayment(ctx, req.MerchantTransactionID); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error consume reconcile queue: %v", err))
		h.publishPoisoned(msg, err)
		return err
	}

	return nil
}

func (h *BookingHandler) publishPoisoned(msg *message.Message, cause error) {
	reqPoisoned := request.PoisonedQueue{
		TopicTarget: usecases.TopicReconcilePayment,
		ErrorMsg:    cause.Error(),
		Payload:     msg.Payload,
	}

	jsonPayload, _ := json.Marshal(reqPoisoned)

	if err := h.Publish.Publish("poisoned_queue", message.NewMessage(watermill.NewUUID(), jsonPayload)); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error publish to poison queue: %v", err))
	}
}

// HandleExpireHoldTask runs the per-hold delayed expiry scheduled at hold
// creation.
func (h *BookingHandler) HandleExpireHoldTask(ctx context.Context, t *asynq.Task) error {
	var req request.ExpireHoldTask
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal payload: %v", err))
		return err
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate payload: %v", err))
		return err
	}

	if err := h.Usecase.ExpireHold(ctx, req.HoldID); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error expire hold: %v", err))
		return err
	}

	return nil
}

// HandleSweepHoldsTask is the periodic bulk sweep.
func (h *BookingHandler) HandleSweepHoldsTask(ctx context.Context, t *asynq.Task) error {
	resp, err := h.Usecase.CleanupExpiredHolds(ctx)
	if err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error sweep holds: %v", err))
		return err
	}

	if resp.Expired > 0 {
		h.Log.Ctx(ctx).Info(fmt.Sprintf("swept %d expired holds", resp.Expired))
	}

	return nil
}
