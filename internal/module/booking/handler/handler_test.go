package handler_test

import (
	"context"
	"testing"

	"travel-booking-service/internal/module/booking/handler"
	"travel-booking-service/internal/module/booking/mocks"
	"travel-booking-service/internal/module/booking/models/entity"
	"travel-booking-service/internal/module/booking/models/request"
	"travel-booking-service/internal/module/booking/models/response"
	"travel-booking-service/internal/pkg/errors"
	log_internal "travel-booking-service/internal/pkg/log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/valyala/fasthttp"
)

var (
	h             *handler.BookingHandler
	ucm           *mocks.Usecase
	app           *fiber.App
	validatorTest *validator.Validate
	p             message.Publisher
)

type mockPublisher struct{}

// Close implements message.Publisher.
func (m *mockPublisher) Close() error {
	return nil
}

// Publish implements message.Publisher.
func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	return nil
}

func NewMockPublisher() message.Publisher {
	return &mockPublisher{}
}

func setup() {
	ucm = &mocks.Usecase{}
	logMock := log_internal.Setup()
	validatorTest = validator.New()
	p = NewMockPublisher()
	h = &handler.BookingHandler{
		Log:       logMock,
		Validator: validatorTest,
		Usecase:   ucm,
		Publish:   p,
	}
	app = fiber.New()
}

func teardown() {
	ucm = nil
	validatorTest = nil
	p = nil
	h = nil
	app = nil
}

func TestCheckAvailability(t *testing.T) {
	setup()
	defer teardown()

	t.Run("success", func(t *testing.T) {
		payload := request.CheckAvailability{
			Type:          entity.HoldKindHotelRoom,
			RoomTypeID:    10,
			StartDate:     "2026-09-01",
			EndDate:       "2026-09-02",
			RequiredRooms: 1,
		}
		jsonData, _ := json.Marshal(payload)

		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Request().SetRequestURI("/api/v1/bookings/check-availability")
		ctx.Request().Header.SetContentType("application/json")
		ctx.Request().Header.SetMethod("POST")
		ctx.Request().SetBody(jsonData)

		respMock := response.Availability{
			Available: true,
			Data: []response.PerDayAvailability{
				{Date: "2026-09-01", TotalCapacity: 5, Booked: 4, Available: 1, Sufficient: true},
				{Date: "2026-09-02", TotalCapacity: 5, Booked: 1, Available: 4, Sufficient: true},
			},
		}
		ucm.On("CheckAvailability", mock.Anything, &payload).Return(respMock, nil)

		err := h.CheckAvailability(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})

	t.Run("invalid payload", func(t *testing.T) {
		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Request().Header.SetContentType("application/json")
		ctx.Request().Header.SetMethod("POST")
		ctx.Request().SetBody([]byte(`{"type":"hotel_room"}`))

		err := h.CheckAvailability(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, ctx.Response().StatusCode())
	})
}

func TestCreateHold(t *testing.T) {
	setup()
	defer teardown()

	t.Run("session taken from middleware locals", func(t *testing.T) {
		payload := request.CreateHold{
			Kind:       entity.HoldKindHotelRoom,
			RoomTypeID: 10,
			Date:       "2026-09-01",
			Quantity:   1,
		}
		jsonData, _ := json.Marshal(payload)

		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Request().Header.SetContentType("application/json")
		ctx.Request().Header.SetMethod("POST")
		ctx.Request().SetBody(jsonData)
		ctx.Locals("session_id", "sess-1")

		expected := payload
		expected.SessionID = "sess-1"
		respMock := response.HoldCreated{HoldID: "8b9a2a4e-0000-0000-0000-000000000000", ExpiresAt: "2026-09-01T10:15:00Z"}
		ucm.On("CreateHold", mock.Anything, &expected).Return(respMock, nil)

		err := h.CreateHold(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
		ucm.AssertCalled(t, "CreateHold", mock.Anything, &expected)
	})
}

func TestExtendHold(t *testing.T) {
	setup()
	defer teardown()

	t.Run("missing hold id", func(t *testing.T) {
		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Request().SetRequestURI("/api/v1/bookings/extend-hold")

		err := h.ExtendHold(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, ctx.Response().StatusCode())
	})

	t.Run("success", func(t *testing.T) {
		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Request().SetRequestURI("/api/v1/bookings/extend-hold?hold_id=h1")
		ctx.Locals("session_id", "sess-1")

		respMock := response.HoldCreated{HoldID: "h1", ExpiresAt: "2026-09-01T10:30:00Z"}
		ucm.On("ExtendHold", mock.Anything, "sess-1", "h1").Return(respMock, nil)

		err := h.ExtendHold(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})
}

func TestPhonePeCallback(t *testing.T) {
	setup()
	defer teardown()

	t.Run("bad signature gets a 400", func(t *testing.T) {
		payload := request.PhonePeCallback{Response: "eyJjb2RlIjoiUEFZTUVOVF9TVUNDRVNTIn0="}
		jsonData, _ := json.Marshal(payload)

		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Request().Header.SetContentType("application/json")
		ctx.Request().Header.SetMethod("POST")
		ctx.Request().Header.Set("X-VERIFY", "bogus###1")
		ctx.Request().SetBody(jsonData)

		ucm.On("HandleCallback", mock.Anything, payload.Response, "bogus###1").Return(errors.BadRequest("invalid callback signature"))

		err := h.PhonePeCallback(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, ctx.Response().StatusCode())
	})

	t.Run("valid callback is acknowledged", func(t *testing.T) {
		payload := request.PhonePeCallback{Response: "eyJjb2RlIjoiUEFZTUVOVF9TVUNDRVNTIn0="}
		jsonData, _ := json.Marshal(payload)

		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Request().Header.SetContentType("application/json")
		ctx.Request().Header.SetMethod("POST")
		ctx.Request().Header.Set("X-VERIFY", "good###1")
		ctx.Request().SetBody(jsonData)

		ucm.On("HandleCallback", mock.Anything, payload.Response, "good###1").Return(nil)

		err := h.PhonePeCallback(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})
}

func TestCheckPaymentStatus(t *testing.T) {
	setup()
	defer teardown()

	t.Run("missing mtid", func(t *testing.T) {
		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Request().SetRequestURI("/api/v1/bookings/check-payment-status")

		err := h.CheckPaymentStatus(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, ctx.Response().StatusCode())
	})

	t.Run("success", func(t *testing.T) {
		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Request().SetRequestURI("/api/v1/bookings/check-payment-status?mtid=MT1")

		respMock := response.PaymentStatus{
			BookingStatus:        entity.BookingStatusConfirmed,
			PaymentStatus:        entity.PaymentStatusPaid,
			PhonePePaymentStatus: entity.GatewayCodeSuccess,
		}
		ucm.On("CheckPaymentStatus", mock.Anything, "MT1").Return(respMock, nil)

		err := h.CheckPaymentStatus(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())

		var got response.PaymentStatus
		assert.NoError(t, json.Unmarshal(ctx.Response().Body(), &got))
		assert.Equal(t, respMock, got)
	})
}

func TestBlockCapacity(t *testing.T) {
	setup()
	defer teardown()

	t.Run("success", func(t *testing.T) {
		payload := request.BlockCapacity{
			ResourceType: entity.ResourceTypeRoomType,
			ResourceID:   10,
			StartDate:    "2026-09-01",
			EndDate:      "2026-09-03",
			Quantity:     2,
			Reason:       "maintenance",
		}
		jsonData, _ := json.Marshal(payload)

		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Request().Header.SetContentType("application/json")
		ctx.Request().Header.SetMethod("POST")
		ctx.Request().SetBody(jsonData)

		ucm.On("BlockCapacity", mock.Anything, &payload).Return(nil)

		err := h.BlockCapacity(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})
}

func TestLowAvailability(t *testing.T) {
	setup()
	defer teardown()

	t.Run("default threshold", func(t *testing.T) {
		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Request().SetRequestURI("/api/private/inventory/low-availability")

		ucm.On("LowAvailability", mock.Anything, 0.2).Return([]response.LowAvailabilityDay{}, nil)

		err := h.LowAvailability(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})

	t.Run("invalid threshold", func(t *testing.T) {
		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		defer app.ReleaseCtx(ctx)
		ctx.Request().SetRequestURI("/api/private/inventory/low-availability?threshold=abc")

		err := h.LowAvailability(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, ctx.Response().StatusCode())
	})
}

func TestConsumeReconcileQueue(t *testing.T) {
	setup()
	defer teardown()

	t.Run("success", func(t *testing.T) {
		payload := request.ReconcileTask{MerchantTransactionID: "MT1"}
		jsonData, _ := json.Marshal(payload)
		msg := message.NewMessage("123", jsonData)

		respMock := response.PaymentStatus{
			BookingStatus:        entity.BookingStatusConfirmed,
			PaymentStatus:        entity.PaymentStatusPaid,
			PhonePePaymentStatus: entity.GatewayCodeSuccess,
		}
		ucm.On("ReconcilePayment", mock.Anything, "MT1").Return(respMock, nil)

		err := h.ConsumeReconcileQueue(msg)
		assert.NoError(t, err)
	})

	t.Run("malformed payload goes to the poison queue", func(t *testing.T) {
		msg := message.NewMessage("124", []byte("not-json"))

		err := h.ConsumeReconcileQueue(msg)
		assert.Error(t, err)
	})
}

func TestHandleExpireHoldTask(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		payload, _ := json.Marshal(request.ExpireHoldTask{HoldID: "h1"})
		task := asynq.NewTask("expire_hold", payload)

		ucm.On("ExpireHold", ctx, "h1").Return(nil)

		err := h.HandleExpireHoldTask(ctx, task)
		assert.NoError(t, err)
	})

	t.Run("missing hold id", func(t *testing.T) {
		payload, _ := json.Marshal(request.ExpireHoldTask{})
		task := asynq.NewTask("expire_hold", payload)

		err := h.HandleExpireHoldTask(ctx, task)
		assert.Error(t, err)
	})
}

func TestHandleSweepHoldsTask(t *testing.T) {
	setup()
	defer teardown()

	t.Run("success", func(t *testing.T) {
		ctx := context.Background()
		ucm.On("CleanupExpiredHolds", ctx).Return(response.CleanupResult{Expired: 2}, nil)

		err := h.HandleSweepHoldsTask(ctx, asynq.NewTask("sweep_holds", nil))
		assert.NoError(t, err)
	})
}
