package usecases_test

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"travel-booking-service/config"
	"travel-booking-service/internal/module/booking/mocks"
	"travel-booking-service/internal/module/booking/models/entity"
	"travel-booking-service/internal/module/booking/models/request"
	"travel-booking-service/internal/module/booking/usecases"
	log_internal "travel-booking-service/internal/pkg/log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

var (
	uc       usecases.Usecase
	repoMock *mocks.Repositories
	logMock  *otelzap.Logger
	p        message.Publisher

	cfgPhonePe = config.PhonePeConfig{
		MerchantID: "MERCHANTTEST",
		SaltKey:    "test-salt-key",
		SaltIndex:  "1",
	}
	cfgHold = config.HoldConfig{TTLMinutes: 15}
)

type mockPublisher struct {
	published map[string]int
}

// Close implements message.Publisher.
func (m *mockPublisher) Close() error {
	return nil
}

// Publish implements message.Publisher.
func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	if m.published == nil {
		m.published = map[string]int{}
	}
	m.published[topic] += len(messages)
	return nil
}

func setup() *mockPublisher {
	repoMock = new(mocks.Repositories)
	pub := &mockPublisher{}
	p = pub
	logMock = log_internal.Setup()
	uc = usecases.New(repoMock, logMock, p, nil, nil, &cfgPhonePe, &cfgHold)
	return pub
}

func teardown() {
	repoMock = nil
	uc = nil
}

func TestCheckAvailability(t *testing.T) {
	setup()
	defer teardown()

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("sufficient for one room", func(t *testing.T) {
		ctx := context.Background()
		payloadMock := &request.CheckAvailability{
			Type:          entity.HoldKindHotelRoom,
			RoomTypeID:    10,
			StartDate:     "2026-09-01",
			EndDate:       "2026-09-01",
			RequiredRooms: 1,
		}
		daysMock := []entity.InventoryDay{
			{
				ResourceType:  entity.ResourceTypeRoomType,
				ResourceID:    10,
				Date:          date,
				TotalCapacity: 5,
				Booked:        4,
				Blocked:       0,
			},
		}
		repoMock.On("GetInventoryDays", ctx, entity.ResourceTypeRoomType, int64(10), mock.Anything, mock.Anything).Return(daysMock, nil)

		resp, err := uc.CheckAvailability(ctx, payloadMock)
		assert.NoError(t, err)
		assert.True(t, resp.Available)
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, 1, resp.Data[0].Available)
		assert.True(t, resp.Data[0].Sufficient)
	})

	t.Run("insufficient for two rooms", func(t *testing.T) {
		ctx := context.Background()
		payloadMock := &request.CheckAvailability{
			Type:          entity.HoldKindHotelRoom,
			RoomTypeID:    10,
			StartDate:     "2026-09-01",
			EndDate:       "2026-09-01",
			RequiredRooms: 2,
		}

		resp, err := uc.CheckAvailability(ctx, payloadMock)
		assert.NoError(t, err)
		assert.False(t, resp.Available)
		assert.False(t, resp.Data[0].Sufficient)
	})

	t.Run("missing day reads as zero capacity", func(t *testing.T) {
		ctx := context.Background()
		payloadMock := &request.CheckAvailability{
			Type:             entity.HoldKindService,
			ServiceID:        7,
			StartDate:        "2026-09-01",
			EndDate:          "2026-09-02",
			RequiredCapacity: 1,
		}
		repoMock.On("GetInventoryDays", ctx, entity.ResourceTypeService, int64(7), mock.Anything, mock.Anything).Return([]entity.InventoryDay{}, nil)

		resp, err := uc.CheckAvailability(ctx, payloadMock)
		assert.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Len(t, resp.Data, 2)
		assert.Equal(t, 0, resp.Data[0].TotalCapacity)
	})

	t.Run("end before start", func(t *testing.T) {
		ctx := context.Background()
		payloadMock := &request.CheckAvailability{
			Type:       entity.HoldKindHotelRoom,
			RoomTypeID: 10,
			StartDate:  "2026-09-02",
			EndDate:    "2026-09-01",
		}

		_, err := uc.CheckAvailability(ctx, payloadMock)
		assert.Error(t, err)
	})
}

func TestCreateHold(t *testing.T) {
	setup()
	defer teardown()

	t.Run("replaces prior session hold", func(t *testing.T) {
		ctx := context.Background()
		payloadMock := &request.CreateHold{
			SessionID:   "sess-1",
			Kind:        entity.HoldKindHotelRoom,
			RoomTypeID:  10,
			Date:        "2026-09-01",
			Quantity:    1,
			LockedPrice: 2500,
		}
		repoMock.On("CancelActiveHoldsBySession", ctx, "sess-1").Return(int64(1), nil)
		repoMock.On("DropCachedActiveHold", ctx, "sess-1").Return(nil)
		repoMock.On("InsertHold", ctx, mock.AnythingOfType("entity.Hold")).Return(nil)
		repoMock.On("CacheActiveHold", ctx, "sess-1", mock.Anything, 15*time.Minute).Return(nil)

		resp, err := uc.CreateHold(ctx, payloadMock)
		assert.NoError(t, err)
		assert.NotEmpty(t, resp.HoldID)
		assert.NotEmpty(t, resp.ExpiresAt)
		repoMock.AssertCalled(t, "CancelActiveHoldsBySession", ctx, "sess-1")

		inserted := repoMock.Calls[2].Arguments.Get(1).(entity.Hold)
		assert.Equal(t, entity.HoldStatusActive, inserted.Status)
		assert.Equal(t, int64(10), inserted.RoomTypeID.Int64)
		assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), inserted.ExpiresAt, 5*time.Second)
	})

	t.Run("invalid date", func(t *testing.T) {
		ctx := context.Background()
		payloadMock := &request.CreateHold{
			SessionID: "sess-1",
			Kind:      entity.HoldKindHotelRoom,
			Date:      "not-a-date",
			Quantity:  1,
		}

		_, err := uc.CreateHold(ctx, payloadMock)
		assert.Error(t, err)
	})

	t.Run("client ttl cannot exceed the configured maximum", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		payloadMock := &request.CreateHold{
			SessionID:   "sess-1",
			Kind:        entity.HoldKindHotelRoom,
			RoomTypeID:  10,
			Date:        "2026-09-01",
			Quantity:    1,
			LockedPrice: 2500,
			TTLMinutes:  1440,
		}
		repoMock.On("CancelActiveHoldsBySession", ctx, "sess-1").Return(int64(0), nil)
		repoMock.On("DropCachedActiveHold", ctx, "sess-1").Return(nil)
		repoMock.On("InsertHold", ctx, mock.AnythingOfType("entity.Hold")).Return(nil)
		repoMock.On("CacheActiveHold", ctx, "sess-1", mock.Anything, 15*time.Minute).Return(nil)

		_, err := uc.CreateHold(ctx, payloadMock)
		assert.NoError(t, err)

		inserted := repoMock.Calls[2].Arguments.Get(1).(entity.Hold)
		assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), inserted.ExpiresAt, 5*time.Second)
	})
}

func TestExtendHold(t *testing.T) {
	setup()
	defer teardown()

	holdID := uuid.New()
	holdMock := entity.Hold{
		ID:        holdID,
		SessionID: "sess-1",
		Kind:      entity.HoldKindHotelRoom,
		Status:    entity.HoldStatusActive,
		ExpiresAt: time.Now().UTC().Add(5 * time.Minute),
	}

	t.Run("success", func(t *testing.T) {
		ctx := context.Background()
		repoMock.On("FindHoldByID", ctx, holdID.String()).Return(holdMock, nil)
		repoMock.On("ExtendHold", ctx, holdID.String(), mock.Anything).Return(nil)
		repoMock.On("CacheActiveHold", ctx, "sess-1", holdID.String(), 15*time.Minute).Return(nil)

		resp, err := uc.ExtendHold(ctx, "sess-1", holdID.String())
		assert.NoError(t, err)
		assert.Equal(t, holdID.String(), resp.HoldID)
	})

	t.Run("session mismatch reads as not found", func(t *testing.T) {
		ctx := context.Background()

		_, err := uc.ExtendHold(ctx, "someone-else", holdID.String())
		assert.Error(t, err)
	})
}

func TestExpireHold(t *testing.T) {
	t.Run("overdue active hold is expired", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		holdID := uuid.New()
		holdMock := entity.Hold{
			ID:        holdID,
			SessionID: "sess-1",
			Status:    entity.HoldStatusActive,
			ExpiresAt: time.Now().UTC().Add(-time.Minute),
		}
		repoMock.On("FindHoldByID", ctx, holdID.String()).Return(holdMock, nil)
		repoMock.On("UpdateHoldStatus", ctx, holdID.String(), entity.HoldStatusExpired).Return(nil)
		repoMock.On("DropCachedActiveHold", ctx, "sess-1").Return(nil)

		err := uc.ExpireHold(ctx, holdID.String())
		assert.NoError(t, err)
		repoMock.AssertCalled(t, "UpdateHoldStatus", ctx, holdID.String(), entity.HoldStatusExpired)
	})

	t.Run("extended hold is left alone", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		holdID := uuid.New()
		holdMock := entity.Hold{
			ID:        holdID,
			SessionID: "sess-1",
			Status:    entity.HoldStatusActive,
			ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
		}
		repoMock.On("FindHoldByID", ctx, holdID.String()).Return(holdMock, nil)

		err := uc.ExpireHold(ctx, holdID.String())
		assert.NoError(t, err)
		repoMock.AssertNotCalled(t, "UpdateHoldStatus", ctx, holdID.String(), entity.HoldStatusExpired)
	})
}

func TestCleanupExpiredHolds(t *testing.T) {
	setup()
	defer teardown()

	t.Run("success", func(t *testing.T) {
		ctx := context.Background()
		repoMock.On("ExpireOverdueHolds", ctx, mock.Anything).Return(int64(3), nil)

		resp, err := uc.CleanupExpiredHolds(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), resp.Expired)
	})
}

func TestInitiatePayment(t *testing.T) {
	guest := request.GuestDetails{Name: "Asha Rao", Email: "asha@test.com", Phone: "9876543210"}

	t.Run("hold flow success", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		holdID := uuid.New()
		holdMock := entity.Hold{
			ID:        holdID,
			SessionID: "sess-1",
			Kind:      entity.HoldKindHotelRoom,
			Status:    entity.HoldStatusActive,
			ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
		}
		payloadMock := &request.InitiatePayment{
			SessionID:    "sess-1",
			HoldID:       holdID.String(),
			Amount:       2500.50,
			GuestDetails: guest,
			MobileNumber: "9876543210",
		}
		repoMock.On("FindHoldByID", ctx, holdID.String()).Return(holdMock, nil)
		repoMock.On("InsertPaymentAttempt", ctx, mock.AnythingOfType("entity.PaymentAttempt")).Return(nil)
		repoMock.On("PayGateway", ctx, mock.Anything, int64(250050), "9876543210").Return("https://phonepe.test/redirect", nil)

		resp, err := uc.InitiatePayment(ctx, payloadMock)
		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "https://phonepe.test/redirect", resp.RedirectURL)
		assert.Contains(t, resp.MerchantTransactionID, "MT")
	})

	t.Run("hold owned by another session", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		holdID := uuid.New()
		holdMock := entity.Hold{
			ID:        holdID,
			SessionID: "sess-1",
			Status:    entity.HoldStatusActive,
			ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
		}
		repoMock.On("FindHoldByID", ctx, holdID.String()).Return(holdMock, nil)

		_, err := uc.InitiatePayment(ctx, &request.InitiatePayment{
			SessionID:    "sess-2",
			HoldID:       holdID.String(),
			Amount:       100,
			GuestDetails: guest,
		})
		assert.Error(t, err)
	})

	t.Run("expired hold is rejected", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		holdID := uuid.New()
		holdMock := entity.Hold{
			ID:        holdID,
			SessionID: "sess-1",
			Status:    entity.HoldStatusActive,
			ExpiresAt: time.Now().UTC().Add(-time.Minute),
		}
		repoMock.On("FindHoldByID", ctx, holdID.String()).Return(holdMock, nil)

		_, err := uc.InitiatePayment(ctx, &request.InitiatePayment{
			SessionID:    "sess-1",
			HoldID:       holdID.String(),
			Amount:       100,
			GuestDetails: guest,
		})
		assert.Error(t, err)
	})

	t.Run("gateway failure abandons the attempt", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		holdID := uuid.New()
		holdMock := entity.Hold{
			ID:        holdID,
			SessionID: "sess-1",
			Status:    entity.HoldStatusActive,
			ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
		}
		repoMock.On("FindHoldByID", ctx, holdID.String()).Return(holdMock, nil)
		repoMock.On("InsertPaymentAttempt", ctx, mock.AnythingOfType("entity.PaymentAttempt")).Return(nil)
		repoMock.On("PayGateway", ctx, mock.Anything, int64(10000), "").Return("", fmt.Errorf("gateway down"))
		repoMock.On("UpdatePaymentAttemptStatus", ctx, mock.Anything, entity.PaymentStatusFailed).Return(nil)
		repoMock.On("UpdateHoldStatus", ctx, holdID.String(), entity.HoldStatusCancelled).Return(nil)
		repoMock.On("DropCachedActiveHold", ctx, "sess-1").Return(nil)

		_, err := uc.InitiatePayment(ctx, &request.InitiatePayment{
			SessionID:    "sess-1",
			HoldID:       holdID.String(),
			Amount:       100,
			GuestDetails: guest,
		})
		assert.Error(t, err)
		repoMock.AssertCalled(t, "UpdateHoldStatus", ctx, holdID.String(), entity.HoldStatusCancelled)
	})

	t.Run("direct flow creates the booking first", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		payloadMock := &request.InitiatePayment{
			SessionID:    "sess-3",
			PackageID:    4,
			StartDate:    "2026-09-01",
			EndDate:      "2026-09-03",
			TotalPeople:  2,
			Amount:       7999,
			GuestDetails: guest,
		}
		repoMock.On("InsertBooking", ctx, mock.AnythingOfType("entity.Booking")).Return(nil)
		repoMock.On("InsertPaymentAttempt", ctx, mock.AnythingOfType("entity.PaymentAttempt")).Return(nil)
		repoMock.On("PayGateway", ctx, mock.Anything, int64(799900), "").Return("https://phonepe.test/redirect", nil)

		resp, err := uc.InitiatePayment(ctx, payloadMock)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		inserted := repoMock.Calls[0].Arguments.Get(1).(entity.Booking)
		assert.Equal(t, entity.BookingStatusPendingPayment, inserted.Status)
		assert.Equal(t, entity.PaymentStatusInitiated, inserted.PaymentStatus)
	})

	t.Run("attempt insert failure fails the direct booking", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		payloadMock := &request.InitiatePayment{
			SessionID:    "sess-3",
			PackageID:    4,
			StartDate:    "2026-09-01",
			EndDate:      "2026-09-03",
			TotalPeople:  2,
			Amount:       7999,
			GuestDetails: guest,
		}
		repoMock.On("InsertBooking", ctx, mock.AnythingOfType("entity.Booking")).Return(nil)
		repoMock.On("InsertPaymentAttempt", ctx, mock.AnythingOfType("entity.PaymentAttempt")).Return(fmt.Errorf("insert failed"))
		repoMock.On("UpdateBookingPayment", ctx, mock.Anything, entity.BookingStatusFailed, entity.PaymentStatusFailed, "").Return(nil)

		_, err := uc.InitiatePayment(ctx, payloadMock)
		assert.Error(t, err)
		repoMock.AssertCalled(t, "UpdateBookingPayment", ctx, mock.Anything, entity.BookingStatusFailed, entity.PaymentStatusFailed, "")
		repoMock.AssertNotCalled(t, "PayGateway", ctx, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReconcilePayment(t *testing.T) {
	t.Run("terminal booking is never touched again", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		bookingID := uuid.New()
		attemptMock := entity.PaymentAttempt{
			MerchantTransactionID: "MT1",
			BookingID:             uuid.NullUUID{UUID: bookingID, Valid: true},
			Status:                entity.GatewayCodeSuccess,
		}
		bookingMock := entity.Booking{
			ID:            bookingID,
			Status:        entity.BookingStatusConfirmed,
			PaymentStatus: entity.PaymentStatusPaid,
		}
		repoMock.On("FindPaymentAttemptByMTID", ctx, "MT1").Return(attemptMock, nil)
		repoMock.On("FindBookingByID", ctx, bookingID.String()).Return(bookingMock, nil)

		first, err := uc.ReconcilePayment(ctx, "MT1")
		assert.NoError(t, err)
		second, err := uc.ReconcilePayment(ctx, "MT1")
		assert.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, entity.BookingStatusConfirmed, second.BookingStatus)
		repoMock.AssertNotCalled(t, "GetGatewayStatus", ctx, "MT1")
	})

	t.Run("confirmed payment converts the hold", func(t *testing.T) {
		pub := setup()
		defer teardown()

		ctx := context.Background()
		holdID := uuid.New()
		attemptMock := entity.PaymentAttempt{
			MerchantTransactionID: "MT2",
			HoldID:                uuid.NullUUID{UUID: holdID, Valid: true},
			AmountMinorUnits:      250000,
			Status:                entity.PaymentStatusInitiated,
			GuestName:             "Asha Rao",
			GuestEmail:            "asha@test.com",
			GuestPhone:            "9876543210",
		}
		holdMock := entity.Hold{
			ID:         holdID,
			SessionID:  "sess-1",
			Kind:       entity.HoldKindHotelRoom,
			RoomTypeID: sql.NullInt64{Int64: 10, Valid: true},
			Date:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			Quantity:   1,
			Status:     entity.HoldStatusActive,
			ExpiresAt:  time.Now().UTC().Add(10 * time.Minute),
		}
		repoMock.On("FindPaymentAttemptByMTID", ctx, "MT2").Return(attemptMock, nil)
		repoMock.On("GetGatewayStatus", ctx, "MT2").Return(entity.GatewayCodeSuccess, "T2", nil)
		repoMock.On("UpdatePaymentAttemptStatus", ctx, "MT2", entity.GatewayCodeSuccess).Return(nil)
		repoMock.On("FindHoldByID", ctx, holdID.String()).Return(holdMock, nil)
		repoMock.On("ConvertHoldToBooking", ctx, holdMock, mock.AnythingOfType("entity.Booking")).Return(nil)
		repoMock.On("AttachBookingToAttempt", ctx, "MT2", mock.Anything).Return(nil)
		repoMock.On("DropCachedActiveHold", ctx, "sess-1").Return(nil)

		resp, err := uc.ReconcilePayment(ctx, "MT2")
		assert.NoError(t, err)
		assert.Equal(t, entity.BookingStatusConfirmed, resp.BookingStatus)
		assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
		assert.Equal(t, 1, pub.published[usecases.TopicBookingConfirmed])
	})

	t.Run("unreachable status endpoint leaves the attempt in flight", func(t *testing.T) {
		pub := setup()
		defer teardown()

		ctx := context.Background()
		attemptMock := entity.PaymentAttempt{
			MerchantTransactionID: "MT3",
			HoldID:                uuid.NullUUID{UUID: uuid.New(), Valid: true},
			Status:                entity.PaymentStatusInitiated,
		}
		repoMock.On("FindPaymentAttemptByMTID", ctx, "MT3").Return(attemptMock, nil)
		repoMock.On("GetGatewayStatus", ctx, "MT3").Return("", "", fmt.Errorf("connect timeout"))

		resp, err := uc.ReconcilePayment(ctx, "MT3")
		assert.NoError(t, err)
		assert.Equal(t, entity.BookingStatusPendingPayment, resp.BookingStatus)
		assert.Equal(t, entity.PaymentStatusInitiated, resp.PaymentStatus)
		assert.Equal(t, 1, pub.published[usecases.TopicReconcilePayment])
		repoMock.AssertNotCalled(t, "UpdatePaymentAttemptStatus", ctx, "MT3", mock.Anything)
	})

	t.Run("declined payment cancels the hold", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		holdID := uuid.New()
		attemptMock := entity.PaymentAttempt{
			MerchantTransactionID: "MT4",
			HoldID:                uuid.NullUUID{UUID: holdID, Valid: true},
			Status:                entity.PaymentStatusInitiated,
		}
		holdMock := entity.Hold{ID: holdID, SessionID: "sess-1", Status: entity.HoldStatusActive}
		repoMock.On("FindPaymentAttemptByMTID", ctx, "MT4").Return(attemptMock, nil)
		repoMock.On("GetGatewayStatus", ctx, "MT4").Return(entity.GatewayCodeDeclined, "", nil)
		repoMock.On("UpdatePaymentAttemptStatus", ctx, "MT4", entity.GatewayCodeDeclined).Return(nil)
		repoMock.On("FindHoldByID", ctx, holdID.String()).Return(holdMock, nil)
		repoMock.On("UpdateHoldStatus", ctx, holdID.String(), entity.HoldStatusCancelled).Return(nil)
		repoMock.On("DropCachedActiveHold", ctx, "sess-1").Return(nil)

		resp, err := uc.ReconcilePayment(ctx, "MT4")
		assert.NoError(t, err)
		assert.Equal(t, entity.BookingStatusFailed, resp.BookingStatus)
		assert.Equal(t, entity.GatewayCodeDeclined, resp.PhonePePaymentStatus)
	})

	t.Run("pending payment changes nothing", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		attemptMock := entity.PaymentAttempt{
			MerchantTransactionID: "MT5",
			HoldID:                uuid.NullUUID{UUID: uuid.New(), Valid: true},
			Status:                entity.PaymentStatusInitiated,
		}
		repoMock.On("FindPaymentAttemptByMTID", ctx, "MT5").Return(attemptMock, nil)
		repoMock.On("GetGatewayStatus", ctx, "MT5").Return(entity.GatewayCodePending, "", nil)
		repoMock.On("UpdatePaymentAttemptStatus", ctx, "MT5", entity.GatewayCodePending).Return(nil)

		resp, err := uc.ReconcilePayment(ctx, "MT5")
		assert.NoError(t, err)
		assert.Equal(t, entity.BookingStatusPendingPayment, resp.BookingStatus)
		assert.Equal(t, entity.PaymentStatusInitiated, resp.PaymentStatus)
		repoMock.AssertNotCalled(t, "UpdateHoldStatus", ctx, mock.Anything, mock.Anything)
	})

	t.Run("losing the conversion race still reports the confirmed payment", func(t *testing.T) {
		pub := setup()
		defer teardown()

		ctx := context.Background()
		holdID := uuid.New()
		attemptMock := entity.PaymentAttempt{
			MerchantTransactionID: "MT9",
			HoldID:                uuid.NullUUID{UUID: holdID, Valid: true},
			AmountMinorUnits:      250000,
			Status:                entity.PaymentStatusInitiated,
		}
		activeHold := entity.Hold{
			ID:         holdID,
			SessionID:  "sess-1",
			Kind:       entity.HoldKindHotelRoom,
			RoomTypeID: sql.NullInt64{Int64: 10, Valid: true},
			Date:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			Quantity:   1,
			Status:     entity.HoldStatusActive,
			ExpiresAt:  time.Now().UTC().Add(10 * time.Minute),
		}
		convertedHold := activeHold
		convertedHold.Status = entity.HoldStatusConverted

		repoMock.On("FindPaymentAttemptByMTID", ctx, "MT9").Return(attemptMock, nil)
		repoMock.On("GetGatewayStatus", ctx, "MT9").Return(entity.GatewayCodeSuccess, "T9", nil)
		repoMock.On("UpdatePaymentAttemptStatus", ctx, "MT9", entity.GatewayCodeSuccess).Return(nil)
		// The concurrent delivery converts the hold between the first fetch
		// and the conversion attempt.
		repoMock.On("FindHoldByID", ctx, holdID.String()).Return(activeHold, nil).Once()
		repoMock.On("ConvertHoldToBooking", ctx, activeHold, mock.AnythingOfType("entity.Booking")).Return(fmt.Errorf("hold is not active"))
		repoMock.On("FindHoldByID", ctx, holdID.String()).Return(convertedHold, nil).Once()

		resp, err := uc.ReconcilePayment(ctx, "MT9")
		assert.NoError(t, err)
		assert.Equal(t, entity.BookingStatusConfirmed, resp.BookingStatus)
		assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
		assert.Equal(t, 0, pub.published[usecases.TopicInventoryAlert])
		repoMock.AssertNotCalled(t, "UpdateHoldStatus", ctx, holdID.String(), entity.HoldStatusCancelled)
	})

	t.Run("losing the capacity re-check fails gracefully", func(t *testing.T) {
		pub := setup()
		defer teardown()

		ctx := context.Background()
		holdID := uuid.New()
		attemptMock := entity.PaymentAttempt{
			MerchantTransactionID: "MT6",
			HoldID:                uuid.NullUUID{UUID: holdID, Valid: true},
			AmountMinorUnits:      250000,
			Status:                entity.PaymentStatusInitiated,
		}
		holdMock := entity.Hold{
			ID:         holdID,
			SessionID:  "sess-1",
			Kind:       entity.HoldKindHotelRoom,
			RoomTypeID: sql.NullInt64{Int64: 10, Valid: true},
			Date:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			Quantity:   1,
			Status:     entity.HoldStatusActive,
		}
		repoMock.On("FindPaymentAttemptByMTID", ctx, "MT6").Return(attemptMock, nil)
		repoMock.On("GetGatewayStatus", ctx, "MT6").Return(entity.GatewayCodeSuccess, "T6", nil)
		repoMock.On("UpdatePaymentAttemptStatus", ctx, "MT6", entity.GatewayCodeSuccess).Return(nil)
		repoMock.On("FindHoldByID", ctx, holdID.String()).Return(holdMock, nil)
		repoMock.On("ConvertHoldToBooking", ctx, holdMock, mock.AnythingOfType("entity.Booking")).Return(fmt.Errorf("no capacity left for held inventory"))
		repoMock.On("UpdateHoldStatus", ctx, holdID.String(), entity.HoldStatusCancelled).Return(nil)

		resp, err := uc.ReconcilePayment(ctx, "MT6")
		assert.NoError(t, err)
		assert.Equal(t, entity.BookingStatusFailed, resp.BookingStatus)
		assert.Equal(t, entity.PaymentStatusFailed, resp.PaymentStatus)
		assert.Equal(t, 1, pub.published[usecases.TopicInventoryAlert])
		repoMock.AssertNotCalled(t, "AttachBookingToAttempt", ctx, "MT6", mock.Anything)
	})
}

func TestHandleCallback(t *testing.T) {
	signCallback := func(b64Body string) string {
		sum := sha256.Sum256([]byte(b64Body + cfgPhonePe.SaltKey))
		return hex.EncodeToString(sum[:]) + "###" + cfgPhonePe.SaltIndex
	}

	t.Run("invalid signature is rejected", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		body := base64.StdEncoding.EncodeToString([]byte(`{"code":"PAYMENT_SUCCESS","data":{"merchantTransactionId":"MT7"}}`))

		err := uc.HandleCallback(ctx, body, "bogus###1")
		assert.Error(t, err)
		repoMock.AssertNotCalled(t, "FindPaymentAttemptByMTID", ctx, "MT7")
	})

	t.Run("valid signature reconciles the referenced payment", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		bookingID := uuid.New()
		body := base64.StdEncoding.EncodeToString([]byte(`{"code":"PAYMENT_SUCCESS","data":{"merchantTransactionId":"MT8","transactionId":"T8"}}`))
		attemptMock := entity.PaymentAttempt{
			MerchantTransactionID: "MT8",
			BookingID:             uuid.NullUUID{UUID: bookingID, Valid: true},
			Status:                entity.GatewayCodeSuccess,
		}
		bookingMock := entity.Booking{
			ID:            bookingID,
			Status:        entity.BookingStatusConfirmed,
			PaymentStatus: entity.PaymentStatusPaid,
		}
		repoMock.On("FindPaymentAttemptByMTID", ctx, "MT8").Return(attemptMock, nil)
		repoMock.On("FindBookingByID", ctx, bookingID.String()).Return(bookingMock, nil)

		err := uc.HandleCallback(ctx, body, signCallback(body))
		assert.NoError(t, err)
		repoMock.AssertCalled(t, "FindPaymentAttemptByMTID", ctx, "MT8")
	})

	t.Run("payload without a transaction id is still acknowledged", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		body := base64.StdEncoding.EncodeToString([]byte(`{"code":"PAYMENT_SUCCESS","data":{}}`))

		err := uc.HandleCallback(ctx, body, signCallback(body))
		assert.NoError(t, err)
		repoMock.AssertNotCalled(t, "FindPaymentAttemptByMTID", ctx, mock.Anything)
	})

	t.Run("undecodable payload is still acknowledged", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := context.Background()
		body := "!!!not-base64!!!"

		err := uc.HandleCallback(ctx, body, signCallback(body))
		assert.NoError(t, err)
		repoMock.AssertNotCalled(t, "FindPaymentAttemptByMTID", ctx, mock.Anything)
	})
}

func TestBlockCapacity(t *testing.T) {
	setup()
	defer teardown()

	t.Run("block expands the range", func(t *testing.T) {
		ctx := context.Background()
		payloadMock := &request.BlockCapacity{
			ResourceType: entity.ResourceTypeRoomType,
			ResourceID:   10,
			StartDate:    "2026-09-01",
			EndDate:      "2026-09-03",
			Quantity:     2,
			Reason:       "maintenance",
			PerformedBy:  "ops@test.com",
		}
		repoMock.On("BlockCapacity", ctx, entity.AdjustmentTypeBlock, entity.ResourceTypeRoomType, int64(10), mock.Anything, 2, "maintenance", "ops@test.com").Return(nil)

		err := uc.BlockCapacity(ctx, payloadMock)
		assert.NoError(t, err)

		dates := repoMock.Calls[0].Arguments.Get(4).([]time.Time)
		assert.Len(t, dates, 3)
	})

	t.Run("unblock negates the quantity", func(t *testing.T) {
		ctx := context.Background()
		payloadMock := &request.BlockCapacity{
			ResourceType: entity.ResourceTypeRoomType,
			ResourceID:   10,
			StartDate:    "2026-09-01",
			EndDate:      "2026-09-01",
			Quantity:     2,
			Reason:       "maintenance done",
		}
		repoMock.On("BlockCapacity", ctx, entity.AdjustmentTypeUnblock, entity.ResourceTypeRoomType, int64(10), mock.Anything, -2, "maintenance done", "").Return(nil)

		err := uc.UnblockCapacity(ctx, payloadMock)
		assert.NoError(t, err)
	})
}

func TestPotentialOverbooking(t *testing.T) {
	setup()
	defer teardown()

	t.Run("excess is booked plus blocked over capacity", func(t *testing.T) {
		ctx := context.Background()
		daysMock := []entity.InventoryDay{
			{
				ResourceType:  entity.ResourceTypeRoomType,
				ResourceID:    10,
				Date:          time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				TotalCapacity: 2,
				Booked:        3,
				Blocked:       0,
			},
		}
		repoMock.On("OverbookingDays", ctx).Return(daysMock, nil)

		resp, err := uc.PotentialOverbooking(ctx)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, 1, resp[0].Excess)
	})
}

func TestLowAvailability(t *testing.T) {
	setup()
	defer teardown()

	t.Run("ratio of remaining to total", func(t *testing.T) {
		ctx := context.Background()
		daysMock := []entity.InventoryDay{
			{
				ResourceType:  entity.ResourceTypeRoomType,
				ResourceID:    10,
				Date:          time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				TotalCapacity: 10,
				Booked:        8,
				Blocked:       1,
			},
		}
		repoMock.On("LowAvailabilityDays", ctx, 0.2).Return(daysMock, nil)

		resp, err := uc.LowAvailability(ctx, 0.2)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, 1, resp[0].Available)
		assert.InDelta(t, 0.1, resp[0].Ratio, 0.0001)
	})
}
