package usecases

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"math"
	"time"

	"travel-booking-service/config"
	"travel-booking-service/internal/module/booking/models/entity"
	"travel-booking-service/internal/module/booking/models/request"
	"travel-booking-service/internal/module/booking/models/response"
	"travel-booking-service/internal/module/booking/repositories"
	"travel-booking-service/internal/pkg/errors"
	"travel-booking-service/internal/pkg/scheduler"
	"travel-booking-service/internal/pkg/signature"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-redsync/redsync/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const (
	TopicBookingConfirmed = "booking_confirmed"
	TopicInventoryAlert   = "inventory_alert"
	TopicReconcilePayment = "reconcile_payment"
)

const dateLayout = "2006-01-02"

// TaskEnqueuer is the slice of asynq.Client the usecase needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type usecase struct {
	repo       repositories.Repositories
	log        *otelzap.Logger
	publisher  message.Publisher
	tasks      TaskEnqueuer
	locker     *redsync.Redsync
	cfgPhonePe *config.PhonePeConfig
	holdTTL    time.Duration
}

type Usecase interface {
	// availability
	CheckAvailability(ctx context.Context, payload *request.CheckAvailability) (response.Availability, error)
	// holds
	CreateHold(ctx context.Context, payload *request.CreateHold) (response.HoldCreated, error)
	GetActiveHolds(ctx context.Context, sessionID string) ([]response.ActiveHold, error)
	ExtendHold(ctx context.Context, sessionID, holdID string) (response.HoldCreated, error)
	CleanupExpiredHolds(ctx context.Context) (response.CleanupResult, error)
	ExpireHold(ctx context.Context, holdID string) error
	// payments
	InitiatePayment(ctx context.Context, payload *request.InitiatePayment) (response.PaymentInitiated, error)
	HandleCallback(ctx context.Context, base64Body, xVerifyHeader string) error
	CheckPaymentStatus(ctx context.Context, mtid string) (response.PaymentStatus, error)
	ReconcilePayment(ctx context.Context, mtid string) (response.PaymentStatus, error)
	// inventory administration
	BlockCapacity(ctx context.Context, payload *request.BlockCapacity) error
	UnblockCapacity(ctx context.Context, payload *request.BlockCapacity) error
	PotentialOverbooking(ctx context.Context) ([]response.OverbookingDay, error)
	LowAvailability(ctx context.Context, threshold float64) ([]response.LowAvailabilityDay, error)
}

func New(repo repositories.Repositories, log *otelzap.Logger, publisher message.Publisher, tasks TaskEnqueuer, locker *redsync.Redsync, cfgPhonePe *config.PhonePeConfig, cfgHold *config.HoldConfig) Usecase {
	ttl := 15 * time.Minute
	if cfgHold != nil && cfgHold.TTLMinutes > 0 {
		ttl = time.Duration(cfgHold.TTLMinutes) * time.Minute
	}
	return &usecase{
		repo:       repo,
		log:        log,
		publisher:  publisher,
		tasks:      tasks,
		locker:     locker,
		cfgPhonePe: cfgPhonePe,
		holdTTL:    ttl,
	}
}

func (u *usecase) CheckAvailability(ctx context.Context, payload *request.CheckAvailability) (response.Availability, error) {
	start, err := time.Parse(dateLayout, payload.StartDate)
	if err != nil {
		return response.Availability{}, errors.BadRequest("invalid start date")
	}
	end, err := time.Parse(dateLayout, payload.EndDate)
	if err != nil {
		return response.Availability{}, errors.BadRequest("invalid end date")
	}
	if end.Before(start) {
		return response.Availability{}, errors.BadRequest("end date before start date")
	}

	resourceType, resourceID := resourceFromAvailability(payload)
	required := payload.RequiredQuantity()
	if required <= 0 {
		required = 1
	}

	days, err := u.repo.GetInventoryDays(ctx, resourceType, resourceID, start, end)
	if err != nil {
		return response.Availability{}, err
	}

	byDate := make(map[string]entity.InventoryDay, len(days))
	for _, d := range days {
		byDate[d.Date.Format(dateLayout)] = d
	}

	// Every date in range gets a row; dates without inventory report zero
	// capacity so an unknown resource looks the same as a sold-out one.
	resp := response.Availability{Available: true}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		day, ok := byDate[key]
		perDay := response.PerDayAvailability{Date: key}
		if ok {
			perDay.TotalCapacity = day.TotalCapacity
			perDay.Booked = day.Booked
			perDay.Blocked = day.Blocked
			perDay.Available = day.Available()
		}
		perDay.Sufficient = perDay.Available >= required
		if !perDay.Sufficient {
			resp.Available = false
		}
		resp.Data = append(resp.Data, perDay)
	}

	return resp, nil
}

func resourceFromAvailability(payload *request.CheckAvailability) (string, int64) {
	if payload.Type == entity.HoldKindHotelRoom {
		return entity.ResourceTypeRoomType, payload.RoomTypeID
	}
	return entity.ResourceTypeService, payload.ServiceID
}

// CreateHold cancels any prior active hold for the session before inserting
// the new one: last hold wins, a shopper never stacks price locks.
func (u *usecase) CreateHold(ctx context.Context, payload *request.CreateHold) (response.HoldCreated, error) {
	date, err := time.Parse(dateLayout, payload.Date)
	if err != nil {
		return response.HoldCreated{}, errors.BadRequest("invalid date")
	}

	// A shopper may ask for a shorter hold but never a longer price lock
	// than the configured TTL.
	ttl := u.holdTTL
	if payload.TTLMinutes > 0 {
		ttl = time.Duration(payload.TTLMinutes) * time.Minute
		if ttl > u.holdTTL {
			ttl = u.holdTTL
		}
	}

	if _, err := u.repo.CancelActiveHoldsBySession(ctx, payload.SessionID); err != nil {
		return response.HoldCreated{}, err
	}
	if err := u.repo.DropCachedActiveHold(ctx, payload.SessionID); err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error drop cached hold for session %s: %v", payload.SessionID, err))
	}

	now := time.Now().UTC()
	hold := entity.Hold{
		ID:        uuid.New(),
		SessionID: payload.SessionID,
		Kind:      payload.Kind,
		Date:      date,
		Quantity:  payload.Quantity,
		Status:    entity.HoldStatusActive,
		ExpiresAt: now.Add(ttl),
	}
	if payload.UserID != 0 {
		hold.UserID = sql.NullInt64{Int64: payload.UserID, Valid: true}
	}
	if payload.Kind == entity.HoldKindHotelRoom {
		hold.RoomTypeID = sql.NullInt64{Int64: payload.RoomTypeID, Valid: true}
	} else {
		hold.ServiceID = sql.NullInt64{Int64: payload.ServiceID, Valid: true}
	}
	if payload.LockedPrice > 0 {
		hold.LockedPrice = sql.NullFloat64{Float64: payload.LockedPrice, Valid: true}
	}

	if err := u.repo.InsertHold(ctx, hold); err != nil {
		return response.HoldCreated{}, err
	}

	// Cache and delayed expiry task are both best-effort; the sweeper and
	// the expires_at predicates keep correctness without them.
	if err := u.repo.CacheActiveHold(ctx, payload.SessionID, hold.ID.String(), ttl); err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error cache hold %s: %v", hold.ID, err))
	}
	if u.tasks != nil {
		taskPayload, _ := json.Marshal(request.ExpireHoldTask{HoldID: hold.ID.String()})
		task := asynq.NewTask(scheduler.TypeExpireHold, taskPayload)
		if _, err := u.tasks.Enqueue(task, asynq.ProcessIn(ttl+time.Minute)); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error enqueue expire task for hold %s: %v", hold.ID, err))
		}
	}

	return response.HoldCreated{
		HoldID:    hold.ID.String(),
		ExpiresAt: hold.ExpiresAt.Format(time.RFC3339),
	}, nil
}

func (u *usecase) GetActiveHolds(ctx context.Context, sessionID string) ([]response.ActiveHold, error) {
	holds, err := u.repo.FindActiveHoldsBySession(ctx, sessionID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	resp := make([]response.ActiveHold, 0, len(holds))
	for _, h := range holds {
		resp = append(resp, response.ActiveHold{
			HoldID:      h.ID.String(),
			Kind:        h.Kind,
			ResourceID:  h.ResourceID(),
			Date:        h.Date.Format(dateLayout),
			Quantity:    h.Quantity,
			LockedPrice: h.LockedPrice.Float64,
			ExpiresAt:   h.ExpiresAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (u *usecase) ExtendHold(ctx context.Context, sessionID, holdID string) (response.HoldCreated, error) {
	hold, err := u.repo.FindHoldByID(ctx, holdID)
	if err != nil {
		return response.HoldCreated{}, err
	}
	if hold.SessionID != sessionID {
		return response.HoldCreated{}, errors.NotFound("hold not found")
	}
	now := time.Now().UTC()
	if hold.Status != entity.HoldStatusActive || !hold.ExpiresAt.After(now) {
		return response.HoldCreated{}, errors.Conflict("hold is not active")
	}

	newExpiry := now.Add(u.holdTTL)
	if err := u.repo.ExtendHold(ctx, holdID, newExpiry); err != nil {
		return response.HoldCreated{}, err
	}
	if err := u.repo.CacheActiveHold(ctx, sessionID, holdID, u.holdTTL); err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error cache hold %s: %v", holdID, err))
	}

	return response.HoldCreated{
		HoldID:    holdID,
		ExpiresAt: newExpiry.Format(time.RFC3339),
	}, nil
}

func (u *usecase) CleanupExpiredHolds(ctx context.Context) (response.CleanupResult, error) {
	count, err := u.repo.ExpireOverdueHolds(ctx, time.Now().UTC())
	if err != nil {
		return response.CleanupResult{}, err
	}
	return response.CleanupResult{Expired: count}, nil
}

// ExpireHold closes a single hold past its deadline. Invoked by the delayed
// task enqueued at creation; holds extended in the meantime are left alone.
func (u *usecase) ExpireHold(ctx context.Context, holdID string) error {
	hold, err := u.repo.FindHoldByID(ctx, holdID)
	if err != nil {
		return err
	}
	if hold.Status != entity.HoldStatusActive {
		return nil
	}
	if hold.ExpiresAt.After(time.Now().UTC()) {
		return nil
	}

	if err := u.repo.UpdateHoldStatus(ctx, holdID, entity.HoldStatusExpired); err != nil {
		return err
	}
	if err := u.repo.DropCachedActiveHold(ctx, hold.SessionID); err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error drop cached hold for session %s: %v", hold.SessionID, err))
	}
	return nil
}

// InitiatePayment starts the gateway flow for either a hold or a direct
// booking. Whatever happens, nothing is left without a forward path: a
// gateway failure cancels the hold or fails the booking on the spot.
func (u *usecase) InitiatePayment(ctx context.Context, payload *request.InitiatePayment) (response.PaymentInitiated, error) {
	mtid := fmt.Sprintf("MT%s", watermill.NewShortUUID())
	amountMinor := int64(math.Round(payload.Amount * 100))
	now := time.Now().UTC()

	attempt := entity.PaymentAttempt{
		MerchantTransactionID: mtid,
		AmountMinorUnits:      amountMinor,
		Status:                entity.PaymentStatusInitiated,
		GuestName:             payload.GuestDetails.Name,
		GuestEmail:            payload.GuestDetails.Email,
		GuestPhone:            payload.GuestDetails.Phone,
	}
	if payload.SpecialRequests != "" {
		attempt.SpecialRequests = sql.NullString{String: payload.SpecialRequests, Valid: true}
	}

	var hold entity.Hold
	if payload.HoldID != "" {
		var err error
		hold, err = u.repo.FindHoldByID(ctx, payload.HoldID)
		if err != nil {
			return response.PaymentInitiated{}, err
		}
		if hold.SessionID != payload.SessionID {
			return response.PaymentInitiated{}, errors.NotFound("hold not found")
		}
		if hold.Status != entity.HoldStatusActive || !hold.ExpiresAt.After(now) {
			return response.PaymentInitiated{}, errors.Conflict("hold is no longer active")
		}
		holdUUID, err := uuid.Parse(payload.HoldID)
		if err != nil {
			return response.PaymentInitiated{}, errors.BadRequest("invalid hold id")
		}
		attempt.HoldID = uuid.NullUUID{UUID: holdUUID, Valid: true}
	} else {
		// Direct flow: the booking exists before the gateway is called.
		booking, err := bookingFromInitiate(payload, now)
		if err != nil {
			return response.PaymentInitiated{}, err
		}
		if err := u.repo.InsertBooking(ctx, booking); err != nil {
			return response.PaymentInitiated{}, err
		}
		attempt.BookingID = uuid.NullUUID{UUID: booking.ID, Valid: true}
	}

	if err := u.repo.InsertPaymentAttempt(ctx, attempt); err != nil {
		// A direct-flow booking without its attempt has no reconciliation
		// key and no TTL; fail it now rather than strand it. A held flow
		// still has the hold's expiry as its forward path.
		if attempt.BookingID.Valid {
			if updErr := u.repo.UpdateBookingPayment(ctx, attempt.BookingID.UUID.String(), entity.BookingStatusFailed, entity.PaymentStatusFailed, ""); updErr != nil {
				u.log.Ctx(ctx).Error(fmt.Sprintf("error failing booking %s: %v", attempt.BookingID.UUID, updErr))
			}
		}
		return response.PaymentInitiated{}, err
	}

	redirectURL, err := u.repo.PayGateway(ctx, mtid, amountMinor, payload.MobileNumber)
	if err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("gateway initiation failed for %s: %v", mtid, err))
		u.abandonAttempt(ctx, attempt, payload.SessionID)
		return response.PaymentInitiated{}, errors.InternalServerError("payment initiation failed")
	}

	return response.PaymentInitiated{
		Success:               true,
		RedirectURL:           redirectURL,
		MerchantTransactionID: mtid,
	}, nil
}

// abandonAttempt closes out a payment attempt whose gateway call never got
// off the ground. Holds are cancelled, direct bookings failed.
func (u *usecase) abandonAttempt(ctx context.Context, attempt entity.PaymentAttempt, sessionID string) {
	if err := u.repo.UpdatePaymentAttemptStatus(ctx, attempt.MerchantTransactionID, entity.PaymentStatusFailed); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error failing payment attempt %s: %v", attempt.MerchantTransactionID, err))
	}
	if attempt.HoldID.Valid {
		if err := u.repo.UpdateHoldStatus(ctx, attempt.HoldID.UUID.String(), entity.HoldStatusCancelled); err != nil {
			u.log.Ctx(ctx).Error(fmt.Sprintf("error cancelling hold %s: %v", attempt.HoldID.UUID, err))
		}
		if err := u.repo.DropCachedActiveHold(ctx, sessionID); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error drop cached hold for session %s: %v", sessionID, err))
		}
	}
	if attempt.BookingID.Valid {
		if err := u.repo.UpdateBookingPayment(ctx, attempt.BookingID.UUID.String(), entity.BookingStatusFailed, entity.PaymentStatusFailed, ""); err != nil {
			u.log.Ctx(ctx).Error(fmt.Sprintf("error failing booking %s: %v", attempt.BookingID.UUID, err))
		}
	}
}

func bookingFromInitiate(payload *request.InitiatePayment, now time.Time) (entity.Booking, error) {
	start, err := time.Parse(dateLayout, payload.StartDate)
	if err != nil {
		return entity.Booking{}, errors.BadRequest("invalid start date")
	}
	end, err := time.Parse(dateLayout, payload.EndDate)
	if err != nil {
		return entity.Booking{}, errors.BadRequest("invalid end date")
	}

	booking := entity.Booking{
		ID:            uuid.New(),
		GuestName:     payload.GuestDetails.Name,
		GuestEmail:    payload.GuestDetails.Email,
		GuestPhone:    payload.GuestDetails.Phone,
		StartDate:     start,
		EndDate:       end,
		TotalPeople:   payload.TotalPeople,
		TotalAmount:   payload.Amount,
		Status:        entity.BookingStatusPendingPayment,
		PaymentStatus: entity.PaymentStatusInitiated,
		CreatedAt:     now,
	}
	if payload.UserID != 0 {
		booking.UserID = sql.NullInt64{Int64: payload.UserID, Valid: true}
	}
	if payload.PackageID != 0 {
		booking.PackageID = sql.NullInt64{Int64: payload.PackageID, Valid: true}
	}
	if payload.PackageCategoryID != 0 {
		booking.PackageCategoryID = sql.NullInt64{Int64: payload.PackageCategoryID, Valid: true}
	}
	if payload.ServiceID != 0 {
		booking.ServiceID = sql.NullInt64{Int64: payload.ServiceID, Valid: true}
	}
	if payload.HotelRoomTypeID != 0 {
		booking.HotelRoomTypeID = sql.NullInt64{Int64: payload.HotelRoomTypeID, Valid: true}
	}
	if payload.SpecialRequests != "" {
		booking.SpecialRequests = sql.NullString{String: payload.SpecialRequests, Valid: true}
	}
	return booking, nil
}

type callbackPayload struct {
	Code string `json:"code"`
	Data struct {
		MerchantTransactionID string `json:"merchantTransactionId"`
		TransactionID         string `json:"transactionId"`
	} `json:"data"`
}

// HandleCallback verifies the server-to-server callback and reconciles the
// referenced payment. Only an authenticity failure propagates; once the
// signature checks out the gateway gets its acknowledgment even if the
// payload is unusable or reconciliation could not finish.
func (u *usecase) HandleCallback(ctx context.Context, base64Body, xVerifyHeader string) error {
	if !signature.VerifyCallback(base64Body, xVerifyHeader, u.cfgPhonePe.SaltKey, u.cfgPhonePe.SaltIndex) {
		return errors.BadRequest("invalid callback signature")
	}

	// Past the signature check, the gateway always gets its ack: a payload
	// we cannot use is logged, never bounced, so the gateway does not retry
	// forever over an application-level issue.
	raw, err := base64.StdEncoding.DecodeString(base64Body)
	if err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error decode callback payload: %v", err))
		return nil
	}

	var payload callbackPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal callback payload: %v", err))
		return nil
	}
	if payload.Data.MerchantTransactionID == "" {
		u.log.Ctx(ctx).Error("callback payload missing merchant transaction id")
		return nil
	}

	// The callback's own stated outcome is never trusted; reconciliation
	// asks the status endpoint for ground truth.
	if _, err := u.ReconcilePayment(ctx, payload.Data.MerchantTransactionID); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("callback reconciliation failed for %s: %v", payload.Data.MerchantTransactionID, err))
	}
	return nil
}

func (u *usecase) CheckPaymentStatus(ctx context.Context, mtid string) (response.PaymentStatus, error) {
	return u.ReconcilePayment(ctx, mtid)
}

// ReconcilePayment is the single idempotency-guarded function both the
// callback and the status poll route through. A terminal booking is never
// touched again; anything short of a definitive gateway answer leaves the
// attempt INITIATED for a later retry.
func (u *usecase) ReconcilePayment(ctx context.Context, mtid string) (response.PaymentStatus, error) {
	attempt, err := u.repo.FindPaymentAttemptByMTID(ctx, mtid)
	if err != nil {
		return response.PaymentStatus{}, err
	}

	var booking entity.Booking
	haveBooking := attempt.BookingID.Valid
	if haveBooking {
		booking, err = u.repo.FindBookingByID(ctx, attempt.BookingID.UUID.String())
		if err != nil {
			return response.PaymentStatus{}, err
		}
		if booking.IsTerminal() {
			return response.PaymentStatus{
				BookingStatus:        booking.Status,
				PaymentStatus:        booking.PaymentStatus,
				PhonePePaymentStatus: attempt.Status,
			}, nil
		}
	}

	code, providerRef, err := u.repo.GetGatewayStatus(ctx, mtid)
	if err != nil {
		// Unreachable status endpoint is an unknown outcome, not a failure.
		// Queue a retry and report the attempt as still in flight.
		u.log.Ctx(ctx).Error(fmt.Sprintf("gateway status unreachable for %s: %v", mtid, err))
		u.publishReconcileRetry(ctx, mtid)
		return u.currentStatus(booking, haveBooking, attempt), nil
	}

	if err := u.repo.UpdatePaymentAttemptStatus(ctx, mtid, code); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error recording gateway status for %s: %v", mtid, err))
	}
	attempt.Status = code

	switch {
	case code == entity.GatewayCodeSuccess:
		return u.finalizeSuccess(ctx, attempt, booking, haveBooking, providerRef)
	case isDeclineCode(code):
		return u.finalizeFailure(ctx, attempt, haveBooking, code)
	default:
		// PAYMENT_PENDING and anything unrecognized: no state change.
		return u.currentStatus(booking, haveBooking, attempt), nil
	}
}

func (u *usecase) currentStatus(booking entity.Booking, haveBooking bool, attempt entity.PaymentAttempt) response.PaymentStatus {
	resp := response.PaymentStatus{
		BookingStatus:        entity.BookingStatusPendingPayment,
		PaymentStatus:        entity.PaymentStatusInitiated,
		PhonePePaymentStatus: attempt.Status,
	}
	if haveBooking {
		resp.BookingStatus = booking.Status
		resp.PaymentStatus = booking.PaymentStatus
	}
	return resp
}

// finalizeSuccess drives a confirmed payment to CONFIRMED/PAID, converting
// the hold when one is attached. A capacity shortfall at conversion time is
// the losing side of a race two holds were allowed to enter; it fails
// gracefully and is flagged for manual reconciliation, never overbooked.
func (u *usecase) finalizeSuccess(ctx context.Context, attempt entity.PaymentAttempt, booking entity.Booking, haveBooking bool, providerRef string) (response.PaymentStatus, error) {
	if attempt.HoldID.Valid && !haveBooking {
		return u.convertHold(ctx, attempt, providerRef)
	}

	if haveBooking {
		if err := u.repo.UpdateBookingPayment(ctx, booking.ID.String(), entity.BookingStatusConfirmed, entity.PaymentStatusPaid, providerRef); err != nil {
			// Money moved at the gateway but the local record did not. This
			// must surface loudly for manual healing.
			u.log.Ctx(ctx).Error(fmt.Sprintf("CRITICAL: payment %s succeeded at gateway but booking %s update failed: %v", attempt.MerchantTransactionID, booking.ID, err))
			u.publishAlert(ctx, "booking_update_failed_after_payment", attempt.MerchantTransactionID)
			u.publishReconcileRetry(ctx, attempt.MerchantTransactionID)
			return u.currentStatus(booking, true, attempt), nil
		}
		u.publishBookingConfirmed(ctx, booking.ID.String(), attempt.MerchantTransactionID)
		return response.PaymentStatus{
			BookingStatus:        entity.BookingStatusConfirmed,
			PaymentStatus:        entity.PaymentStatusPaid,
			PhonePePaymentStatus: attempt.Status,
		}, nil
	}

	// Neither hold nor booking attached: nothing local to finalize.
	u.log.Ctx(ctx).Error(fmt.Sprintf("payment attempt %s has no hold or booking attached", attempt.MerchantTransactionID))
	u.publishAlert(ctx, "orphan_payment_attempt", attempt.MerchantTransactionID)
	return u.currentStatus(entity.Booking{}, false, attempt), nil
}

func (u *usecase) convertHold(ctx context.Context, attempt entity.PaymentAttempt, providerRef string) (response.PaymentStatus, error) {
	hold, err := u.repo.FindHoldByID(ctx, attempt.HoldID.UUID.String())
	if err != nil {
		return response.PaymentStatus{}, err
	}

	// Serialize conversions per resource-day across instances; the row lock
	// inside the conversion transaction remains the final arbiter.
	if u.locker != nil {
		lockName := fmt.Sprintf("convert:%s:%d:%s", hold.ResourceType(), hold.ResourceID(), hold.Date.Format(dateLayout))
		mutex := u.locker.NewMutex(lockName, redsync.WithExpiry(10*time.Second))
		if err := mutex.LockContext(ctx); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error acquiring conversion lock %s: %v", lockName, err))
		} else {
			defer mutex.UnlockContext(ctx)
		}
	}

	now := time.Now().UTC()
	booking := entity.Booking{
		ID:              uuid.New(),
		UserID:          hold.UserID,
		GuestName:       attempt.GuestName,
		GuestEmail:      attempt.GuestEmail,
		GuestPhone:      attempt.GuestPhone,
		StartDate:       hold.Date,
		EndDate:         hold.Date,
		TotalPeople:     hold.Quantity,
		TotalAmount:     float64(attempt.AmountMinorUnits) / 100,
		SpecialRequests: attempt.SpecialRequests,
		Status:          entity.BookingStatusConfirmed,
		PaymentStatus:   entity.PaymentStatusPaid,
		CreatedAt:       now,
	}
	if providerRef != "" {
		booking.ProviderReferenceID = sql.NullString{String: providerRef, Valid: true}
	}
	if hold.Kind == entity.HoldKindHotelRoom {
		booking.HotelRoomTypeID = hold.RoomTypeID
	} else {
		booking.ServiceID = hold.ServiceID
	}

	if err := u.repo.ConvertHoldToBooking(ctx, hold, booking); err != nil {
		return u.resolveConversionConflict(ctx, attempt, hold, err)
	}

	if err := u.repo.AttachBookingToAttempt(ctx, attempt.MerchantTransactionID, booking.ID.String()); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error attaching booking %s to attempt %s: %v", booking.ID, attempt.MerchantTransactionID, err))
	}
	if err := u.repo.DropCachedActiveHold(ctx, hold.SessionID); err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error drop cached hold for session %s: %v", hold.SessionID, err))
	}
	u.publishBookingConfirmed(ctx, booking.ID.String(), attempt.MerchantTransactionID)

	return response.PaymentStatus{
		BookingStatus:        entity.BookingStatusConfirmed,
		PaymentStatus:        entity.PaymentStatusPaid,
		PhonePePaymentStatus: attempt.Status,
	}, nil
}

// resolveConversionConflict tells the race loser apart from a genuine
// capacity shortfall. Callback and redirect poll race through the same
// reconciliation; when the other delivery already converted the hold, this
// payment is confirmed and must be reported as such, not failed.
func (u *usecase) resolveConversionConflict(ctx context.Context, attempt entity.PaymentAttempt, hold entity.Hold, convErr error) (response.PaymentStatus, error) {
	current, err := u.repo.FindHoldByID(ctx, hold.ID.String())
	if err == nil && current.Status == entity.HoldStatusConverted {
		return response.PaymentStatus{
			BookingStatus:        entity.BookingStatusConfirmed,
			PaymentStatus:        entity.PaymentStatusPaid,
			PhonePePaymentStatus: attempt.Status,
		}, nil
	}

	// The hold really lost the capacity re-check (or was closed by expiry
	// or cancellation). Cancel it and flag for manual refund review.
	u.log.Ctx(ctx).Error(fmt.Sprintf("conversion failed for hold %s payment %s: %v", hold.ID, attempt.MerchantTransactionID, convErr))
	if cancelErr := u.repo.UpdateHoldStatus(ctx, hold.ID.String(), entity.HoldStatusCancelled); cancelErr != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error cancelling hold %s: %v", hold.ID, cancelErr))
	}
	u.publishAlert(ctx, "paid_conversion_failed", attempt.MerchantTransactionID)
	return response.PaymentStatus{
		BookingStatus:        entity.BookingStatusFailed,
		PaymentStatus:        entity.PaymentStatusFailed,
		PhonePePaymentStatus: attempt.Status,
	}, nil
}

func (u *usecase) finalizeFailure(ctx context.Context, attempt entity.PaymentAttempt, haveBooking bool, code string) (response.PaymentStatus, error) {
	if attempt.HoldID.Valid {
		hold, err := u.repo.FindHoldByID(ctx, attempt.HoldID.UUID.String())
		if err == nil {
			if cancelErr := u.repo.UpdateHoldStatus(ctx, hold.ID.String(), entity.HoldStatusCancelled); cancelErr != nil {
				u.log.Ctx(ctx).Error(fmt.Sprintf("error cancelling hold %s: %v", hold.ID, cancelErr))
			}
			if dropErr := u.repo.DropCachedActiveHold(ctx, hold.SessionID); dropErr != nil {
				u.log.Ctx(ctx).Warn(fmt.Sprintf("error drop cached hold for session %s: %v", hold.SessionID, dropErr))
			}
		}
	}
	if haveBooking {
		if err := u.repo.UpdateBookingPayment(ctx, attempt.BookingID.UUID.String(), entity.BookingStatusFailed, entity.PaymentStatusFailed, ""); err != nil {
			u.log.Ctx(ctx).Error(fmt.Sprintf("error failing booking %s: %v", attempt.BookingID.UUID, err))
			return response.PaymentStatus{}, err
		}
	}

	return response.PaymentStatus{
		BookingStatus:        entity.BookingStatusFailed,
		PaymentStatus:        entity.PaymentStatusFailed,
		PhonePePaymentStatus: code,
	}, nil
}

func isDeclineCode(code string) bool {
	switch code {
	case entity.GatewayCodeError,
		entity.GatewayCodeNotFound,
		entity.GatewayCodeFailure,
		entity.GatewayCodeTimedOut,
		entity.GatewayCodeDeclined,
		entity.GatewayCodeCardNotSupported,
		entity.GatewayCodeBankOffline:
		return true
	}
	return false
}

func (u *usecase) BlockCapacity(ctx context.Context, payload *request.BlockCapacity) error {
	dates, err := expandDateRange(payload.StartDate, payload.EndDate)
	if err != nil {
		return err
	}
	return u.repo.BlockCapacity(ctx, entity.AdjustmentTypeBlock, payload.ResourceType, payload.ResourceID, dates, payload.Quantity, payload.Reason, payload.PerformedBy)
}

func (u *usecase) UnblockCapacity(ctx context.Context, payload *request.BlockCapacity) error {
	dates, err := expandDateRange(payload.StartDate, payload.EndDate)
	if err != nil {
		return err
	}
	return u.repo.BlockCapacity(ctx, entity.AdjustmentTypeUnblock, payload.ResourceType, payload.ResourceID, dates, -payload.Quantity, payload.Reason, payload.PerformedBy)
}

func expandDateRange(startDate, endDate string) ([]time.Time, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, errors.BadRequest("invalid start date")
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, errors.BadRequest("invalid end date")
	}
	if end.Before(start) {
		return nil, errors.BadRequest("end date before start date")
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

func (u *usecase) PotentialOverbooking(ctx context.Context) ([]response.OverbookingDay, error) {
	days, err := u.repo.OverbookingDays(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]response.OverbookingDay, 0, len(days))
	for _, d := range days {
		resp = append(resp, response.OverbookingDay{
			ResourceType:  d.ResourceType,
			ResourceID:    d.ResourceID,
			Date:          d.Date.Format(dateLayout),
			TotalCapacity: d.TotalCapacity,
			Booked:        d.Booked,
			Blocked:       d.Blocked,
			Excess:        d.Booked + d.Blocked - d.TotalCapacity,
		})
	}
	return resp, nil
}

func (u *usecase) LowAvailability(ctx context.Context, threshold float64) ([]response.LowAvailabilityDay, error) {
	days, err := u.repo.LowAvailabilityDays(ctx, threshold)
	if err != nil {
		return nil, err
	}

	resp := make([]response.LowAvailabilityDay, 0, len(days))
	for _, d := range days {
		ratio := 0.0
		if d.TotalCapacity > 0 {
			ratio = float64(d.Available()) / float64(d.TotalCapacity)
		}
		resp = append(resp, response.LowAvailabilityDay{
			ResourceType:  d.ResourceType,
			ResourceID:    d.ResourceID,
			Date:          d.Date.Format(dateLayout),
			TotalCapacity: d.TotalCapacity,
			Available:     d.Available(),
			Ratio:         ratio,
		})
	}
	return resp, nil
}

func (u *usecase) publishBookingConfirmed(ctx context.Context, bookingID, mtid string) {
	if u.publisher == nil {
		return
	}
	payload, _ := json.Marshal(map[string]string{
		"booking_id":              bookingID,
		"merchant_transaction_id": mtid,
	})
	if err := u.publisher.Publish(TopicBookingConfirmed, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error publish booking confirmed for %s: %v", bookingID, err))
	}
}

func (u *usecase) publishAlert(ctx context.Context, kind, reference string) {
	if u.publisher == nil {
		return
	}
	payload, _ := json.Marshal(map[string]string{
		"kind":      kind,
		"reference": reference,
	})
	if err := u.publisher.Publish(TopicInventoryAlert, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error publish alert %s for %s: %v", kind, reference, err))
	}
}

func (u *usecase) publishReconcileRetry(ctx context.Context, mtid string) {
	if u.publisher == nil {
		return
	}
	payload, _ := json.Marshal(request.ReconcileTask{MerchantTransactionID: mtid})
	if err := u.publisher.Publish(TopicReconcilePayment, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error publish reconcile retry for %s: %v", mtid, err))
	}
}
