package repositories

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"travel-booking-service/config"
	"travel-booking-service/internal/module/booking/models/entity"
	"travel-booking-service/internal/pkg/errors"
	"travel-booking-service/internal/pkg/signature"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type repositories struct {
	db          *sqlx.DB
	log         *otelzap.Logger
	httpClient  *circuit.HTTPClient
	redisClient *redis.Client
	cfgPhonePe  *config.PhonePeConfig
}

type Repositories interface {
	// inventory
	GetInventoryDays(ctx context.Context, resourceType string, resourceID int64, start, end time.Time) ([]entity.InventoryDay, error)
	BlockCapacity(ctx context.Context, adjType, resourceType string, resourceID int64, dates []time.Time, quantityChange int, reason, performedBy string) error
	OverbookingDays(ctx context.Context) ([]entity.InventoryDay, error)
	LowAvailabilityDays(ctx context.Context, threshold float64) ([]entity.InventoryDay, error)
	// holds
	InsertHold(ctx context.Context, hold entity.Hold) error
	FindHoldByID(ctx context.Context, holdID string) (entity.Hold, error)
	FindActiveHoldsBySession(ctx context.Context, sessionID string, now time.Time) ([]entity.Hold, error)
	CancelActiveHoldsBySession(ctx context.Context, sessionID string) (int64, error)
	UpdateHoldStatus(ctx context.Context, holdID string, newStatus string) error
	ExtendHold(ctx context.Context, holdID string, newExpiry time.Time) error
	ExpireOverdueHolds(ctx context.Context, now time.Time) (int64, error)
	ConvertHoldToBooking(ctx context.Context, hold entity.Hold, booking entity.Booking) error
	// bookings
	InsertBooking(ctx context.Context, booking entity.Booking) error
	FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error)
	UpdateBookingPayment(ctx context.Context, bookingID, status, paymentStatus, providerReferenceID string) error
	// payment attempts
	InsertPaymentAttempt(ctx context.Context, attempt entity.PaymentAttempt) error
	FindPaymentAttemptByMTID(ctx context.Context, mtid string) (entity.PaymentAttempt, error)
	UpdatePaymentAttemptStatus(ctx context.Context, mtid, status string) error
	AttachBookingToAttempt(ctx context.Context, mtid, bookingID string) error
	// redis
	CacheActiveHold(ctx context.Context, sessionID, holdID string, ttl time.Duration) error
	DropCachedActiveHold(ctx context.Context, sessionID string) error
	// gateway
	PayGateway(ctx context.Context, mtid string, amountMinorUnits int64, mobileNumber string) (string, error)
	GetGatewayStatus(ctx context.Context, mtid string) (string, string, error)
}

func New(db *sqlx.DB, log *otelzap.Logger, httpClient *circuit.HTTPClient, redisClient *redis.Client, cfgPhonePe *config.PhonePeConfig) Repositories {
	return &repositories{
		db:          db,
		log:         log,
		httpClient:  httpClient,
		redisClient: redisClient,
		cfgPhonePe:  cfgPhonePe,
	}
}

// GetInventoryDays implements Repositories. An unknown resource simply
// yields no rows; callers treat that as unavailable.
func (r *repositories) GetInventoryDays(ctx context.Context, resourceType string, resourceID int64, start, end time.Time) ([]entity.InventoryDay, error) {
	query := `SELECT id, resource_type, resource_id, date, total_capacity, booked, blocked
		FROM inventory_days
		WHERE resource_type = $1 AND resource_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date`
	var days []entity.InventoryDay
	err := r.db.SelectContext(ctx, &days, query, resourceType, resourceID, start, end)
	if err != nil {
		return nil, errors.InternalServerError("error get inventory days")
	}
	return days, nil
}

// BlockCapacity implements Repositories. The counter move and the ledger row
// commit together; a block without its audit row is worse than no block.
func (r *repositories) BlockCapacity(ctx context.Context, adjType, resourceType string, resourceID int64, dates []time.Time, quantityChange int, reason, performedBy string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.InternalServerError("error starting transaction")
	}
	defer tx.Rollback()

	for _, date := range dates {
		res, err := tx.ExecContext(ctx, `
			UPDATE inventory_days SET blocked = blocked + $1
			WHERE resource_type = $2 AND resource_id = $3 AND date = $4`,
			quantityChange, resourceType, resourceID, date)
		if err != nil {
			return errors.InternalServerError("error updating blocked capacity")
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return errors.NotFound("inventory day not found")
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO inventory_adjustments
				(adjustment_type, reference_type, resource_type, resource_id, date, quantity_change, reason, performed_by, created_at)
			VALUES ($1, 'manual', $2, $3, $4, $5, $6, $7, NOW())`,
			adjType, resourceType, resourceID, date, quantityChange, reason, performedBy)
		if err != nil {
			return errors.InternalServerError("error inserting inventory adjustment")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.InternalServerError("error committing transaction")
	}
	return nil
}

// OverbookingDays implements Repositories.
func (r *repositories) OverbookingDays(ctx context.Context) ([]entity.InventoryDay, error) {
	query := `SELECT id, resource_type, resource_id, date, total_capacity, booked, blocked
		FROM inventory_days
		WHERE booked + blocked > total_capacity
		ORDER BY date`
	var days []entity.InventoryDay
	if err := r.db.SelectContext(ctx, &days, query); err != nil {
		return nil, errors.InternalServerError("error get overbooking days")
	}
	return days, nil
}

// LowAvailabilityDays implements Repositories.
func (r *repositories) LowAvailabilityDays(ctx context.Context, threshold float64) ([]entity.InventoryDay, error) {
	query := `SELECT id, resource_type, resource_id, date, total_capacity, booked, blocked
		FROM inventory_days
		WHERE total_capacity > 0
		  AND (total_capacity - booked - blocked)::float / total_capacity <= $1
		ORDER BY date`
	var days []entity.InventoryDay
	if err := r.db.SelectContext(ctx, &days, query, threshold); err != nil {
		return nil, errors.InternalServerError("error get low availability days")
	}
	return days, nil
}

// InsertHold implements Repositories.
func (r *repositories) InsertHold(ctx context.Context, hold entity.Hold) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO holds
			(id, session_id, user_id, kind, room_type_id, service_id, date, quantity, locked_price, status, expires_at, created_at)
		VALUES (:id, :session_id, :user_id, :kind, :room_type_id, :service_id, :date, :quantity, :locked_price, :status, :expires_at, NOW())`,
		hold)
	if err != nil {
		return errors.InternalServerError("error inserting hold")
	}
	return nil
}

// FindHoldByID implements Repositories.
func (r *repositories) FindHoldByID(ctx context.Context, holdID string) (entity.Hold, error) {
	query := `SELECT id, session_id, user_id, kind, room_type_id, service_id, date, quantity, locked_price, status, expires_at, created_at, updated_at
		FROM holds WHERE id = $1`
	var hold entity.Hold
	err := r.db.GetContext(ctx, &hold, query, holdID)
	if err == sql.ErrNoRows {
		return entity.Hold{}, errors.NotFound("hold not found")
	}
	if err != nil {
		return entity.Hold{}, errors.InternalServerError("error find hold by id")
	}
	return hold, nil
}

// FindActiveHoldsBySession implements Repositories. Expiry is lazy: the
// predicate on expires_at makes an overdue-but-unswept hold invisible here.
func (r *repositories) FindActiveHoldsBySession(ctx context.Context, sessionID string, now time.Time) ([]entity.Hold, error) {
	query := `SELECT id, session_id, user_id, kind, room_type_id, service_id, date, quantity, locked_price, status, expires_at, created_at, updated_at
		FROM holds
		WHERE session_id = $1 AND status = 'active' AND expires_at > $2
		ORDER BY created_at DESC`
	var holds []entity.Hold
	if err := r.db.SelectContext(ctx, &holds, query, sessionID, now); err != nil {
		return nil, errors.InternalServerError("error find active holds by session")
	}
	return holds, nil
}

// CancelActiveHoldsBySession implements Repositories. Last hold wins per
// session: creating a new hold supersedes anything still active.
func (r *repositories) CancelActiveHoldsBySession(ctx context.Context, sessionID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE holds SET status = 'cancelled', updated_at = NOW()
		WHERE session_id = $1 AND status = 'active'`,
		sessionID)
	if err != nil {
		return 0, errors.InternalServerError("error cancel active holds by session")
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

// UpdateHoldStatus implements Repositories. The WHERE clause only matches
// active holds, so a transition out of a terminal state is a silent no-op.
func (r *repositories) UpdateHoldStatus(ctx context.Context, holdID string, newStatus string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE holds SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'active'`,
		holdID, newStatus)
	if err != nil {
		return errors.InternalServerError("error update hold status")
	}
	return nil
}

// ExtendHold implements Repositories. Only an active hold can be extended.
func (r *repositories) ExtendHold(ctx context.Context, holdID string, newExpiry time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE holds SET expires_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'active'`,
		holdID, newExpiry)
	if err != nil {
		return errors.InternalServerError("error extend hold")
	}
	return nil
}

// ExpireOverdueHolds implements Repositories. Single bulk statement; safe to
// run concurrently since it only narrows active to expired.
func (r *repositories) ExpireOverdueHolds(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE holds SET status = 'expired', updated_at = NOW()
		WHERE status = 'active' AND expires_at < $1`,
		now)
	if err != nil {
		return 0, errors.InternalServerError("error expire overdue holds")
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

// ConvertHoldToBooking implements Repositories. The one multi-statement
// transaction that is load-bearing: capacity re-check under row lock, then
// booking + line item + counter + ledger + hold flip commit together.
func (r *repositories) ConvertHoldToBooking(ctx context.Context, hold entity.Hold, booking entity.Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.InternalServerError("error starting transaction")
	}
	defer tx.Rollback()

	// Re-check hold state inside the transaction; a concurrent sweep or a
	// superseding hold may have already closed it.
	var status string
	err = tx.GetContext(ctx, &status, `SELECT status FROM holds WHERE id = $1 FOR UPDATE`, hold.ID)
	if err != nil {
		return errors.InternalServerError("error locking hold")
	}
	if status != entity.HoldStatusActive {
		return errors.Conflict("hold is not active")
	}

	// Capacity re-check under row lock. Holds never decremented counters, so
	// this is where first-confirmed-wins is decided.
	var day entity.InventoryDay
	err = tx.GetContext(ctx, &day, `
		SELECT id, resource_type, resource_id, date, total_capacity, booked, blocked
		FROM inventory_days
		WHERE resource_type = $1 AND resource_id = $2 AND date = $3
		FOR UPDATE`,
		hold.ResourceType(), hold.ResourceID(), hold.Date)
	if err == sql.ErrNoRows {
		return errors.Conflict("no capacity left for held inventory")
	}
	if err != nil {
		return errors.InternalServerError("error locking inventory day")
	}
	if day.Available() < hold.Quantity {
		return errors.Conflict("no capacity left for held inventory")
	}

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO bookings
			(id, user_id, guest_name, guest_email, guest_phone, package_id, package_category_id, service_id, hotel_room_type_id,
			 start_date, end_date, total_people, total_amount, special_requests, status, payment_status, provider_reference_id, created_at)
		VALUES (:id, :user_id, :guest_name, :guest_email, :guest_phone, :package_id, :package_category_id, :service_id, :hotel_room_type_id,
			 :start_date, :end_date, :total_people, :total_amount, :special_requests, :status, :payment_status, :provider_reference_id, NOW())`,
		booking); err != nil {
		return errors.InternalServerError("error inserting booking")
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO booking_items (booking_id, resource_type, resource_id, date, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		booking.ID, hold.ResourceType(), hold.ResourceID(), hold.Date, hold.Quantity, hold.LockedPrice.Float64); err != nil {
		return errors.InternalServerError("error inserting booking item")
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE inventory_days SET booked = booked + $1 WHERE id = $2`,
		hold.Quantity, day.ID); err != nil {
		return errors.InternalServerError("error incrementing booked capacity")
	}

	adj := entity.InventoryAdjustment{
		AdjustmentType: entity.AdjustmentTypeBooking,
		ReferenceType:  sql.NullString{String: "booking", Valid: true},
		ReferenceID:    sql.NullString{String: booking.ID.String(), Valid: true},
		ResourceType:   hold.ResourceType(),
		ResourceID:     hold.ResourceID(),
		Date:           hold.Date,
		QuantityChange: hold.Quantity,
	}
	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO inventory_adjustments
			(adjustment_type, reference_type, reference_id, resource_type, resource_id, date, quantity_change, created_at)
		VALUES (:adjustment_type, :reference_type, :reference_id, :resource_type, :resource_id, :date, :quantity_change, NOW())`,
		adj); err != nil {
		return errors.InternalServerError("error inserting inventory adjustment")
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE holds SET status = 'converted', updated_at = NOW() WHERE id = $1`,
		hold.ID); err != nil {
		return errors.InternalServerError("error marking hold converted")
	}

	if err := tx.Commit(); err != nil {
		return errors.InternalServerError("error committing transaction")
	}
	return nil
}

// InsertBooking implements Repositories.
func (r *repositories) InsertBooking(ctx context.Context, booking entity.Booking) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO bookings
			(id, user_id, guest_name, guest_email, guest_phone, package_id, package_category_id, service_id, hotel_room_type_id,
			 start_date, end_date, total_people, total_amount, special_requests, status, payment_status, provider_reference_id, created_at)
		VALUES (:id, :user_id, :guest_name, :guest_email, :guest_phone, :package_id, :package_category_id, :service_id, :hotel_room_type_id,
			 :start_date, :end_date, :total_people, :total_amount, :special_requests, :status, :payment_status, :provider_reference_id, NOW())`,
		booking)
	if err != nil {
		return errors.InternalServerError("error inserting booking")
	}
	return nil
}

// FindBookingByID implements Repositories.
func (r *repositories) FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error) {
	query := `SELECT id, user_id, guest_name, guest_email, guest_phone, package_id, package_category_id, service_id, hotel_room_type_id,
			start_date, end_date, total_people, total_amount, special_requests, status, payment_status, provider_reference_id, created_at, updated_at
		FROM bookings WHERE id = $1`
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, query, bookingID)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		return entity.Booking{}, errors.InternalServerError("error find booking by id")
	}
	return booking, nil
}

// UpdateBookingPayment implements Repositories. The guard on status keeps
// CONFIRMED and FAILED immutable at the storage layer as well.
func (r *repositories) UpdateBookingPayment(ctx context.Context, bookingID, status, paymentStatus, providerReferenceID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET status = $2, payment_status = $3, provider_reference_id = COALESCE(NULLIF($4, ''), provider_reference_id), updated_at = NOW()
		WHERE id = $1 AND status NOT IN ('CONFIRMED', 'FAILED')`,
		bookingID, status, paymentStatus, providerReferenceID)
	if err != nil {
		return errors.InternalServerError("error update booking payment")
	}
	return nil
}

// InsertPaymentAttempt implements Repositories.
func (r *repositories) InsertPaymentAttempt(ctx context.Context, attempt entity.PaymentAttempt) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO payment_attempts
			(merchant_transaction_id, booking_id, hold_id, amount_minor_units, status, guest_name, guest_email, guest_phone, special_requests, created_at)
		VALUES (:merchant_transaction_id, :booking_id, :hold_id, :amount_minor_units, :status, :guest_name, :guest_email, :guest_phone, :special_requests, NOW())`,
		attempt)
	if err != nil {
		return errors.InternalServerError("error inserting payment attempt")
	}
	return nil
}

// FindPaymentAttemptByMTID implements Repositories.
func (r *repositories) FindPaymentAttemptByMTID(ctx context.Context, mtid string) (entity.PaymentAttempt, error) {
	query := `SELECT id, merchant_transaction_id, booking_id, hold_id, amount_minor_units, status, guest_name, guest_email, guest_phone, special_requests, created_at, updated_at
		FROM payment_attempts WHERE merchant_transaction_id = $1`
	var attempt entity.PaymentAttempt
	err := r.db.GetContext(ctx, &attempt, query, mtid)
	if err == sql.ErrNoRows {
		return entity.PaymentAttempt{}, errors.NotFound("payment attempt not found")
	}
	if err != nil {
		return entity.PaymentAttempt{}, errors.InternalServerError("error find payment attempt")
	}
	return attempt, nil
}

// UpdatePaymentAttemptStatus implements Repositories.
func (r *repositories) UpdatePaymentAttemptStatus(ctx context.Context, mtid, status string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_attempts SET status = $2, updated_at = NOW()
		WHERE merchant_transaction_id = $1`,
		mtid, status)
	if err != nil {
		return errors.InternalServerError("error update payment attempt status")
	}
	return nil
}

// AttachBookingToAttempt implements Repositories.
func (r *repositories) AttachBookingToAttempt(ctx context.Context, mtid, bookingID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_attempts SET booking_id = $2, updated_at = NOW()
		WHERE merchant_transaction_id = $1`,
		mtid, bookingID)
	if err != nil {
		return errors.InternalServerError("error attach booking to payment attempt")
	}
	return nil
}

func sessionHoldKey(sessionID string) string {
	return fmt.Sprintf("session_hold:%s", sessionID)
}

// CacheActiveHold implements Repositories. The cache is advisory; the DB
// predicate on status and expires_at stays authoritative.
func (r *repositories) CacheActiveHold(ctx context.Context, sessionID, holdID string, ttl time.Duration) error {
	if err := r.redisClient.Set(ctx, sessionHoldKey(sessionID), holdID, ttl).Err(); err != nil {
		return errors.InternalServerError("error cache active hold")
	}
	return nil
}

// DropCachedActiveHold implements Repositories.
func (r *repositories) DropCachedActiveHold(ctx context.Context, sessionID string) error {
	if err := r.redisClient.Del(ctx, sessionHoldKey(sessionID)).Err(); err != nil {
		return errors.InternalServerError("error drop cached active hold")
	}
	return nil
}

func newGatewayRequest(ctx context.Context, method, rawURL string, body io.Reader, xVerify string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-VERIFY", xVerify)
	return req, nil
}

type phonePePayRequest struct {
	MerchantID            string               `json:"merchantId"`
	MerchantTransactionID string               `json:"merchantTransactionId"`
	MerchantUserID        string               `json:"merchantUserId"`
	Amount                int64                `json:"amount"`
	RedirectURL           string               `json:"redirectUrl"`
	RedirectMode          string               `json:"redirectMode"`
	CallbackURL           string               `json:"callbackUrl"`
	MobileNumber          string               `json:"mobileNumber,omitempty"`
	PaymentInstrument     phonePePayInstrument `json:"paymentInstrument"`
}

type phonePePayInstrument struct {
	Type string `json:"type"`
}

type phonePePayResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Data    struct {
		InstrumentResponse struct {
			RedirectInfo struct {
				URL string `json:"url"`
			} `json:"redirectInfo"`
		} `json:"instrumentResponse"`
	} `json:"data"`
}

type phonePeStatusResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Data    struct {
		TransactionID string `json:"transactionId"`
	} `json:"data"`
}

// PayGateway implements Repositories. Builds the signed pay request and
// returns the hosted-redirect URL.
func (r *repositories) PayGateway(ctx context.Context, mtid string, amountMinorUnits int64, mobileNumber string) (string, error) {
	payload := phonePePayRequest{
		MerchantID:            r.cfgPhonePe.MerchantID,
		MerchantTransactionID: mtid,
		MerchantUserID:        mtid,
		Amount:                amountMinorUnits,
		RedirectURL:           fmt.Sprintf("%s/bookings/check-payment-status?mtid=%s", r.cfgPhonePe.SiteURL, mtid),
		RedirectMode:          "REDIRECT",
		CallbackURL:           fmt.Sprintf("%s/bookings/phonepe-callback", r.cfgPhonePe.SiteURL),
		MobileNumber:          mobileNumber,
		PaymentInstrument:     phonePePayInstrument{Type: "PAY_PAGE"},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", errors.InternalServerError("error marshal gateway payload")
	}
	payloadB64 := base64.StdEncoding.EncodeToString(raw)

	payURL, err := url.Parse(r.cfgPhonePe.PayURL)
	if err != nil {
		return "", errors.InternalServerError("error parse gateway pay url")
	}
	xVerify := signature.Sign(payloadB64, payURL.Path, r.cfgPhonePe.SaltKey, r.cfgPhonePe.SaltIndex)

	body, err := json.Marshal(map[string]string{"request": payloadB64})
	if err != nil {
		return "", errors.InternalServerError("error marshal gateway body")
	}

	req, err := newGatewayRequest(ctx, "POST", r.cfgPhonePe.PayURL, bytes.NewReader(body), xVerify)
	if err != nil {
		return "", errors.InternalServerError("error build gateway request")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", errors.InternalServerError("error calling payment gateway")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.InternalServerError("error reading gateway response")
	}
	if resp.StatusCode != 200 {
		r.log.Ctx(ctx).Error(fmt.Sprintf("gateway pay rejected: status %d body %s", resp.StatusCode, respBody))
		return "", errors.InternalServerError("payment gateway rejected request")
	}

	var payResp phonePePayResponse
	if err := json.Unmarshal(respBody, &payResp); err != nil {
		return "", errors.InternalServerError("error decoding gateway response")
	}
	if !payResp.Success || payResp.Data.InstrumentResponse.RedirectInfo.URL == "" {
		r.log.Ctx(ctx).Error(fmt.Sprintf("gateway pay unsuccessful: code %s", payResp.Code))
		return "", errors.InternalServerError("payment gateway rejected request")
	}

	return payResp.Data.InstrumentResponse.RedirectInfo.URL, nil
}

// GetGatewayStatus implements Repositories. Returns the gateway's result
// code and its own transaction id. Transport errors come back as-is so the
// caller can tell "unreachable" apart from a definitive decline.
func (r *repositories) GetGatewayStatus(ctx context.Context, mtid string) (string, string, error) {
	path := fmt.Sprintf("/pg/v1/status/%s/%s", r.cfgPhonePe.MerchantID, mtid)
	xVerify := signature.SignStatusCheck(path, r.cfgPhonePe.SaltKey, r.cfgPhonePe.SaltIndex)

	req, err := newGatewayRequest(ctx, "GET", r.cfgPhonePe.StatusURLPrefix+path, nil, xVerify)
	if err != nil {
		return "", "", errors.InternalServerError("error build gateway status request")
	}
	req.Header.Set("X-MERCHANT-ID", r.cfgPhonePe.MerchantID)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	var statusResp phonePeStatusResponse
	if err := json.Unmarshal(respBody, &statusResp); err != nil {
		return "", "", errors.InternalServerError("error decoding gateway status response")
	}
	if statusResp.Code == "" {
		return "", "", errors.InternalServerError("gateway status response missing code")
	}

	return statusResp.Code, statusResp.Data.TransactionID, nil
}
