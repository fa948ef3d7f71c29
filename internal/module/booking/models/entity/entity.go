package entity

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	ResourceTypeRoomType = "room_type"
	ResourceTypeService  = "service"
)

const (
	HoldKindHotelRoom = "hotel_room"
	HoldKindService   = "service"
)

const (
	HoldStatusActive    = "active"
	HoldStatusExpired   = "expired"
	HoldStatusConverted = "converted"
	HoldStatusCancelled = "cancelled"
)

const (
	BookingStatusPendingPayment = "PENDING_PAYMENT"
	BookingStatusConfirmed      = "CONFIRMED"
	BookingStatusFailed         = "FAILED"
)

const (
	PaymentStatusInitiated = "INITIATED"
	PaymentStatusPaid      = "PAID"
	PaymentStatusFailed    = "FAILED"
)

// Gateway result codes as reported by the PhonePe status endpoint.
const (
	GatewayCodeSuccess          = "PAYMENT_SUCCESS"
	GatewayCodePending          = "PAYMENT_PENDING"
	GatewayCodeError            = "PAYMENT_ERROR"
	GatewayCodeNotFound         = "TRANSACTION_NOT_FOUND"
	GatewayCodeFailure          = "PAYMENT_FAILURE"
	GatewayCodeTimedOut         = "TIMED_OUT"
	GatewayCodeDeclined         = "PAYMENT_DECLINED"
	GatewayCodeCardNotSupported = "CARD_NOT_SUPPORTED"
	GatewayCodeBankOffline      = "BANK_OFFLINE"
)

const (
	AdjustmentTypeBooking      = "booking"
	AdjustmentTypeCancellation = "cancellation"
	AdjustmentTypeBlock        = "block"
	AdjustmentTypeUnblock      = "unblock"
	AdjustmentTypeMaintenance  = "maintenance"
)

// InventoryDay is the per-resource, per-date capacity counter triple.
// booked and blocked only move at booking confirmation or manual blocking;
// holds never touch these counters.
type InventoryDay struct {
	ID            int64     `db:"id"`
	ResourceType  string    `db:"resource_type"`
	ResourceID    int64     `db:"resource_id"`
	Date          time.Time `db:"date"`
	TotalCapacity int       `db:"total_capacity"`
	Booked        int       `db:"booked"`
	Blocked       int       `db:"blocked"`
}

func (d InventoryDay) Available() int {
	return d.TotalCapacity - d.Booked - d.Blocked
}

// Hold is a time-boxed, price-locked claim on inventory. It records price
// and intent only; capacity is re-validated at conversion time.
type Hold struct {
	ID          uuid.UUID       `db:"id"`
	SessionID   string          `db:"session_id"`
	UserID      sql.NullInt64   `db:"user_id"`
	Kind        string          `db:"kind"`
	RoomTypeID  sql.NullInt64   `db:"room_type_id"`
	ServiceID   sql.NullInt64   `db:"service_id"`
	Date        time.Time       `db:"date"`
	Quantity    int             `db:"quantity"`
	LockedPrice sql.NullFloat64 `db:"locked_price"`
	Status      string          `db:"status"`
	ExpiresAt   time.Time       `db:"expires_at"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   sql.NullTime    `db:"updated_at"`
}

// ResourceType maps the hold kind onto the inventory resource type.
func (h Hold) ResourceType() string {
	if h.Kind == HoldKindHotelRoom {
		return ResourceTypeRoomType
	}
	return ResourceTypeService
}

func (h Hold) ResourceID() int64 {
	if h.Kind == HoldKindHotelRoom {
		return h.RoomTypeID.Int64
	}
	return h.ServiceID.Int64
}

type Booking struct {
	ID                  uuid.UUID      `db:"id"`
	UserID              sql.NullInt64  `db:"user_id"`
	GuestName           string         `db:"guest_name"`
	GuestEmail          string         `db:"guest_email"`
	GuestPhone          string         `db:"guest_phone"`
	PackageID           sql.NullInt64  `db:"package_id"`
	PackageCategoryID   sql.NullInt64  `db:"package_category_id"`
	ServiceID           sql.NullInt64  `db:"service_id"`
	HotelRoomTypeID     sql.NullInt64  `db:"hotel_room_type_id"`
	StartDate           time.Time      `db:"start_date"`
	EndDate             time.Time      `db:"end_date"`
	TotalPeople         int            `db:"total_people"`
	TotalAmount         float64        `db:"total_amount"`
	SpecialRequests     sql.NullString `db:"special_requests"`
	Status              string         `db:"status"`
	PaymentStatus       string         `db:"payment_status"`
	ProviderReferenceID sql.NullString `db:"provider_reference_id"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           sql.NullTime   `db:"updated_at"`
}

// IsTerminal reports whether no further payment signal may change the
// booking. CONFIRMED and FAILED are immutable.
func (b Booking) IsTerminal() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusFailed
}

// BookingItem is the line item linking a booking to the resource, quantity,
// price and date it sold.
type BookingItem struct {
	ID           int64     `db:"id"`
	BookingID    uuid.UUID `db:"booking_id"`
	ResourceType string    `db:"resource_type"`
	ResourceID   int64     `db:"resource_id"`
	Date         time.Time `db:"date"`
	Quantity     int       `db:"quantity"`
	UnitPrice    float64   `db:"unit_price"`
	CreatedAt    time.Time `db:"created_at"`
}

// PaymentAttempt decouples "we asked the gateway to charge" from "we have a
// booking row": hold flows only create the booking on confirmed success.
type PaymentAttempt struct {
	ID                    int64          `db:"id"`
	MerchantTransactionID string         `db:"merchant_transaction_id"`
	BookingID             uuid.NullUUID  `db:"booking_id"`
	HoldID                uuid.NullUUID  `db:"hold_id"`
	AmountMinorUnits      int64          `db:"amount_minor_units"`
	Status                string         `db:"status"`
	GuestName             string         `db:"guest_name"`
	GuestEmail            string         `db:"guest_email"`
	GuestPhone            string         `db:"guest_phone"`
	SpecialRequests       sql.NullString `db:"special_requests"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             sql.NullTime   `db:"updated_at"`
}

// InventoryAdjustment is an append-only audit row; never updated or deleted.
type InventoryAdjustment struct {
	ID             int64          `db:"id"`
	AdjustmentType string         `db:"adjustment_type"`
	ReferenceType  sql.NullString `db:"reference_type"`
	ReferenceID    sql.NullString `db:"reference_id"`
	ResourceType   string         `db:"resource_type"`
	ResourceID     int64          `db:"resource_id"`
	Date           time.Time      `db:"date"`
	QuantityChange int            `db:"quantity_change"`
	Reason         sql.NullString `db:"reason"`
	PerformedBy    sql.NullString `db:"performed_by"`
	CreatedAt      time.Time      `db:"created_at"`
}
