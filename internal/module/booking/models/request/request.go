package request

type CheckAvailability struct {
	Type             string `json:"type" validate:"required,oneof=hotel_room service"`
	RoomTypeID       int64  `json:"room_type_id" validate:"required_if=Type hotel_room"`
	ServiceID        int64  `json:"service_id" validate:"required_if=Type service"`
	StartDate        string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          string `json:"end_date" validate:"required,datetime=2006-01-02"`
	RequiredRooms    int    `json:"required_rooms"`
	RequiredCapacity int    `json:"required_capacity"`
}

// RequiredQuantity collapses the two aliases the client may send.
func (r CheckAvailability) RequiredQuantity() int {
	if r.Type == "hotel_room" {
		return r.RequiredRooms
	}
	return r.RequiredCapacity
}

type CreateHold struct {
	SessionID   string  `json:"session_id" validate:"required"`
	UserID      int64   `json:"user_id"`
	Kind        string  `json:"kind" validate:"required,oneof=hotel_room service"`
	RoomTypeID  int64   `json:"room_type_id" validate:"required_if=Kind hotel_room"`
	ServiceID   int64   `json:"service_id" validate:"required_if=Kind service"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	LockedPrice float64 `json:"locked_price"`
	TTLMinutes  int     `json:"ttl_minutes"`
}

type GuestDetails struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// InitiatePayment starts the gateway flow. Either HoldID references an
// active hold, or the full direct-booking fields are present.
type InitiatePayment struct {
	SessionID         string       `json:"sessionId" validate:"required"`
	HoldID            string       `json:"holdId"`
	UserID            int64        `json:"userId"`
	PackageID         int64        `json:"packageId"`
	PackageCategoryID int64        `json:"packageCategoryId"`
	ServiceID         int64        `json:"serviceId"`
	HotelRoomTypeID   int64        `json:"hotelRoomTypeId"`
	StartDate         string       `json:"startDate"`
	EndDate           string       `json:"endDate"`
	TotalPeople       int          `json:"totalPeople"`
	Quantity          int          `json:"quantity"`
	Amount            float64      `json:"amount" validate:"required,gt=0"`
	GuestDetails      GuestDetails `json:"guestDetails" validate:"required"`
	SpecialRequests   string       `json:"specialRequests"`
	MobileNumber      string       `json:"mobileNumber"`
}

type PhonePeCallback struct {
	Response string `json:"response" validate:"required,base64"`
}

type BlockCapacity struct {
	ResourceType string `json:"resource_type" validate:"required,oneof=room_type service"`
	ResourceID   int64  `json:"resource_id" validate:"required"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
	Reason       string `json:"reason" validate:"required"`
	PerformedBy  string `json:"performed_by"`
}

type ExpireHoldTask struct {
	HoldID string `json:"hold_id" validate:"required"`
}

type ReconcileTask struct {
	MerchantTransactionID string `json:"merchant_transaction_id" validate:"required"`
}

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target" validate:"required"`
	ErrorMsg    string      `json:"error_msg" validate:"required"`
	Payload     interface{} `json:"payload" validate:"required"`
}
