package response

type PerDayAvailability struct {
	Date          string `json:"date"`
	TotalCapacity int    `json:"total_capacity"`
	Booked        int    `json:"booked"`
	Blocked       int    `json:"blocked"`
	Available     int    `json:"available"`
	Sufficient    bool   `json:"sufficient"`
}

type Availability struct {
	Available bool                 `json:"available"`
	Data      []PerDayAvailability `json:"data"`
}

type HoldCreated struct {
	HoldID    string `json:"hold_id"`
	ExpiresAt string `json:"expires_at"`
}

type ActiveHold struct {
	HoldID      string  `json:"hold_id"`
	Kind        string  `json:"kind"`
	ResourceID  int64   `json:"resource_id"`
	Date        string  `json:"date"`
	Quantity    int     `json:"quantity"`
	LockedPrice float64 `json:"locked_price,omitempty"`
	ExpiresAt   string  `json:"expires_at"`
}

type CleanupResult struct {
	Expired int64 `json:"expired"`
}

type PaymentInitiated struct {
	Success               bool   `json:"success"`
	RedirectURL           string `json:"redirectUrl"`
	MerchantTransactionID string `json:"merchantTransactionId"`
}

type PaymentStatus struct {
	BookingStatus        string `json:"bookingStatus"`
	PaymentStatus        string `json:"paymentStatus"`
	PhonePePaymentStatus string `json:"phonePePaymentStatus"`
}

type OverbookingDay struct {
	ResourceType  string `json:"resource_type"`
	ResourceID    int64  `json:"resource_id"`
	Date          string `json:"date"`
	TotalCapacity int    `json:"total_capacity"`
	Booked        int    `json:"booked"`
	Blocked       int    `json:"blocked"`
	Excess        int    `json:"excess"`
}

type LowAvailabilityDay struct {
	ResourceType  string  `json:"resource_type"`
	ResourceID    int64   `json:"resource_id"`
	Date          string  `json:"date"`
	TotalCapacity int     `json:"total_capacity"`
	Available     int     `json:"available"`
	Ratio         float64 `json:"ratio"`
}
