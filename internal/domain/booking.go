package domain

// BookingStatus mirrors the backend's numeric status code.
type BookingStatus int

const (
	BookingCancelled BookingStatus = 0
	BookingPending   BookingStatus = 1
	BookingConfirmed BookingStatus = 2
	BookingInUse     BookingStatus = 3
	BookingCompleted BookingStatus = 4
	BookingOverdue   BookingStatus = 5
)

var bookingStatusLabels = map[BookingStatus]string{
	BookingCancelled: "Đã hủy",
	BookingPending:   "Chờ xác nhận",
	BookingConfirmed: "Đã xác nhận",
	BookingInUse:     "Đang sử dụng",
	BookingCompleted: "Hoàn thành",
	BookingOverdue:   "Quá hạn",
}

func (s BookingStatus) Label() string {
	if l, ok := bookingStatusLabels[s]; ok {
		return l
	}
	return "Không xác định"
}

// PaymentStatus mirrors the backend's numeric payment code.
type PaymentStatus int

const (
	PaymentDeposit PaymentStatus = 0
	PaymentUnpaid  PaymentStatus = 1
	PaymentPaid    PaymentStatus = 2
)

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentDeposit: "Đặt cọc",
	PaymentUnpaid:  "Chưa thanh toán",
	PaymentPaid:    "Đã thanh toán",
}

func (s PaymentStatus) Label() string {
	if l, ok := paymentStatusLabels[s]; ok {
		return l
	}
	return "Không xác định"
}

// BookingLineItem is one room or service line inside a booking.
type BookingLineItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Booking is mostly an opaque passthrough; only the fields that drive
// presentation are typed, the rest travels in Raw untouched.
type Booking struct {
	ID           int64             `json:"id"`
	Status       BookingStatus     `json:"status"`
	StatusLabel  string            `json:"statusLabel"`
	Payment      PaymentStatus     `json:"payment"`
	PaymentLabel string            `json:"paymentLabel"`
	CheckIn      string            `json:"checkIn,omitempty"`
	CheckOut     string            `json:"checkOut,omitempty"`
	Total        float64           `json:"total"`
	RoomItems    []BookingLineItem `json:"roomItems,omitempty"`
	ServiceItems []BookingLineItem `json:"serviceItems,omitempty"`
	Raw          map[string]any    `json:"raw,omitempty"`
}
