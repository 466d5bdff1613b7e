package domain

type MonthlyRevenue struct {
	Month        string `json:"month"`
	RevenueCents int64  `json:"revenue_cents"`
	Bookings     int64  `json:"bookings"`
}

type DashboardStats struct {
	TotalBookings         int64            `json:"total_bookings"`
	PendingBookings       int64            `json:"pending_bookings"`
	BookingsToday         int64            `json:"bookings_today"`
	ConfirmedRevenueCents int64            `json:"confirmed_revenue_cents"`
	UpcomingFlights       int64            `json:"upcoming_flights"`
	MonthlyRevenue        []MonthlyRevenue `json:"monthly_revenue"`
	RecentBookings        []Booking        `json:"recent_bookings"`
}
