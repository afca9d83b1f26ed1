package models

// DailySummaryRow is one booking line in a day overview.
type DailySummaryRow struct {
	BookingID    string `json:"bookingId"`
	StartsAt     string `json:"startsAt"`
	EndsAt       string `json:"endsAt"`
	ServiceName  string `json:"serviceName"`
	CustomerName string `json:"customerName"`
	StaffID      string `json:"staffId,omitempty"`
	Status       string `json:"status"`
}

// WeekOverview counts bookings per calendar day of one week. Days are keyed
// "YYYY-MM-DD" in the business timezone.
type WeekOverview struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Days  map[string]int `json:"days"`
	Total int            `json:"total"`
}

// RevenueReport aggregates completed/confirmed booking revenue and paid
// invoices over a period.
type RevenueReport struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	BookingRevenue  float64 `json:"bookingRevenue"`
	InvoicedTotal   float64 `json:"invoicedTotal"`
	PaidTotal       float64 `json:"paidTotal"`
	OutstandingOpen float64 `json:"outstandingOpen"`
	Currency        string  `json:"currency"`
}

// BookingStats counts bookings per lifecycle status over a period.
type BookingStats struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	ByStatus map[string]int `json:"byStatus"`
	Total    int            `json:"total"`
}

// NoShowReport summarizes missed appointments per customer.
type NoShowReport struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Total   int               `json:"total"`
	Repeats []NoShowRepeatRow `json:"repeats,omitempty"`
}

// NoShowRepeatRow is a customer with more than one no-show in the period.
type NoShowRepeatRow struct {
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
	Count        int    `json:"count"`
}
