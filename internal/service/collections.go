package service

// Collection names in the document store.
const (
	ColUsers         = "users"
	ColRooms         = "rooms"
	ColBuildings     = "buildings"
	ColContracts     = "contracts"
	ColReservations  = "reservations"
	ColPayments      = "payments"
	ColMaintenance   = "maintenance"
	ColAnnouncements = "announcements"
)
