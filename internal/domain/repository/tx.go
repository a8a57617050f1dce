package repository

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Users      UserRepository
	Invites    InviteTokenRepository
	Payments   PaymentRepository
	Charges    ChargeRepository
	Attendance AttendanceRepository
	Inventory  InventoryRepository
}
