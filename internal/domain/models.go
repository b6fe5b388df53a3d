package domain

// Models lists every persisted entity in dependency order for AutoMigrate.
func Models() []any {
	return []any{
		&User{},
		&Hostel{},
		&Room{},
		&Booking{},
		&Payment{},
		&Salary{},
		&Expense{},
		&Notification{},
	}
}
