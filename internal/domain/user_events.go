package domain

type EventUserRegistered struct {
	UserID int64
	Email  string
}

type EventUserCreated struct {
	UserID int64
	Email  string
}

type EventUserDeleted struct {
	UserID int64
}

type EventUsersPurged struct {
	Count int64
}
