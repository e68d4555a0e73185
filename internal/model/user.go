package model

import "time"

// User represents a staff or player account as stored in the `users`
// table. Staff users sign in with OTP; player users only appear here
// as booking participants and stats mapping targets.
//
// Fields:
//  ID        – primary key identifier.
//  Mobile    – unique mobile number, the login identity.
//  FirstName – given name.
//  LastName  – family name.
//  Role      – role name, see the roles package for the closed set.
//  IsActive  – whether the account may sign in or be booked.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type User struct {
	ID        uint64    // users.id
	Mobile    string    // users.mobile
	FirstName string    // users.first_name
	LastName  string    // users.last_name
	Role      string    // users.role
	IsActive  bool      // users.is_active
	CreatedAt time.Time // users.created_at
	UpdatedAt time.Time // users.updated_at
}
