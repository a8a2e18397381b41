package domain

import "time"

// AuthEventType identifies a credential lifecycle transition worth auditing.
type AuthEventType string

const (
	AuthEventLogin    AuthEventType = "login"
	AuthEventRegister AuthEventType = "register"
	AuthEventLogout   AuthEventType = "logout"
)

// AuthEvent records a single auth transition for the audit trail. Subject is
// the account email; events for the same subject are processed in order.
type AuthEvent struct {
	Type      AuthEventType
	Subject   string
	Role      Role
	RemoteIP  string
	Timestamp time.Time
}
