// Package audit provides audit logging for security-relevant operations.
//
// Events cover authentication attempts, account registration and every
// change to the role/permission graph. Each event is written to stdout
// in RFC5424 syslog format and, when AUDIT_DATABASE_URL is set, also
// persisted to a messages table for later review.
//
// # Usage
//
//	audit.Log(audit.AuthenticateEvent{
//	    Username: "admin",
//	    ClientIP: ip,
//	    Success:  true,
//	})
//
// Audit logging is on by default and can be disabled with
// LMS_AUDIT_ENABLED=false.
package audit
