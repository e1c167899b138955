// Package timezone pins every timestamp the service produces to the club
// timezone configured in APP_TIMEZONE (IANA names only, e.g. "Asia/Jakarta").
//
// Booking intervals arrive as RFC3339 and are compared as instants, but coach
// availability windows are weekday and minute-of-day values, so they are
// evaluated in GetLocation. Tests call Use to pin UTC.
package timezone
