// Package dates provides calendar arithmetic on civil dates: month addition
// with day clamping, age breakdowns, birthday countdowns, meeting end times and
// time zone conversion.
//
// Civil dates are represented as time.Time values at midnight UTC; only the
// year, month and day are significant.
package dates
