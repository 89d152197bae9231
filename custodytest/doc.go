/*
Package custodytest provides helpers for testing code that is using the
custody framework: deterministic addresses, a static authenticator, a fixed
clock and sinks that record or reject what they receive.
*/
package custodytest
