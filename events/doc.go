/*
Package events provides custody.EventSink implementations.

Sinks can be combined: Multi fans an event out to many sinks, Async moves
delivery to a background goroutine so that a slow consumer never blocks the
ledger. When the Async buffer is full the event is dropped and counted.
*/
package events
