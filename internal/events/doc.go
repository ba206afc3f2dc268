// Package events provides a small in-process publish/subscribe mechanism.
//
// Services emit Events (the bank ledger emits one per account change and per
// transfer outcome) without knowing which handlers consume them; the bbolt
// event log is one such handler.
package events
