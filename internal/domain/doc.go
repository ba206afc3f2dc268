// Package domain contains the entities, value objects and rules behind every
// lesson model: the todo list, the blog, the bank ledger, the crew roster, the
// book catalogue, student records and the shopping cart. It has no knowledge
// of storage or delivery.
package domain
