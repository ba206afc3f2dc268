// Package task runs one-shot batch jobs on a bounded queue drained by a fixed
// pool of workers: counting words in a text stream and searching a range for
// primes. Every job honors context cancellation.
package task
