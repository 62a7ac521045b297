// Package organizer owns the in-memory folder collection and every operation that
// mutates it.
//
// A Store is created once at startup with Open and passed to whatever renders it.
// Operations run to completion under a mutex. Invalid input (blank names, unknown
// ids, out-of-range indexes, equal swap endpoints, forbidden operations on the
// Rewards folder) is a silent no-op: nothing changes and no error is returned.
// A successful mutation writes the whole collection through the Persister before
// the call returns, then notifies subscribers with the Change that happened.
//
// The only errors are persistence errors. When saving fails, the in-memory
// collection is left exactly as it was before the call.
package organizer
