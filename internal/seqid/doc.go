// Package seqid assigns the human-readable sequential identifiers carried by
// every aggregate (uid, fid, oid, did, rid, cid).
//
// An identifier is the UTC creation day formatted as YYYYMMDD followed by a
// counter that starts at 001 each day, per kind. The counter is derived from
// the highest identifier already persisted for the day, so the store's
// unique constraint on the identifier column is the only guard against two
// concurrent creators computing the same value.
package seqid
