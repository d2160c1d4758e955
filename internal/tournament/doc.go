// Package tournament provides types and functions for managing NTTB tournament records.
//
// The tournament package handles record representation, identity, and in-pass
// deduplication. Each record is assigned a deterministic SHA1-based fingerprint
// computed from its normalized name, start date, and location, enabling reliable
// reconciliation of repeated observations of the same real-world tournament
// across scrape passes.
package tournament
