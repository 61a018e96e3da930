// Package deduplication decides whether two articles collected
// independently represent the same story.
//
// # Overview
//
// The same story routinely arrives from several feeds at once: syndicated
// copies carry different tracking parameters on the URL, and different
// outlets reword the same headline. The engine rejects a candidate article
// when either signal matches something already accepted:
//
//  1. URL identity: the candidate's normalized URL was accepted before
//  2. Title similarity: some accepted title is similar at or above the
//     configured threshold
//
// # Architecture
//
// A Deduper owns the accept/reject history for one run: a set of
// normalized URLs and the ordered list of original titles accepted so far.
// Deduplicate performs one strictly sequential pass over a batch; accepted
// candidates are recorded before the next candidate is evaluated, so the
// first occurrence of a duplicated story always wins and the output order
// is the input order.
//
// The engine performs no I/O and never fails a batch. A URL that cannot
// be parsed is compared as a raw string rather than dropped; losing a
// legitimate article is worse than letting a duplicate through.
//
// # Configuration
//
// The defaults are tuned for daily news batches in the low hundreds:
//   - SimilarityThreshold: 0.85 (reworded duplicate headlines land above
//     this; genuinely distinct stories land below)
//   - StripParams: common tracking/campaign/click-id parameter names
//
// The title scan is O(accepted titles) per candidate and O(n²) per batch,
// which is fine at this scale. A shared-token pre-filter would be the
// first optimization if batches grew by an order of magnitude.
package deduplication
