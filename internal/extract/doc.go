// Package extract turns per-page document text into task records.
//
// Pages are split on task markers ("Task 1.01"), each marker's following
// text yields a title line and a block of labeled fields, and task numbers
// are deduplicated across the whole run with the first occurrence winning.
// Scanning a page is pure; deduplication and ordering happen in a single
// sequential merge over pages in page order.
package extract
