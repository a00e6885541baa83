// Package document loads the text layer of uploaded documents as an ordered
// list of page strings. It performs no OCR and no layout reconstruction
// beyond joining text runs into lines.
package document
