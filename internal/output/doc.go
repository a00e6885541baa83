// Package output serializes extraction results: it checks the JSON envelope
// against a schema before it leaves the service and renders results as XLSX.
package output
