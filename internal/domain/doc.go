// Package domain contains the entities produced by task extraction and the
// sentinel errors shared by the loader, extractor, service and HTTP layers.
// It has no dependencies on infrastructure or delivery mechanisms.
package domain
