// Package plans discovers dated planning documents, works out which ones have
// been replaced by later documents on the same topic, and stamps each one with
// a status header. Header detection is what makes repeated runs safe: a file
// that already carries the header is never rewritten.
package plans
