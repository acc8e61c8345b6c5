// Package diagnostic collects structured errors and warnings produced while
// validating and applying binding documents.
package diagnostic
