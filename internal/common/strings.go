package common

// UnknownStr is the name printed for out of range enum values.
const UnknownStr = "unknown"
