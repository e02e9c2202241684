package version

// RevisionFrom exposes revision to external tests.
var RevisionFrom = revision
