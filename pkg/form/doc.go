// Package form is the metadata form system field widgets plug into.
//
// Field types register a Factory in a Registry. A Controller owns the current
// values of a form, builds fresh fields from bound Props on every render and
// applies user interactions through the UpdateValue callback it injects. Fields
// never hold state of their own; the controller re-renders them with updated
// props after each change.
package form
