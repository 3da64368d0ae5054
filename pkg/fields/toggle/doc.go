// Package toggle implements the boolean metadata field: a switch whose label
// reports the current state as "Yes" or "No".
//
// In edit mode the label reads "<label> (<status>)", the standalone style
// variant is used and the control is wrapped in a row container with a fixed
// vertical margin. In search mode the switch is rendered alone with the
// compact variant. The field is controlled: it never changes its own value and
// reports user interaction through Props.UpdateValue.
package toggle
