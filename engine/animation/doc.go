// Package animation binds animation tracks to the objects they drive.
//
// A track names its destination with a list of target paths, resolved from a
// root object (usually a scene node) one step at a time. The object at the end
// of the path either receives the evaluated value as a plain property write,
// or is handed to a CurveValueAdapter which turns it into a Setter, for
// example one that pushes the value into a material uniform. Resolution and
// adapter lookups fail once, when the track is bound; Setters never fail.
package animation
