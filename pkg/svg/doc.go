// Package svg builds SVG documents as element trees.
//
// Every text node and attribute value is escaped when the tree is written, so
// callers can interpolate user-supplied strings (usernames, quotes, colors)
// without producing markup injection:
//
//	root := svg.Doc(495, 195)
//	root.Add(svg.E("text").Attr("x", 25).Attr("y", 35).Add(svg.Text(title)))
//	out := root.String()
//
// Attributes keep their insertion order, which makes output byte-for-byte
// deterministic for identical input.
package svg
