// Package annotate collects the regions of interest of a form template from
// an operator.
//
// A session has two phases run against a display-fitted copy of the template:
//
//  1. Header fields: the operator drags one box per header field, in layout
//     order. The number of boxes must match the number of fields exactly.
//  2. Table gridlines: the operator clicks every vertical gridline, then every
//     horizontal gridline. Clicks may come in any order; the coordinates are
//     sorted before cells are derived.
//
// Every coordinate is rescaled to original pixels before it is stored, and
// the resulting descriptor is keyed to the original image size.
//
// Gridline count mismatches are warnings. Enter is refused while two clicks
// land on the same line, since that would make a cell with no area; the
// operator undoes or resets and finishes again. Too few vertical lines leave some
// columns without cells; that is reported as a *MissingColumnsError, which is
// fatal only when the layout asks for a strict grid.
package annotate
