// Package detection finds printed table rules on a template image so that
// gridline clicks can be snapped onto them.
//
// # Algorithm Overview
//
//  1. Binarise: convert to grayscale and threshold with bild, so every pixel
//     is either ink or paper
//  2. Profile: count ink pixels in every column and every row
//  3. Snap: within a search radius around a clicked coordinate, pick the
//     column (or row) with the most ink, provided it covers at least the
//     minimum fraction of the image
//
// # Coordinate System
//
// All coordinates are original-image pixels relative to the image's top-left
// corner. Snapping happens after clicks have been rescaled from the display
// copy, so the radius is measured in original pixels as well.
//
// # Limitations
//
// The profile assumes the rules run the full width or height of the form and
// that the scan is reasonably straight. Skewed photographs spread a rule over
// several columns; the coverage test then fails and the click is kept as is.
package detection
