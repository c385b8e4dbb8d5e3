// Package geometry holds the pixel-space types shared by the annotator and the
// verifier, and the conversions between a template image and its screen-fitted
// display copy.
//
// # Coordinate System
//
// All coordinates are 0-based integers with (0,0) at the top-left corner of the
// original template image. A Rect is stored as origin plus size (x, y, w, h), the
// same shape it has in the JSON descriptor.
//
// # Display Scaling
//
// Interactive collection happens on a copy of the template scaled uniformly to fit
// the configured display caps. The same factor is used for both axes so boxes are
// never distorted, and images smaller than the caps are never upscaled. Every
// coordinate read from the display copy goes through ToOriginal before it is
// stored.
package geometry
