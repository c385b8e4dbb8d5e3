// Package verify replays a template descriptor over its image so an operator
// can confirm every box lines up with the printed form.
//
// Boxes are always drawn on the original-resolution image, then the finished
// overlay is scaled for display. Exported overlays therefore carry the exact
// pixels a downstream cropper would use.
//
// # Controls
//
//   - a / A / Left: highlight the previous rectangle
//   - d / D / Right: highlight the next rectangle
//   - e: export the overlay (only when enabled)
//   - o: OCR the highlighted rectangle (only when enabled)
//   - q / Esc: quit
//
// Highlight movement wraps at both ends.
//
// # Size Mismatch
//
// A descriptor is only valid for an image of the recorded width and height.
// When the image differs, a warning is logged and shown in the window, and
// the rectangles are still drawn at their stored coordinates.
package verify
