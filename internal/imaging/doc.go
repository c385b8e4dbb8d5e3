// Package imaging provides the image operations behind the annotator and the
// verifier: loading template images, building display-fitted copies, drawing
// boxes, labels and guides, cropping single regions and writing overlays.
//
// All operations work with standard Go image.Image values and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive (top-left) and Max is exclusive (bottom-right),
//     matching image.Rectangle
//
// # Supported Formats
//
// Load decodes PNG, JPEG, GIF and WebP through github.com/disintegration/imaging,
// applying EXIF orientation so phone photos of a form come up upright. PDF
// templates are rasterised from their first page with go-fitz at a caller-chosen
// DPI. Save writes PNG, JPEG or WebP chosen by file extension.
//
// # Drawing
//
// Drawing helpers take a draw.Image and clip to its bounds, so callers may pass
// rectangles that touch or cross the border. Labels use the 7x13 basic font,
// scaled up by an integer factor so that they stay readable after the overlay
// is shrunk for display.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Regions outside image bounds or with no area
//   - File I/O errors during loading or saving
//   - Unsupported file extensions
package imaging
