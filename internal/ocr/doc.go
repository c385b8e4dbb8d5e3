// Package ocr reads the text inside a single region of interest using Tesseract.
//
// The verifier uses it to preview what a downstream extractor would see in the
// highlighted field, which makes a box that clips a digit or includes a ruling
// line easy to spot before the descriptor is handed on.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Error Handling
//
// ReadRegion returns ErrRegion for regions that do not lie inside the image.
// Initialisation and recognition failures are returned as wrapped errors; the
// verifier logs them and keeps running.
package ocr
