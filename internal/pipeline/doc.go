// Package pipeline implements the render-and-patch stages for the
// Featured Publications section.
//
// This package handles:
//   - Rendering publication cards into the fixed section shell (CardRenderer)
//   - Locating the region between the start and end marker comments (FindRegion)
//   - Replacing that region in a document (ReplaceRegion)
//   - Linting trusted venue markup for unbalanced tags (LintFragment)
//
// Everything here is pure: no file access, no logging. Reading the data file
// and writing the document back are handled by the root pubsection package.
package pipeline
