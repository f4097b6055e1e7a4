package barcode

import (
	"fmt"

	"github.com/matzehuels/binlabel/pkg/errors"
)

// GeometryError reports that a payload cannot be drawn at the requested
// geometry because the drawable width collapses to zero. It is the only
// error class [Renderer] retries.
type GeometryError struct {
	Payload  string
	Geometry Geometry
	Reason   string
}

// Error implements the error interface.
func (e *GeometryError) Error() string {
	return fmt.Sprintf("infeasible geometry for %q (module %.3fmm, quiet zone %.3fmm @ %ddpi): %s",
		e.Payload, e.Geometry.ModuleWidth, e.Geometry.QuietZone, e.Geometry.DPI, e.Reason)
}

// Code implements errors.Coder.
func (e *GeometryError) Code() errors.Code { return errors.ErrCodeGeometryInfeasible }

// RenderError is the terminal failure of [Renderer.Render]. Cause is the
// last underlying error.
type RenderError struct {
	Payload  string
	Attempts int
	Cause    error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("barcode render failed for %q after %d attempt(s): %v", e.Payload, e.Attempts, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *RenderError) Unwrap() error { return e.Cause }

// Code implements errors.Coder.
func (e *RenderError) Code() errors.Code { return errors.ErrCodeBarcodeRender }
