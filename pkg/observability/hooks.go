// Package observability provides hooks for metrics and tracing of label
// rendering.
//
// Consumers register hooks once at startup; the barcode renderer and the
// label generator call them for every attempt, composition and save. The
// defaults are no-ops, so the rendering packages carry no dependency on a
// particular metrics backend.
//
// # Usage
//
//	func main() {
//	    observability.SetBarcodeHooks(&myBarcodeHooks{})
//	    observability.SetLabelHooks(&myLabelHooks{})
//	    // ... run application
//	}
package observability

import (
	"sync"
	"time"
)

// BarcodeHooks receives events from the adaptive barcode renderer.
type BarcodeHooks interface {
	// OnAttempt records one encoder call. err is nil on success.
	OnAttempt(payload string, attempt int, moduleWidth, quietZone float64, err error)
}

// LabelHooks receives events from label composition and output.
type LabelHooks interface {
	// OnCompose records a finished composition.
	OnCompose(part string, duration time.Duration, err error)

	// OnSave records a PNG write of size bytes.
	OnSave(path string, size int, err error)
}

// NoopBarcodeHooks is a no-op implementation of BarcodeHooks.
type NoopBarcodeHooks struct{}

func (NoopBarcodeHooks) OnAttempt(string, int, float64, float64, error) {}

// NoopLabelHooks is a no-op implementation of LabelHooks.
type NoopLabelHooks struct{}

func (NoopLabelHooks) OnCompose(string, time.Duration, error) {}
func (NoopLabelHooks) OnSave(string, int, error)              {}

var (
	barcodeHooks BarcodeHooks = NoopBarcodeHooks{}
	labelHooks   LabelHooks   = NoopLabelHooks{}
	hooksMu      sync.RWMutex
)

// SetBarcodeHooks registers custom barcode hooks. A nil h is ignored.
func SetBarcodeHooks(h BarcodeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		barcodeHooks = h
	}
}

// SetLabelHooks registers custom label hooks. A nil h is ignored.
func SetLabelHooks(h LabelHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		labelHooks = h
	}
}

// Barcode returns the registered barcode hooks.
func Barcode() BarcodeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return barcodeHooks
}

// Label returns the registered label hooks.
func Label() LabelHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return labelHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	barcodeHooks = NoopBarcodeHooks{}
	labelHooks = NoopLabelHooks{}
}
