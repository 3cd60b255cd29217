package ui

import (
	"image"
	_ "image/jpeg" // Bundle icon decoders
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"gioui.org/op/paint"
	"golang.org/x/image/draw"

	"github.com/finchapp/finch/internal/debug"
)

// iconFileNames are probed inside a bundle directory, in order.
var iconFileNames = []string{"icon.png", "Icon.png", "icon.jpg"}

// BundleIconCache loads and scales app-bundle icons off the UI goroutine.
// Get returns a miss until the load finishes; the invalidate callback wakes
// the window so the next frame picks the icon up.
type BundleIconCache struct {
	mu    sync.RWMutex
	cache map[string]paint.ImageOp
	// Bundles probed and found to have no usable icon, so the glyph stays
	failed map[string]bool

	pendingMu sync.Mutex
	pending   map[string]bool
	loadChan  chan iconRequest
	stopChan  chan struct{}
	stopOnce  sync.Once

	invalidate func()
}

type iconRequest struct {
	path string
	size int
}

func NewBundleIconCache(invalidate func()) *BundleIconCache {
	c := &BundleIconCache{
		cache:      make(map[string]paint.ImageOp),
		failed:     make(map[string]bool),
		pending:    make(map[string]bool),
		loadChan:   make(chan iconRequest, 100),
		stopChan:   make(chan struct{}),
		invalidate: invalidate,
	}
	go c.backgroundLoader()
	return c
}

// Get returns the cached icon for a bundle, queuing a background load on a
// miss. The second return is false until the icon is ready or the bundle is
// known to have none.
func (c *BundleIconCache) Get(bundlePath string, size int) (paint.ImageOp, bool) {
	c.mu.RLock()
	op, ok := c.cache[bundlePath]
	failed := c.failed[bundlePath]
	c.mu.RUnlock()
	if ok {
		return op, true
	}
	if failed {
		return paint.ImageOp{}, false
	}

	// A stopped cache never queues; misses just keep the placeholder glyph
	select {
	case <-c.stopChan:
		return paint.ImageOp{}, false
	default:
	}

	c.pendingMu.Lock()
	if c.pending[bundlePath] {
		c.pendingMu.Unlock()
		return paint.ImageOp{}, false
	}
	c.pending[bundlePath] = true
	c.pendingMu.Unlock()

	select {
	case c.loadChan <- iconRequest{path: bundlePath, size: size}:
	default:
		// Queue full, retry on a later frame
		c.pendingMu.Lock()
		delete(c.pending, bundlePath)
		c.pendingMu.Unlock()
	}
	return paint.ImageOp{}, false
}

// Stop shuts down the background loader. Safe to call more than once.
func (c *BundleIconCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}

func (c *BundleIconCache) backgroundLoader() {
	for {
		select {
		case <-c.stopChan:
			return
		case req := <-c.loadChan:
			c.load(req)
		}
	}
}

func (c *BundleIconCache) load(req iconRequest) {
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, req.path)
		c.pendingMu.Unlock()
	}()

	img := decodeBundleIcon(req.path)
	if img == nil {
		c.mu.Lock()
		c.failed[req.path] = true
		c.mu.Unlock()
		return
	}

	scaled := scaleToFit(img, req.size)

	c.mu.Lock()
	c.cache[req.path] = paint.NewImageOp(scaled)
	c.mu.Unlock()

	debug.Log(debug.ICON, "BundleIconCache: cached %s at %dpx", req.path, req.size)

	if c.invalidate != nil {
		c.invalidate()
	}
}

func decodeBundleIcon(bundlePath string) image.Image {
	for _, name := range iconFileNames {
		file, err := os.Open(filepath.Join(bundlePath, name))
		if err != nil {
			continue
		}
		img, _, err := image.Decode(file)
		file.Close()
		if err != nil {
			debug.Log(debug.ICON, "BundleIconCache: failed to decode %s/%s: %v", bundlePath, name, err)
			continue
		}
		return img
	}
	return nil
}

// scaleToFit scales src so its larger dimension equals maxPixels. Smaller
// images are left alone.
func scaleToFit(src image.Image, maxPixels int) image.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxPixels && height <= maxPixels {
		return src
	}

	var scale float64
	if width > height {
		scale = float64(maxPixels) / float64(width)
	} else {
		scale = float64(maxPixels) / float64(height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(float64(width)*scale), int(float64(height)*scale)))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
