package domain

// Image is an opaque raster handle produced by the imaging layer. The
// core never inspects pixels itself; it only routes handles between the
// region extractor and the matchers. Callers own the handle and must
// Close it when done.
type Image interface {
	Width() int
	Height() int
	Close() error
}
