// Package raster holds the pixel post-processing steps of the label
// pipeline: ink-bounds cropping, quarter-turn rotation and flattening to an
// opaque image.
//
// Every function returns a new image and leaves its input untouched, so a
// rendered block can be cropped or rotated without affecting other users of
// the original.
package raster
