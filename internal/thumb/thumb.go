// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package thumb writes reduced-size previews of rendered plots.
package thumb

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Halve returns src scaled down by a factor of 2 in each dimension.
// Images smaller than 2x2 are scaled to at least one pixel.
func Halve(src image.Image) *image.RGBA {
	sb := src.Bounds()
	w, h := sb.Dx()/2, sb.Dy()/2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)
	return dst
}

// WriteFile reads the PNG image at src and writes a half-size copy
// of it to dst.
func WriteFile(dst, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", src, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := png.Encode(out, Halve(img)); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
