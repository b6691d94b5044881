package image

import (
	"image/color"
	"math"
)

// Checkerboard creates a width×height image of alternating squares of
// side checkSize pixels, starting with c1 in the top-left corner.
func Checkerboard(width, height, checkSize int, c1, c2 color.NRGBA) (*ImageBuf, error) {
	buf, err := NewImageBuf(width, height)
	if err != nil {
		return nil, err
	}
	if checkSize <= 0 {
		checkSize = 1
	}
	for y := range height {
		for x := range width {
			c := c1
			if (x/checkSize+y/checkSize)%2 == 1 {
				c = c2
			}
			_ = buf.SetRGBA(x, y, c.R, c.G, c.B, c.A)
		}
	}
	return buf, nil
}

// UVDebug creates an image whose red channel encodes u and green channel
// encodes v, which makes texture coordinate mistakes easy to spot.
func UVDebug(width, height int) (*ImageBuf, error) {
	buf, err := NewImageBuf(width, height)
	if err != nil {
		return nil, err
	}
	for y := range height {
		for x := range width {
			u := (float64(x) + 0.5) / float64(width)
			v := (float64(y) + 0.5) / float64(height)
			_ = buf.SetRGBA(x, y, uint8(u*255+0.5), uint8(v*255+0.5), 64, 255)
		}
	}
	return buf, nil
}

// Disc creates a width×height image with a filled anti-aliased disc of
// color c centered on a transparent background. It is the default
// pattern shape when no texture file is configured.
func Disc(width, height int, c color.NRGBA) (*ImageBuf, error) {
	buf, err := NewImageBuf(width, height)
	if err != nil {
		return nil, err
	}
	cx, cy := float64(width)/2, float64(height)/2
	radius := min(cx, cy)
	for y := range height {
		for x := range width {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			// One pixel of linear falloff at the rim.
			cov := radius - math.Hypot(dx, dy) + 0.5
			if cov <= 0 {
				continue
			}
			if cov > 1 {
				cov = 1
			}
			_ = buf.SetRGBA(x, y, c.R, c.G, c.B, uint8(float64(c.A)*cov+0.5))
		}
	}
	return buf, nil
}
