// Package tiledbg renders infinite, animated, tiled backgrounds.
//
// # Overview
//
// A texture is repeated across the plane with a configurable scale,
// rotation, brick-like row stagger, inter-tile spacing and continuous
// scroll animation, then tinted with an RGBA color. The heart of the
// package is a pure per-sample function: given a surface position and an
// elapsed time it reports which tile cell the point falls in, whether the
// point lands on the inked part of that tile, and which texture
// coordinate to sample.
//
// # Quick Start
//
//	import "github.com/gogpu/tiledbg"
//
//	params, err := tiledbg.NewParams(
//	    tiledbg.WithTint(tiledbg.RGBA2(1, 1, 1, 0.15)),
//	    tiledbg.WithScale(0.5),
//	    tiledbg.WithRotation(20*math.Pi/180),
//	    tiledbg.WithStagger(0.5),
//	    tiledbg.WithSpacing(0.3),
//	    tiledbg.WithScroll(tiledbg.Pt(30, 0)),
//	    tiledbg.WithBaseTileSize(128),
//	    tiledbg.WithTexture("logo"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	out := params.Sample(tiledbg.Pt(x, y), elapsed)
//	if out.Inked {
//	    // sample the texture at out.UV
//	}
//
// # Pipeline
//
// Every sample flows through the same stages:
//   - ToTilingSpace: undo rotation and apply the scroll offset
//   - IndexTile: integer cell and in-cell position, with row stagger
//   - MaskTile: inked-or-gap decision and normalized texture UV
//   - Composite: texture color multiplied by the tint
//
// Params is immutable once constructed, so a single value can be shared
// by any number of goroutines sampling in parallel.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// Surface positions, scroll velocity and the base tile size must all be
// expressed in the same unit space (pixels, or normalized UI units).
package tiledbg

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
