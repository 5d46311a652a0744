package scene

import "errors"

var (
	ErrTriangleRangeOutOfBounds  = errors.New("scene: model triangle range out of bounds")
	ErrBoxGeometryNotInitialized = errors.New("scene: box geometry used before CreateBoxTriangles")
	ErrNoMaterials               = errors.New("scene: material table is empty")
	ErrMaterialIndexOutOfRange   = errors.New("scene: shape references unknown material")
	ErrStaleBoundingBox          = errors.New("scene: model bounding box does not cover its transformed geometry")
	ErrInvalidRefractionIndex    = errors.New("scene: transparent material requires a positive refraction index")
	ErrLastMaterial              = errors.New("scene: cannot remove the last material")
)
