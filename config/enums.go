package config

// Specification of texture upscaling mode for item icons.
// ENUM(none, nearest, smooth)
type TextureScaleMode int

// Specification of requested site output layout.
// ENUM(tree, zip)
type OutputLayout int

func (o OutputLayout) Ext() string {
	switch o {
	case OutputLayoutTree:
		return ""
	case OutputLayoutZip:
		return ".zip"
	default:
		// this should never happen
		panic("unsupported layout requested")
	}
}
