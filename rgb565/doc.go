// Package rgb565 provides a 16-bit color format for LCD panels that take
// RGB565 pixels over the wire.
//
// Each pixel is a big-endian 16-bit word: 5 bits of red, 6 bits of green and
// 5 bits of blue, most significant first.
//
// Memory layout example for a 2-pixel row:
//
//	Pixels: 0       1
//	Colors: red     blue
//	Bytes:  F8 00   00 1F
//
// This package provides:
//
// - RGB565: A color type holding one packed pixel
// - Model: A color model for converting standard Go colors to RGB565
// - Image: An image.Image implementation whose Pix can be handed to a panel as is
//
// Example usage:
//
//	// Create a 320x480 image
//	img := rgb565.New(image.Rect(0, 0, 320, 480))
//
//	// Paint it red
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 0xFF, A: 0xFF}), image.Point{}, draw.Src)
//
//	// Send it
//	dev.DrawBitmap(0, 0, 320, 480, img.Pix)
package rgb565
