package format

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// HasAlpha сообщает, умеет ли цветовая модель хранить прозрачность.
// Смотрим на модель, а не на пиксели: непрозрачный RGBA тоже считается.
func HasAlpha(img image.Image) bool {
	switch img.ColorModel() {
	case color.RGBAModel, color.RGBA64Model,
		color.NRGBAModel, color.NRGBA64Model,
		color.AlphaModel, color.Alpha16Model:
		return true
	}
	switch im := img.(type) {
	case *image.NYCbCrA:
		return true
	case *image.Paletted:
		for _, c := range im.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// channels: сколько каналов можно разделить у модели
func channels(img image.Image) int {
	switch img.ColorModel() {
	case color.AlphaModel, color.Alpha16Model:
		return 1
	case color.GrayModel, color.Gray16Model:
		return 1
	}
	if HasAlpha(img) {
		return 4
	}
	return 3
}

// Flatten кладёт изображение с альфой на белый холст того же размера,
// используя альфу как маску. Модели без отдельных RGB каналов
// конвертируются напрямую, без маски.
func Flatten(img image.Image) image.Image {
	if !HasAlpha(img) {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	if channels(img) < 4 {
		draw.Draw(dst, b, img, b.Min, draw.Src)
		opaque(dst)
		return dst
	}
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// ToRGB отбрасывает альфа-канал, сохраняя цвет пикселя
func ToRGB(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	if !HasAlpha(img) {
		draw.Draw(dst, b, img, b.Min, draw.Src)
		return dst
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}

func opaque(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}
