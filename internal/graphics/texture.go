package graphics

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// LoadTexture decodes an image file and uploads it as a mipmapped, repeating 2D texture.
func (d *Device) LoadTexture(path string) (uint32, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return 0, fmt.Errorf("texture %s: %w", path, err)
	}
	rlImage := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImage)
	rl.UnloadImage(rlImage)
	if !rl.IsTextureValid(tex) {
		return 0, fmt.Errorf("texture %s: upload failed", path)
	}

	gl.BindTexture(gl.TEXTURE_2D, tex.ID)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex.ID, nil
}

// LoadCubemap uploads six faces (+X, -X, +Y, -Y, +Z, -Z). Faces are resized to the
// size of the first one.
func (d *Device) LoadCubemap(faces [6]string) (uint32, error) {
	var pixels [6]*image.RGBA
	var size image.Point
	for i, path := range faces {
		img, err := imgio.Open(path)
		if err != nil {
			return 0, fmt.Errorf("cubemap face %s: %w", path, err)
		}
		if i == 0 {
			size = img.Bounds().Size()
		}
		if img.Bounds().Size() != size {
			pixels[i] = transform.Resize(img, size.X, size.Y, transform.Linear)
		} else {
			pixels[i] = clone.AsRGBA(img)
		}
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	for i, face := range pixels {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(face.Pix))
	}
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return id, nil
}
