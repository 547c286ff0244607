// Package assets embeds the demo's GLSL shader sources so cmd/mapdemo
// ships as a single executable. Texture image embedding was dropped along
// with the teacher's texture-atlas loader: texture image loading is an
// explicit Non-goal (spec.md §1), so the demo shades each group by a flat
// color derived from its texture.ID rather than a loaded image.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed shaders/*.vert shaders/*.frag
var embeddedFS embed.FS

// FS returns the embedded filesystem containing all assets.
func FS() embed.FS {
	return embeddedFS
}

// ReadShader reads a shader file from embedded assets.
func ReadShader(name string) ([]byte, error) {
	return embeddedFS.ReadFile("shaders/" + name)
}

// ListShaders returns all shader files.
func ListShaders() ([]string, error) {
	var files []string
	err := fs.WalkDir(embeddedFS, "shaders", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
