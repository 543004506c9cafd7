package asset

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/logger"
)

var white = [4]float32{1, 1, 1, 1}

// loadOBJ imports a Wavefront OBJ file and its MTL library. Faces are fan
// triangulated and split into one mesh per object and material.
func loadOBJ(path string) ([]Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)

	var mtl []byte
	if mtlPath := findMaterialLib(data, path); mtlPath != "" {
		mtl, err = os.ReadFile(mtlPath)
		if err != nil {
			logger.Warn("material library unreadable", zap.String("mtl", mtlPath), zap.Error(err))
		}
	}
	withKd := diffuseMaterials(mtl)

	dec, err := obj.DecodeReader(bytes.NewReader(data), bytes.NewReader(mtl))
	if err != nil {
		return nil, err
	}
	for _, w := range dec.Warnings {
		logger.Debug("obj warning", zap.String("path", path), zap.String("warning", w))
	}

	var meshes []Mesh
	for _, o := range dec.Objects {
		byMaterial := make(map[string]int)
		for _, face := range o.Faces {
			idx, ok := byMaterial[face.Material]
			if !ok {
				idx = len(meshes)
				byMaterial[face.Material] = idx
				meshes = append(meshes, newOBJMesh(dec, o.Name, face.Material, dir))
			}

			verts, err := triangulate(dec, &face)
			if err != nil {
				return nil, fmt.Errorf("object %q: %w", o.Name, err)
			}
			for i := range verts {
				verts[i].Color = meshColor(dec, withKd, face.Material)
			}
			meshes[idx].Vertices = append(meshes[idx].Vertices, verts...)
		}
	}
	return meshes, nil
}

func newOBJMesh(dec *obj.Decoder, object, material, dir string) Mesh {
	m := Mesh{Name: object}
	if material != "" {
		m.Name = object + "/" + material
	}
	if mat, ok := dec.Materials[material]; ok && mat.MapKd != "" {
		m.TexturePaths = append(m.TexturePaths, resolveTexture(dir, mat.MapKd))
	}
	return m
}

// meshColor is Kd for untextured materials that declare it and white
// otherwise, so textures and undefined materials are never darkened.
func meshColor(dec *obj.Decoder, withKd map[string]bool, material string) [4]float32 {
	mat, ok := dec.Materials[material]
	if !ok || !withKd[material] || mat.MapKd != "" {
		return white
	}
	return [4]float32{mat.Diffuse.R, mat.Diffuse.G, mat.Diffuse.B, 1}
}

// diffuseMaterials lists the materials of an MTL library that set Kd.
func diffuseMaterials(mtl []byte) map[string]bool {
	withKd := make(map[string]bool)
	current := ""
	sc := bufio.NewScanner(bytes.NewReader(mtl))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			current = strings.Join(fields[1:], " ")
		case "Kd":
			if current != "" {
				withKd[current] = true
			}
		}
	}
	return withKd
}

// triangulate fans a polygon face into triangles. UVs are flipped so row
// zero of the uploaded image is the top of the texture.
func triangulate(dec *obj.Decoder, face *obj.Face) ([]Vertex, error) {
	n := len(face.Vertices)
	if n < 3 {
		return nil, nil
	}

	corner := func(k int) (Vertex, error) {
		v := Vertex{Color: white}
		pi := face.Vertices[k]
		if pi < 0 || 3*pi+2 >= len(dec.Vertices) {
			return v, fmt.Errorf("vertex index %d out of range", pi+1)
		}
		v.Position = [3]float32{dec.Vertices[3*pi], dec.Vertices[3*pi+1], dec.Vertices[3*pi+2]}

		if k < len(face.Uvs) {
			ti := face.Uvs[k]
			if ti >= 0 && 2*ti+1 < len(dec.Uvs) {
				v.UV = [2]float32{dec.Uvs[2*ti], 1 - dec.Uvs[2*ti+1]}
			}
		}
		return v, nil
	}

	out := make([]Vertex, 0, 3*(n-2))
	for i := 1; i+1 < n; i++ {
		for _, k := range [3]int{0, i, i + 1} {
			v, err := corner(k)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// findMaterialLib returns the first mtllib that exists next to the OBJ,
// falling back to <name>.mtl.
func findMaterialLib(data []byte, objPath string) string {
	dir := filepath.Dir(objPath)
	var candidates []string

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if name, ok := strings.CutPrefix(line, "mtllib "); ok {
			candidates = append(candidates, resolveTexture(dir, strings.TrimSpace(name)))
		}
	}
	base := strings.TrimSuffix(filepath.Base(objPath), filepath.Ext(objPath))
	candidates = append(candidates, filepath.Join(dir, base+".mtl"))

	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			return c
		}
	}
	return ""
}

// resolveTexture joins a material-relative file reference to the model
// directory. Windows separators in exported files are normalized.
func resolveTexture(dir, ref string) string {
	ref = filepath.FromSlash(strings.ReplaceAll(ref, `\`, "/"))
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(dir, ref)
}
