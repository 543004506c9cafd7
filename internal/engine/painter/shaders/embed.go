// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader transforms interleaved position/color/uv vertices.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader modulates vertex color by every bound texture.
//
//go:embed scene.frag
var SceneFragmentShader string
