// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// OceanVertexShader is the vertex shader for the ocean surface.
//
//go:embed ocean.vert
var OceanVertexShader string

// OceanFragmentShader is the fragment shader for the ocean surface.
//
//go:embed ocean.frag
var OceanFragmentShader string
