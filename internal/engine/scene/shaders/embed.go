// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// BackgroundVertexShader draws the full-viewport gradient.
//
//go:embed background.vert
var BackgroundVertexShader string

// BackgroundFragmentShader samples the gradient texture.
//
//go:embed background.frag
var BackgroundFragmentShader string

// PhoneVertexShader transforms the phone body and screen.
//
//go:embed phone.vert
var PhoneVertexShader string

// PhoneFragmentShader applies albedo, emissive and the light rig.
//
//go:embed phone.frag
var PhoneFragmentShader string
