package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind names a cached mesh.
type Kind int

const (
	Sphere   Kind = iota // control points
	Cylinder             // supports, base on Y=0 and top at Y=1
	Cube                 // loop markers and the cart
)

// cached holds the mesh and material for a kind. Created lazily on first Draw.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry draws lit meshes by kind. Meshes are created on first use so that GPU
// resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache     map[Kind]cached
	viewPos   [3]float32 // camera position, set each frame for lighting
	lightDir  [3]float32 // direction to light (normalized), set each frame
	intensity float32
	ambient   [4]float32
}

// NewRegistry returns a registry with day lighting and no meshes yet.
func NewRegistry() *Registry {
	return &Registry{
		cache:     make(map[Kind]cached),
		lightDir:  [3]float32{0.5, 1, 0.5},
		intensity: dayLightIntensity,
		ambient:   dayAmbient,
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per
// frame before drawing.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// SetNight dims the directional light and the ambient term.
func (r *Registry) SetNight(night bool) {
	if night {
		r.intensity, r.ambient = nightLightIntensity, nightAmbient
		return
	}
	r.intensity, r.ambient = dayLightIntensity, dayAmbient
}

const (
	sphereRings         = 12
	sphereSlices        = 12
	cylinderSlices      = 8
	dayLightIntensity   = float32(0.75)
	nightLightIntensity = float32(0.3)
	specularPower       = float32(48.0)
	specularStrength    = float32(0.35)
)

var (
	dayAmbient   = [4]float32{0.2, 0.22, 0.26, 1.0}
	nightAmbient = [4]float32{0.05, 0.06, 0.1, 1.0}
	lightColor   = [3]float32{1.0, 0.98, 0.95}
)

func (r *Registry) ensure(k Kind) (cached, bool) {
	if c, ok := r.cache[k]; ok {
		return c, true
	}
	var mesh rl.Mesh
	switch k {
	case Sphere:
		// Radius 0.5 so the diameter matches the cube side.
		mesh = rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	case Cylinder:
		mesh = rl.GenMeshCylinder(0.5, 1, cylinderSlices)
	case Cube:
		mesh = rl.GenMeshCube(1, 1, 1)
	default:
		return cached{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	c := cached{mesh: mesh, mtl: mtl}
	r.cache[k] = c
	return c, true
}

// setUniforms sets the lighting uniforms on shader (cgo-safe: local arrays).
func (r *Registry) setUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := r.viewPos
	lightDir := r.lightDir
	amb := r.ambient
	col := lightColor
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, col[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{r.intensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specularStrength}, rl.ShaderUniformFloat)
	}
}

// Draw draws one mesh of kind k at position with the given scale and tint. Must be
// called between BeginMode3D and EndMode3D. Unknown kinds are skipped.
func (r *Registry) Draw(k Kind, position, scale rl.Vector3, tint rl.Color) {
	c, ok := r.ensure(k)
	if !ok {
		return
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setUniforms(c.mtl.Shader)
	transform := rl.MatrixMultiply(
		rl.MatrixScale(scale.X, scale.Y, scale.Z),
		rl.MatrixTranslate(position.X, position.Y, position.Z),
	)
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// Unload frees every cached mesh and material.
func (r *Registry) Unload() {
	for k, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		rl.UnloadMaterial(c.mtl)
		delete(r.cache, k)
	}
}
