// Package viewer draws a scene with raylib. Meshes are uploaded to the GPU once per key and
// released when the scene stops referring to them.
package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"masonry/internal/primitives"
	"masonry/internal/scene"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// gpuMesh keeps the Go buffers behind an uploaded mesh alive as long as the mesh is loaded.
type gpuMesh struct {
	src     *primitives.Mesh
	mesh    rl.Mesh
	verts   []float32
	normals []float32
	indices []uint16
}

// Viewer holds a free camera looking at a scene.
type Viewer struct {
	Camera      rl.Camera3D
	GridVisible bool

	scene      *scene.Scene
	meshes     map[string]*gpuMesh
	material   rl.Material
	loaded     bool
	cursorDone bool
}

// New returns a viewer for sc. Camera: position (12,8,14) looking at (4,1.5,3), fovy 45.
func New(sc *scene.Scene) *Viewer {
	v := &Viewer{scene: sc, meshes: make(map[string]*gpuMesh), GridVisible: true}
	v.Camera.Position = rl.NewVector3(12, 8, 14)
	v.Camera.Target = rl.NewVector3(4, 1.5, 3)
	v.Camera.Up = rl.NewVector3(0, 1, 0)
	v.Camera.Fovy = 45
	v.Camera.Projection = rl.CameraPerspective
	return v
}

// Update runs the free camera and toggles the grid on G.
func (v *Viewer) Update() {
	if !v.cursorDone {
		rl.DisableCursor()
		v.cursorDone = true
	}
	rl.UpdateCamera(&v.Camera, rl.CameraFree)
	if rl.IsKeyPressed(rl.KeyG) {
		v.GridVisible = !v.GridVisible
	}
}

// Sync uploads meshes the scene gained or replaced and unloads the ones it dropped. It needs a
// GL context.
func (v *Viewer) Sync() {
	if !v.loaded {
		v.material = rl.LoadMaterialDefault()
		v.loaded = true
	}
	live := make(map[string]bool)
	v.scene.Each(func(o scene.ObjectInstance, m *primitives.Mesh) {
		if m == nil || live[o.Mesh] {
			return
		}
		live[o.Mesh] = true
		g, ok := v.meshes[o.Mesh]
		if ok && g.src == m {
			return
		}
		if ok {
			rl.UnloadMesh(&g.mesh)
		}
		v.meshes[o.Mesh] = upload(m)
	})
	for key, g := range v.meshes {
		if !live[key] {
			rl.UnloadMesh(&g.mesh)
			delete(v.meshes, key)
		}
	}
}

// Draw renders the scene between BeginMode3D and EndMode3D.
func (v *Viewer) Draw() {
	rl.BeginMode3D(v.Camera)
	if v.GridVisible {
		drawEditorGrid()
	}
	if v.loaded {
		diffuse := v.material.GetMap(rl.MapDiffuse)
		v.scene.Each(func(o scene.ObjectInstance, _ *primitives.Mesh) {
			g, ok := v.meshes[o.Mesh]
			if !ok {
				return
			}
			diffuse.Color = objectColor(o.Color)
			rl.DrawMesh(g.mesh, v.material, toMatrix(o.Transform))
		})
	}
	rl.EndMode3D()
}

// Close unloads every mesh.
func (v *Viewer) Close() {
	for key, g := range v.meshes {
		rl.UnloadMesh(&g.mesh)
		delete(v.meshes, key)
	}
}

// Meshes is the number of meshes on the GPU.
func (v *Viewer) Meshes() int { return len(v.meshes) }

func upload(m *primitives.Mesh) *gpuMesh {
	g := &gpuMesh{
		src:     m,
		verts:   m.Vertices,
		normals: m.Normals,
		indices: narrowIndices(m.Indices),
	}
	g.mesh.VertexCount = int32(m.VertexCount())
	g.mesh.TriangleCount = int32(m.TriangleCount())
	if len(g.verts) > 0 {
		g.mesh.Vertices = &g.verts[0]
	}
	if len(g.normals) > 0 {
		g.mesh.Normals = &g.normals[0]
	}
	if len(g.indices) > 0 {
		g.mesh.Indices = &g.indices[0]
	}
	rl.UploadMesh(&g.mesh, false)
	return g
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis lines.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
