// Package paintertest provides an in-memory painter.Device for tests.
package paintertest

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/asset"
	"github.com/Faultbox/modelview/internal/engine/painter"
)

// Device records calls instead of talking to a GPU.
type Device struct {
	// CompileErr, when set, fails every CompileProgram.
	CompileErr error
	// FailMeshUpload fails the Nth UploadMesh call (1-based); 0 never fails.
	FailMeshUpload int

	Program         uint32 // currently bound
	DeletedPrograms []uint32
	MeshUploads     int
	LiveMeshes      map[uint32]bool
	LiveTextures    map[uint32]bool
	Draws           []painter.GPUMesh
	Bound           map[int]uint32
	Ints            map[string]int32
	Mats            map[string]mgl32.Mat4

	nextID uint32
}

var _ painter.Device = (*Device)(nil)

// NewDevice returns an empty fake device.
func NewDevice() *Device {
	return &Device{
		LiveMeshes:   make(map[uint32]bool),
		LiveTextures: make(map[uint32]bool),
		Bound:        make(map[int]uint32),
		Ints:         make(map[string]int32),
		Mats:         make(map[string]mgl32.Mat4),
	}
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) CompileProgram(_, _ string) (uint32, error) {
	if d.CompileErr != nil {
		return 0, d.CompileErr
	}
	return d.id(), nil
}

func (d *Device) DeleteProgram(p uint32) { d.DeletedPrograms = append(d.DeletedPrograms, p) }
func (d *Device) UseProgram(p uint32) { d.Program = p }
func (d *Device) SetMat4(name string, m mgl32.Mat4) { d.Mats[name] = m }
func (d *Device) SetInt(name string, v int32) { d.Ints[name] = v }
func (d *Device) DrawMesh(m painter.GPUMesh) { d.Draws = append(d.Draws, m) }
func (d *Device) BindTexture(unit int, id uint32) { d.Bound[unit] = id }
func (d *Device) EnableDepthTest() {}
func (d *Device) DeleteMesh(m painter.GPUMesh) { delete(d.LiveMeshes, m.VAO) }
func (d *Device) DeleteTexture(id uint32) { delete(d.LiveTextures, id) }

func (d *Device) UploadMesh(v []float32) (painter.GPUMesh, error) {
	d.MeshUploads++
	if d.FailMeshUpload > 0 && d.MeshUploads == d.FailMeshUpload {
		return painter.GPUMesh{}, errors.New("out of memory")
	}
	m := painter.GPUMesh{VAO: d.id(), VBO: d.id(), Count: int32(len(v) / asset.FloatsPerVertex)}
	d.LiveMeshes[m.VAO] = true
	return m, nil
}

func (d *Device) UploadTexture(*image.RGBA) (uint32, error) {
	id := d.id()
	d.LiveTextures[id] = true
	return id, nil
}
