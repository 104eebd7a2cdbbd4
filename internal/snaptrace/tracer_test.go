package snaptrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func testCamera(t *testing.T, height Real) *Orthographic {
	t.Helper()
	cam, err := NewOrthographic(r3.Vec{Z: 10}, r3.Vec{}, r3.Vec{Y: 1}, height)
	require.NoError(t, err)
	return cam
}

func oneSphereScene(t *testing.T) *Scene {
	t.Helper()
	// no specular lobe, so the sphere shows its diffuse color
	mat, err := NewMaterial(Yellow, Roughness, 0, 0, 1)
	require.NoError(t, err)
	s, err := NewSpheres(1, 1, mat)
	require.NoError(t, err)
	s.Color[0] = Blue
	scene := NewScene(NewDevice())
	scene.AddSpheres(s)
	scene.Lights = DefaultLights()
	scene.Camera = testCamera(t, 4)
	scene.Background = White
	return scene
}

func TestNewPathTracer(t *testing.T) {
	assert.Panics(t, func() { NewPathTracer(nil, 0, 10) })
	tr := NewPathTracer(nil, 4, 3)
	assert.NotNil(t, tr.Device)
	assert.Len(t, tr.Buf, 4*3*3)
	assert.Len(t, tr.Alpha, 12)
	assert.Equal(t, (2*4+1)*3+ChB, tr.idx(1, 2, ChB))
}

func TestSampleErrors(t *testing.T) {
	tr := NewPathTracer(nil, 4, 4)
	_, err := tr.Sample(nil, 1)
	assert.Error(t, err)
	_, err = tr.Sample(NewScene(nil), 1)
	assert.Error(t, err)
	scene := NewScene(nil)
	scene.Camera = testCamera(t, 1)
	_, err = tr.Sample(scene, 0)
	assert.Error(t, err)
}

func TestSampleEmptySceneIsBackground(t *testing.T) {
	scene := NewScene(NewDevice())
	scene.Camera = testCamera(t, 1)
	scene.Background = White
	scene.BackgroundAlpha = 1
	tr := NewPathTracer(scene.Device, 8, 6)
	img, err := tr.Sample(scene, 2)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
	for _, v := range img.Pix {
		require.Equal(t, uint8(255), v)
	}
}

func TestSampleSphereCoverage(t *testing.T) {
	scene := oneSphereScene(t)
	tr := NewPathTracer(scene.Device, 16, 16)
	tr.Seed = 7
	img, err := tr.Sample(scene, 4)
	require.NoError(t, err)

	center := img.NRGBAAt(8, 8)
	assert.Equal(t, uint8(255), center.A)
	assert.NotEqual(t, [3]uint8{255, 255, 255}, [3]uint8{center.R, center.G, center.B})
	// blue sphere: more blue than red
	assert.Greater(t, center.B, center.R)

	corner := img.NRGBAAt(0, 0)
	assert.Equal(t, uint8(0), corner.A, "transparent background")
	assert.Equal(t, uint8(255), corner.R)
}

func TestSampleDeterministicAcrossWorkers(t *testing.T) {
	render := func(workers int) []uint8 {
		scene := oneSphereScene(t)
		scene.Device.Workers = workers
		tr := NewPathTracer(scene.Device, 12, 12)
		tr.Seed = 42
		img, err := tr.Sample(scene, 3)
		require.NoError(t, err)
		return img.Pix
	}
	assert.Equal(t, render(1), render(5))
}

func TestSampleReturnsNewImage(t *testing.T) {
	scene := oneSphereScene(t)
	tr := NewPathTracer(scene.Device, 6, 6)
	a, err := tr.Sample(scene, 1)
	require.NoError(t, err)
	b, err := tr.Sample(scene, 1)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestRayStatsWithDebug(t *testing.T) {
	Debug = true
	defer func() { Debug = false }()
	scene := oneSphereScene(t)
	tr := NewPathTracer(scene.Device, 8, 8)
	tr.Seed = 1
	_, err := tr.Sample(scene, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(8*8*2), stats.Count(Hit)+stats.Count(Miss))
	assert.Greater(t, stats.Count(Hit), int64(0))
	assert.Greater(t, stats.Count(Miss), int64(0))
}

func TestTracePathSolidAndMiss(t *testing.T) {
	scene := NewScene(NewDevice())
	s, err := NewSpheres(1, 1, SolidMaterial(Orange))
	require.NoError(t, err)
	scene.AddSpheres(s)
	scene.Background = RGB{0.1, 0.2, 0.3}
	scene.prepare()

	c, hit := tracePath(scene, r3.Vec{Z: 5}, r3.Vec{Z: -1}, MaxBounces, nil)
	assert.True(t, hit)
	assert.Equal(t, Orange, c)

	c, hit = tracePath(scene, r3.Vec{X: 3, Z: 5}, r3.Vec{Z: -1}, MaxBounces, nil)
	assert.False(t, hit)
	assert.Equal(t, scene.Background, c)
}
