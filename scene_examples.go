package main

import (
	"fmt"
	"math"
)

// Scene bundles a world with the camera that frames it
type Scene struct {
	World  *HittableList
	Camera *Camera
}

// FinalScene is the classic random sphere field: a ground sphere, a grid of
// small randomized diffuse/metal/glass spheres and three big ones, all
// behind a single sphere BVH.
func FinalScene() *Scene {
	world := NewHittableList()
	rng := newTaskRNG(0, 0x5ee0)

	spheres := make([]Sphere, 0, 1+22*22+3)

	groundMaterial := NewLambertian(Color{0.5, 0.5, 0.5})
	spheres = append(spheres, NewSphere(Point{Y: -1000}, 1000, groundMaterial))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := rng.Float64()
			center := Point{
				X: float64(a) + 0.9*rng.Float64(),
				Y: 0.2,
				Z: float64(b) + 0.9*rng.Float64(),
			}

			if center.Sub(Point{X: 4, Y: 0.2}).Length() <= 0.9 {
				continue
			}

			var mat Material
			switch {
			case chooseMat < 0.8:
				albedo := randomColor(rng, 0, 1).Mul(randomColor(rng, 0, 1))
				mat = NewLambertian(albedo)
			case chooseMat < 0.95:
				mat = NewMetal(randomColor(rng, 0.5, 1), randomRange(rng, 0, 0.5))
			default:
				mat = NewDielectric(1.5)
			}
			spheres = append(spheres, NewSphere(center, 0.2, mat))
		}
	}

	spheres = append(spheres,
		NewSphere(Point{Y: 1}, 1.0, NewDielectric(1.5)),
		NewSphere(Point{X: -4, Y: 1}, 1.0, NewLambertian(Color{0.4, 0.2, 0.1})),
		NewSphere(Point{X: 4, Y: 1}, 1.0, NewMetal(Color{0.7, 0.6, 0.5}, 0)),
	)

	world.Add(NewBVH(spheres))

	cam := NewCamera()
	cam.AspectRatio = 16.0 / 9.0
	cam.Background = ColorSky
	cam.VFov = 20
	cam.LookFrom = Point{X: 13, Y: 2, Z: 3}
	cam.LookAt = Point{}
	cam.DefocusAngle = 0.6
	cam.FocusDist = 10

	return &Scene{World: world, Camera: cam}
}

// SimpleLightScene is a checkered ground with one emissive sphere over a
// black background, exercising emission and the miss path
func SimpleLightScene() *Scene {
	world := NewHittableList()

	checker := NewCheckerTexture(0.32, Color{0.2, 0.3, 0.1}, Color{0.9, 0.9, 0.9})
	ground := NewSphere(Point{Y: -1000}, 1000, NewLambertianTextured(checker))
	ball := NewSphere(Point{Y: 2}, 2, NewLambertianTextured(checker))
	light := NewSphere(Point{Y: 7}, 2, NewDiffuseLight(Color{4, 4, 4}))

	world.Add(NewBVH([]Sphere{ground, ball, light}))

	cam := NewCamera()
	cam.AspectRatio = 16.0 / 9.0
	cam.Background = ColorBlack
	cam.VFov = 20
	cam.LookFrom = Point{X: 26, Y: 3, Z: 6}
	cam.LookAt = Point{Y: 2}
	cam.FocusDist = 26

	return &Scene{World: world, Camera: cam}
}

// MeshScene renders a single triangle mesh instance over a ground sphere.
// With a model path it loads the OBJ; without one it falls back to a
// generated torus so the scene needs no assets.
func MeshScene(modelPath string) (*Scene, error) {
	world := NewHittableList()

	meshMaterial := NewLambertian(Color{0.882, 0.678, 0.003})
	triangles, err := loadOrGenerateMesh(modelPath, meshMaterial)
	if err != nil {
		return nil, err
	}

	blas := NewBVH(triangles)
	instance := NewBVHInstance(blas)
	rotate := RotationY(degreesToRadians(-25))
	lift := TranslationMatrix(0, 1, 0)
	instance.SetTransform(lift.Multiply(rotate))
	world.Add(instance)

	ground := NewSphere(Point{Y: -1000}, 1000, NewLambertian(Color{0.5, 0.5, 0.5}))
	world.Add(ground)

	cam := NewCamera()
	cam.AspectRatio = 16.0 / 9.0
	cam.Background = ColorSky
	cam.VFov = 20
	cam.LookFrom = Point{X: 10, Y: 3, Z: 10}
	cam.LookAt = Point{Y: 1}
	cam.FocusDist = 14

	return &Scene{World: world, Camera: cam}, nil
}

// InstanceGridScene shares one mesh BLAS across a 16x16 grid of instances
// under a TLAS, each rotated a little further than its neighbor
func InstanceGridScene(modelPath string) (*Scene, error) {
	world := NewHittableList()

	meshMaterial := NewPBRMaterial(NewSolidColor(0.921, 0.094, 0.141), 0.4, 0.2)
	triangles, err := loadOrGenerateMesh(modelPath, meshMaterial)
	if err != nil {
		return nil, err
	}
	blas := NewBVH(triangles)

	const gridSide = 16
	instances := make([]*BVHInstance[Triangle], 0, gridSide*gridSide)
	for i := 0; i < gridSide*gridSide; i++ {
		inst := NewBVHInstance(blas)

		translate := TranslationMatrix(
			float64(i%gridSide)*5.1-39.0,
			42.4-float64(i/gridSide)*5.1,
			0,
		)
		rotate := RotationY(float64(i) * math.Pi / 256)
		scale := ScaleMatrix(0.3)

		rs := rotate.Multiply(scale)
		inst.SetTransform(translate.Multiply(rs))
		instances = append(instances, inst)
	}

	world.Add(NewTLAS(instances))

	cam := NewCamera()
	cam.AspectRatio = 1.0
	cam.Background = Color{0.003, 0.015, 0.074}
	cam.VFov = 20
	cam.LookFrom = Point{X: 5, Y: 7, Z: 237}
	cam.LookAt = Point{Y: 7}
	cam.FocusDist = 237

	return &Scene{World: world, Camera: cam}, nil
}

func loadOrGenerateMesh(modelPath string, mat Material) ([]Triangle, error) {
	if modelPath != "" {
		triangles, err := LoadOBJ(modelPath, mat)
		if err != nil {
			return nil, fmt.Errorf("loading model: %w", err)
		}
		return triangles, nil
	}
	return GenerateTorusMesh(2.0, 0.8, 48, 24, mat), nil
}
