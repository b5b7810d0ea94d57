package scene

import "github.com/go-gl/mathgl/mgl32"

func modelPath(name string) string {
	return "resources/objects/" + name + "/" + name + ".obj"
}

// DefaultManifest returns the built-in "Military Base" scene: tanks, ammo boxes,
// a watchtower, barrels and crates, two reflector spotlights and a lamp on an
// 80x80 grass grid, ringed by forest.
func DefaultManifest() *Manifest {
	olive := mgl32.Vec3{0.33, 0.42, 0.18}
	khaki := mgl32.Vec3{0.55, 0.5, 0.35}
	wood := mgl32.Vec3{0.45, 0.3, 0.15}
	rust := mgl32.Vec3{0.5, 0.25, 0.1}
	steel := mgl32.Vec3{0.45, 0.47, 0.5}
	forest := mgl32.Vec3{0.1, 0.3, 0.1}

	return &Manifest{
		Name:       "Military Base",
		ClearColor: mgl32.Vec3{0.5, 0.5, 0.5},
		Shininess:  32,
		Ground: Ground{
			Tiles:    80,
			TileSize: 2,
			Height:   -2,
			Texture:  "resources/textures/tough_grass.jpg",
			Color:    mgl32.Vec3{0.3, 0.45, 0.2},
		},
		Skybox: Skybox{
			Faces: []string{
				"resources/textures/skybox/right.tga",
				"resources/textures/skybox/left.tga",
				"resources/textures/skybox/top.tga",
				"resources/textures/skybox/bottom.tga",
				"resources/textures/skybox/back.tga",
				"resources/textures/skybox/front.tga",
			},
		},
		Objects: []Object{
			{Name: "t10m", Model: modelPath("t10m"), Position: mgl32.Vec3{0, -2, -10}, RotationY: 135, Color: olive, Extent: mgl32.Vec3{3.4, 2.4, 7}},
			{Name: "kv2", Model: modelPath("kv2"), Position: mgl32.Vec3{-8, -2, -25}, RotationY: 90, Scale: 1.5, Color: olive, Extent: mgl32.Vec3{3.3, 3.3, 6.8}},
			{Name: "challenger2", Model: modelPath("challenger2"), Position: mgl32.Vec3{10, -2, -25}, Scale: 1.4, Color: khaki, Extent: mgl32.Vec3{3.5, 2.5, 8}},
			{Name: "ammo_box", Model: modelPath("ammo_box"), Position: mgl32.Vec3{10, -2, -16}, Scale: 0.04, Color: olive, Extent: mgl32.Vec3{1, 0.5, 0.6}},
			{Name: "ammo_box", Model: modelPath("ammo_box"), Position: mgl32.Vec3{11.34, -2, -15.57}, RotationY: -30, Scale: 0.04, Color: olive, Extent: mgl32.Vec3{1, 0.5, 0.6}},
			{Name: "watchtower", Model: modelPath("watchtower"), Position: mgl32.Vec3{-9, -2, -17}, RotationY: 180, Scale: 0.05, Color: wood, Extent: mgl32.Vec3{3, 9, 3}},
			{Name: "crates_and_barrels", Model: modelPath("crates_and_barrels"), Position: mgl32.Vec3{-9, -2, -10}, Scale: 1.2, Color: wood, Extent: mgl32.Vec3{3, 1.5, 3}},
			{Name: "oil_drums", Model: modelPath("oil_drums"), Position: mgl32.Vec3{10, -2, -7}, Color: steel, Extent: mgl32.Vec3{1.6, 1.2, 1.6}},
			{Name: "rusty_oil_barrels", Model: modelPath("rusty_oil_barrels"), Position: mgl32.Vec3{10, -2, -10}, Scale: 0.004, Color: rust, Extent: mgl32.Vec3{1.8, 1.2, 1.8}},
			{Name: "reflector", Model: modelPath("reflector"), Position: mgl32.Vec3{-10, -2, -3}, RotationY: 135, Color: steel, Extent: mgl32.Vec3{0.6, 7.5, 0.6}},
			{Name: "reflector", Model: modelPath("reflector"), Position: mgl32.Vec3{10, -2, -3}, RotationY: -135, Color: steel, Extent: mgl32.Vec3{0.6, 7.5, 0.6}},
			{Name: "lamp", Model: modelPath("lamp"), Position: mgl32.Vec3{4.5, -1, -30}, Color: mgl32.Vec3{0.9, 0.85, 0.6}, Extent: mgl32.Vec3{0.3, 0.6, 0.3}},
			{Name: "forest", Model: modelPath("forest"), Position: mgl32.Vec3{-38, -2, -10}, Color: forest, Extent: mgl32.Vec3{4, 12, 60}},
			{Name: "forest", Model: modelPath("forest"), Position: mgl32.Vec3{-16.5, -2, -50}, RotationY: 90, Color: forest, Extent: mgl32.Vec3{4, 12, 45}},
			{Name: "forest", Model: modelPath("forest"), Position: mgl32.Vec3{30.5, -2, -50}, RotationY: -90, Color: forest, Extent: mgl32.Vec3{4, 12, 30}},
			{Name: "forest", Model: modelPath("forest"), Position: mgl32.Vec3{38, -2, 0}, RotationY: 180, Color: forest, Extent: mgl32.Vec3{4, 12, 60}},
		},
		Lights: []LightSpec{
			{
				Type:      "directional",
				Direction: mgl32.Vec3{-1, -1, -1},
				Ambient:   mgl32.Vec3{0.05, 0.05, 0.05},
				Diffuse:   mgl32.Vec3{0.4, 0.4, 0.4},
				Specular:  mgl32.Vec3{0.5, 0.5, 0.5},
			},
			{
				Type:      "point",
				Position:  mgl32.Vec3{4.5, -0.3, -30},
				Ambient:   mgl32.Vec3{0.2, 0.2, 0.2},
				Diffuse:   mgl32.Vec3{1, 1, 1},
				Specular:  mgl32.Vec3{1, 1, 1},
				Constant:  1,
				Linear:    0.027,
				Quadratic: 0.0028,
			},
			reflectorSpot(mgl32.Vec3{-10, 5.5, -3}, mgl32.Vec3{11, -5.5, -11}),
			reflectorSpot(mgl32.Vec3{10, 5.5, -3}, mgl32.Vec3{-11, -5.5, -11}),
		},
	}
}

func reflectorSpot(pos, dir mgl32.Vec3) LightSpec {
	return LightSpec{
		Type:        "spot",
		Position:    pos,
		Direction:   dir,
		Ambient:     mgl32.Vec3{0.1, 0.1, 0},
		Diffuse:     mgl32.Vec3{1, 1, 1},
		Specular:    mgl32.Vec3{1, 1, 1},
		Constant:    1,
		Linear:      0.007,
		Quadratic:   0.0002,
		CutOff:      28,
		OuterCutOff: 30,
	}
}
