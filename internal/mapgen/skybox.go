package mapgen

// SkyboxCube returns the cube drawn around the camera with the cubemap shader.
// Corners sit at ±2; normal and color are unused by the skybox shader.
func SkyboxCube() Mesh {
	corners := [8][5]float32{
		{-2, -2, 2, 0, 2},
		{2, -2, 2, 2, 2},
		{2, -2, -2, 2, 0},
		{-2, -2, -2, 0, 2},
		{-2, 2, 2, 0, 2},
		{2, 2, 2, 2, 2},
		{2, 2, -2, 2, 0},
		{-2, 2, -2, 0, 0},
	}
	vertices := make([]float32, 0, len(corners)*VertexSize)
	for _, c := range corners {
		vertices = append(vertices,
			c[0], c[1], c[2],
			0, 0, 2,
			2, 0, 0,
			c[3], c[4],
		)
	}
	indices := []uint32{
		1, 2, 6, 6, 5, 1, // right
		0, 4, 7, 7, 3, 0, // left
		4, 5, 6, 6, 7, 4, // top
		0, 3, 2, 2, 1, 0, // bottom
		0, 1, 5, 5, 4, 0, // back
		3, 7, 6, 6, 2, 3, // front
	}
	return Mesh{Vertices: vertices, Indices: indices}
}
