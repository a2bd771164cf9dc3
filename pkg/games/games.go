// Package games is the static registry of playable games. The relay never
// runs game logic; it only tells the frontend what exists and where the WASM
// bundles live.
package games

// Game describes one playable game for the frontend picker.
type Game struct {
	Name     string `json:"name"`
	WasmPath string `json:"wasm_path"`
	Image    string `json:"img"`
}

var registry = []Game{
	{
		Name:     "THE_CUBE",
		WasmPath: "/wasm/cube/out/cube.js",
		Image:    "/frontend/bg/cube.png",
	},
	{
		Name:     "BOWLING",
		WasmPath: "/wasm/bowling/out/bowling.js",
		Image:    "/frontend/bg/bowling.png",
	},
}

// All returns the registered games.
func All() []Game {
	out := make([]Game, len(registry))
	copy(out, registry)
	return out
}

// Find looks a game up by name.
func Find(name string) (Game, bool) {
	for _, g := range registry {
		if g.Name == name {
			return g, true
		}
	}
	return Game{}, false
}
