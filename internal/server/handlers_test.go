package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImageFile writes a PNG of the given color, optionally with a
// rock-colored square at [20,60)x[20,60), and returns its path.
func createTestImageFile(t *testing.T, width, height int, c color.Color, withRock bool) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
			if withRock && x >= 20 && x < 60 && y >= 20 && y < 60 {
				img.Set(x, y, color.RGBA{100, 92, 76, 255})
			}
		}
	}

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool invokes a tool through tools/call and decodes the text content
// into out. It returns the JSON-RPC error, if any.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}, out interface{}) *MCPError {
	t.Helper()

	paramsJSON, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	if err != nil {
		t.Fatal(err)
	}
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: paramsJSON})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		return resp.Error
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %v", content)
	}
	if out != nil {
		if err := json.Unmarshal([]byte(content[0]["text"].(string)), out); err != nil {
			t.Fatalf("failed to decode tool result: %v", err)
		}
	}
	return nil
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255}, false)

	var info struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	}
	if mcpErr := callTool(t, s, "image_load", map[string]interface{}{"path": imgPath}, &info); mcpErr != nil {
		t.Fatalf("Unexpected error: %v", mcpErr)
	}
	if info.Width != 100 || info.Height != 80 || info.Format != "png" {
		t.Errorf("got %+v, want 100x80 png", info)
	}
}

func TestHandleToolsCall_SampleColor(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 100, 100, color.Black, true)

	var res struct {
		HSV struct{ H, S, V int } `json:"hsv"`
	}
	args := map[string]interface{}{"path": imgPath, "x": 30, "y": 30}
	if mcpErr := callTool(t, s, "image_sample_color", args, &res); mcpErr != nil {
		t.Fatalf("Unexpected error: %v", mcpErr)
	}
	if res.HSV.H != 20 || res.HSV.S != 61 || res.HSV.V != 100 {
		t.Errorf("hsv: got %+v, want {20 61 100}", res.HSV)
	}

	args = map[string]interface{}{"path": imgPath, "x": 500, "y": 0}
	if mcpErr := callTool(t, s, "image_sample_color", args, nil); mcpErr == nil {
		t.Error("out-of-bounds sample should fail")
	}
}

func TestHandleToolsCall_RockExtractContours(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 100, 100, color.Black, true)
	out := filepath.Join(t.TempDir(), "game_output")

	var report struct {
		ContourCount int  `json:"contour_count"`
		PolygonCount int  `json:"polygon_count"`
		Empty        bool `json:"empty"`
		Artifacts    []struct {
			Artifact string `json:"artifact"`
			Status   string `json:"status"`
		} `json:"artifacts"`
		Polygons []struct {
			Vertices []struct{ X, Y int } `json:"vertices"`
		} `json:"polygons"`
	}
	args := map[string]interface{}{"path": imgPath, "output_directory": out}
	if mcpErr := callTool(t, s, "rock_extract_contours", args, &report); mcpErr != nil {
		t.Fatalf("Unexpected error: %v", mcpErr)
	}

	if report.ContourCount != 1 || report.PolygonCount != 1 || report.Empty {
		t.Errorf("counts: %+v", report)
	}
	if len(report.Polygons) != 1 || len(report.Polygons[0].Vertices) != 4 {
		t.Errorf("polygons: %+v", report.Polygons)
	}
	for _, a := range report.Artifacts {
		if a.Status != "written" {
			t.Errorf("%s: status %s", a.Artifact, a.Status)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "rock_contours_vector.geojson")); err != nil {
		t.Errorf("vector file missing: %v", err)
	}
}

func TestHandleToolsCall_RockExtractContours_Overrides(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 100, 100, color.Black, true)
	out := filepath.Join(t.TempDir(), "out")

	// A band that excludes the rock color finds nothing.
	var report struct {
		Empty bool `json:"empty"`
	}
	args := map[string]interface{}{
		"path":             imgPath,
		"output_directory": out,
		"lower":            []int{100, 0, 0},
		"upper":            []int{120, 255, 255},
	}
	if mcpErr := callTool(t, s, "rock_extract_contours", args, &report); mcpErr != nil {
		t.Fatalf("Unexpected error: %v", mcpErr)
	}
	if !report.Empty {
		t.Error("report should be empty with a non-matching band")
	}
	if _, err := os.Stat(filepath.Join(out, "rock_contours_vector.geojson")); !os.IsNotExist(err) {
		t.Error("vector file should not be written")
	}
}

func TestHandleToolsCall_RockErrors(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 50, 50, color.Black, false)

	tests := []struct {
		name string
		tool string
		args map[string]interface{}
	}{
		{"missing path", "rock_extract_contours", map[string]interface{}{}},
		{"missing file", "rock_extract_contours", map[string]interface{}{"path": filepath.Join(t.TempDir(), "nope.png")}},
		{"even kernel", "rock_extract_contours", map[string]interface{}{"path": imgPath, "kernel_size": 4}},
		{"inverted band", "rock_mask_stats", map[string]interface{}{"path": imgPath, "lower": []int{50, 0, 0}, "upper": []int{10, 255, 255}}},
		{"stats missing file", "rock_mask_stats", map[string]interface{}{"path": filepath.Join(t.TempDir(), "nope.png")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mcpErr := callTool(t, s, tt.tool, tt.args, nil)
			if mcpErr == nil {
				t.Fatal("expected an error")
			}
			if mcpErr.Code != -32000 {
				t.Errorf("code: got %d, want -32000", mcpErr.Code)
			}
		})
	}
}

func TestHandleToolsCall_RockMaskStats(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 100, 100, color.Black, true)

	var stats MaskStats
	if mcpErr := callTool(t, s, "rock_mask_stats", map[string]interface{}{"path": imgPath}, &stats); mcpErr != nil {
		t.Fatalf("Unexpected error: %v", mcpErr)
	}

	if stats.RawPixels != 1600 || stats.RefinedPixels != 1600 {
		t.Errorf("pixels: raw %d refined %d, want 1600", stats.RawPixels, stats.RefinedPixels)
	}
	if stats.Coverage != 0.16 {
		t.Errorf("coverage: got %v, want 0.16", stats.Coverage)
	}
	if stats.Contours != 1 || stats.Polygons != 1 {
		t.Errorf("counts: %+v", stats)
	}

	entries, _ := os.ReadDir(s.cfg.OutputDirectory)
	if len(entries) != 0 {
		t.Error("rock_mask_stats should not write files")
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer(t)
	mcpErr := callTool(t, s, "image_crop", map[string]interface{}{"path": "/x.png"}, nil)
	if mcpErr == nil || mcpErr.Code != -32000 {
		t.Errorf("unknown tool: got %+v, want -32000", mcpErr)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("got %+v, want -32602", resp.Error)
	}
}
