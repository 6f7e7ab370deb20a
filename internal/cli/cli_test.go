package cli

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go-metcolour"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func greenPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := range 32 {
		for x := range 32 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(160 + y*2), B: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// newMuseumServer fakes the collection API and image host on one server.
// Object 3 has no image and is skipped by the batch.
func newMuseumServer(t *testing.T) *httptest.Server {
	t.Helper()
	body := greenPNG(t)
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("GET /v1/objects", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"total":3,"objectIDs":[1,2,3]}`))
	})
	mux.HandleFunc("GET /v1/objects/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "3" {
			_, _ = w.Write([]byte(`{"objectID":3,"primaryImageSmall":""}`))
			return
		}
		_, _ = w.Write([]byte(`{"objectID":` + id + `,"primaryImageSmall":"` + srv.URL + `/img/` + id + `.png"}`))
	})
	mux.HandleFunc("GET /img/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClassifyCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"1,1,1", "2,2,2"}, "None\n"},
		{[]string{"200,10,10", "1,1,1", "150,20,5"}, "Red\n"},
		{[]string{"10,200,10", "10,10,200", "10,200,10"}, "Green\n"},
		{[]string{"5,5,200", "5, 200, 5"}, "Green\n"},
		{[]string{"0,0,9"}, "Blue\n"},
	}

	for _, tc := range tests {
		out, _, err := execute(t, append([]string{"classify"}, tc.args...)...)
		require.NoError(t, err, tc.args)
		assert.Equal(t, tc.want, out, tc.args)
	}
}

func TestClassifyCommandErrors(t *testing.T) {
	_, _, err := execute(t, "classify")
	assert.Error(t, err)

	_, _, err = execute(t, "classify", "1,2")
	assert.ErrorContains(t, err, "want R,G,B")

	_, _, err = execute(t, "classify", "1,x,3")
	assert.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	srv := newMuseumServer(t)
	outDir := filepath.Join(t.TempDir(), "results")

	stdout, stderr, err := execute(t, "run",
		"--catalog-url", srv.URL+"/v1",
		"--department", "11",
		"--output-dir", outDir,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Success!")
	assert.Contains(t, stderr, "can't get image")

	results, err := metcolour.ReadResults(filepath.Join(outDir, metcolour.ResultsFileName))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "1", results[0].ID)
	assert.Equal(t, "2", results[1].ID)
	assert.Equal(t, srv.URL+"/img/1.png", results[0].URL)
	for _, r := range results {
		assert.Equal(t, metcolour.PrimaryGreen, r.DominantPrimaryColour)
	}
}

func TestRunCommandLimitQuiet(t *testing.T) {
	srv := newMuseumServer(t)
	outDir := t.TempDir()

	stdout, stderr, err := execute(t, "run", "-q",
		"--catalog-url", srv.URL+"/v1",
		"--department", "11",
		"--limit", "1",
		"--concurrency", "2",
		"--output-dir", outDir,
	)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.NotContains(t, stderr, "processing image")

	results, err := metcolour.ReadResults(filepath.Join(outDir, metcolour.ResultsFileName))
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRunCommandRequiresDepartment(t *testing.T) {
	_, _, err := execute(t, "run", "--output-dir", t.TempDir())
	assert.ErrorContains(t, err, "--department is required")
}

func TestRunCommandEmptyDepartment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"total":0,"objectIDs":null}`))
	}))
	defer srv.Close()

	outDir := filepath.Join(t.TempDir(), "results")
	_, _, err := execute(t, "run", "--catalog-url", srv.URL, "--department", "5", "--output-dir", outDir)
	assert.ErrorIs(t, err, metcolour.ErrNoObjects)

	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr), "no results file on a failed batch")
}

func TestObjectCommand(t *testing.T) {
	srv := newMuseumServer(t)

	out, _, err := execute(t, "object", "2", "--catalog-url", srv.URL+"/v1")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "2"`)
	assert.Contains(t, out, `"dominantPrimaryColour": "Green"`)

	_, _, err = execute(t, "object", "3", "--catalog-url", srv.URL+"/v1")
	assert.ErrorIs(t, err, metcolour.ErrNoImage)

	_, _, err = execute(t, "object", "abc")
	assert.ErrorContains(t, err, "invalid object id")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "metcolour dev\n", out)
}
