package devmode

import (
	"hash/fnv"
	"io"
	"net/http"
)

// predictionClasses mimics the raw labels of the diagnosis model, including
// its inconsistent casing and separators.
var predictionClasses = []string{
	"Healthy",
	"Powdery_Mildew",
	"Leaf Spot",
	"rust",
	"Early_Blight",
	"Late-Blight",
	"Spider_Mites",
	"Bacterial Wilt",
}

// predict classifies deterministically from the image bytes so repeated
// uploads of the same photo agree.
func (g *Gateway) predict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Expected multipart form data")
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer f.Close()

	h := fnv.New64a()
	if _, err := io.Copy(h, f); err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}
	sum := h.Sum64()
	writeJSON(w, http.StatusOK, map[string]any{
		"predicted_class": predictionClasses[sum%uint64(len(predictionClasses))],
		"confidence":      55 + float64(sum%450000)/10000,
	})
}
