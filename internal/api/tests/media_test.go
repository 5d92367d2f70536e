package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/rwalia/estatehub-server/internal/api/testutils"
	"github.com/rwalia/estatehub-server/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadMedia(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	timestamp := createListing(t, tc)

	w := testutils.PerformMultipartRequest(tc.Router, "/upload_media",
		map[string]string{
			"listing_timestamp": timestamp,
			"editor_username":   "b1",
		},
		map[string][]byte{
			"front.jpg": []byte("jpeg-bytes"),
			"plan.pdf":  []byte("pdf-bytes"),
		})
	require.Equal(t, http.StatusOK, w.Code)

	body := testutils.DecodeBody(t, w)
	require.Equal(t, true, body["success"])
	files, ok := body["uploaded_files"].([]any)
	require.True(t, ok)
	require.Len(t, files, 2)

	first := files[0].(map[string]any)
	url := first["url"].(string)
	assert.True(t, strings.HasPrefix(url, "/media/"))
	// Path-unsafe characters in the listing key are sanitized
	assert.NotContains(t, url, ":")

	// One action log entry for the batch
	var uploads int
	for _, entry := range tc.Repository.ActionLogEntries() {
		if entry.ActionType == service.ActionMediaUploaded {
			uploads++
		}
	}
	assert.Equal(t, 1, uploads)

	// One profile change entry for the batch, tagged Media
	lw := testutils.PerformRequest(tc.Router, http.MethodGet, "/get_profile_log/"+timestamp, nil, nil)
	logs := testutils.DecodeBody(t, lw)["logs"].([]any)
	require.Len(t, logs, 1)
	entry := logs[0].(map[string]any)
	assert.Equal(t, "Media", entry["section"])
	assert.Equal(t, "files_uploaded", entry["field_name"])
	assert.Equal(t, "2 file(s)", entry["old_value"])
}

func TestUploadMediaValidation(t *testing.T) {
	tc := testutils.SetupTestContext(t)

	// Missing editor_username
	w := testutils.PerformMultipartRequest(tc.Router, "/upload_media",
		map[string]string{"listing_timestamp": "2025-01-01T00:00:00Z"},
		map[string][]byte{"a.jpg": []byte("x")})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No files
	w = testutils.PerformMultipartRequest(tc.Router, "/upload_media",
		map[string]string{
			"listing_timestamp": "2025-01-01T00:00:00Z",
			"editor_username":   "b1",
		}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
