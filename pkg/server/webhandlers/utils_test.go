package webhandlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getzep/nerlog/pkg/models"
)

func pendingUpload(name string) *PendingUpload {
	return &PendingUpload{
		Upload:    &models.Upload{Filename: name, Data: make([]byte, 1024)},
		Extracted: &models.ExtractResponse{Filename: name},
	}
}

func TestPendingUploads_PutGetDelete(t *testing.T) {
	pending := NewPendingUploads(time.Hour)

	_, ok := pending.Get("s1")
	assert.False(t, ok)

	pending.Put("s1", pendingUpload("a.pdf"))
	pending.Put("s1", pendingUpload("b.pdf"))

	u, ok := pending.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "b.pdf", u.Upload.Filename)
	assert.Equal(t, 1, pending.Len())

	pending.Delete("s1")
	_, ok = pending.Get("s1")
	assert.False(t, ok)
}

func TestPendingUploads_IdleEviction(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pending := NewPendingUploads(time.Hour)
	pending.now = func() time.Time { return now }

	// sessions without a cookie never come back for their upload
	for i := 0; i < 50; i++ {
		pending.Put(uuid.NewString(), pendingUpload("scan.png"))
	}
	assert.Equal(t, 50, pending.Len())

	now = now.Add(30 * time.Minute)
	pending.Put("fresh", pendingUpload("fresh.png"))

	now = now.Add(45 * time.Minute)
	u, ok := pending.Get("fresh")
	require.True(t, ok)
	assert.Equal(t, "fresh.png", u.Upload.Filename)
	assert.Equal(t, 1, pending.Len())

	now = now.Add(2 * time.Hour)
	_, ok = pending.Get("fresh")
	assert.False(t, ok)
	assert.Equal(t, 0, pending.Len())
}

func TestPendingUploads_ZeroTimeoutKeepsUploads(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pending := NewPendingUploads(0)
	pending.now = func() time.Time { return now }

	pending.Put("s1", pendingUpload("a.pdf"))
	now = now.Add(24 * time.Hour)

	_, ok := pending.Get("s1")
	assert.True(t, ok)
}

func TestSessionID(t *testing.T) {
	rr := httptest.NewRecorder()
	id := SessionID(rr, httptest.NewRequest(http.MethodGet, "/", nil), time.Hour)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id})
	rr = httptest.NewRecorder()
	assert.Equal(t, id, SessionID(rr, req, time.Hour))
	assert.Empty(t, rr.Result().Cookies())
}
