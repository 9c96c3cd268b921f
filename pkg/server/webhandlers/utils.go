package webhandlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/getzep/nerlog/internal"
	"github.com/getzep/nerlog/pkg/models"
)

var log = internal.GetLogger()

const SessionCookieName = "nerlog_session"

// SessionID returns the browser's session id, issuing a new cookie when the request has none
// or an invalid one.
func SessionID(w http.ResponseWriter, r *http.Request, idleTimeout time.Duration) string {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if idleTimeout > 0 {
		cookie.MaxAge = int(idleTimeout.Seconds())
	}
	http.SetCookie(w, cookie)
	log.Debugf("issued session %s", id)
	return id
}

type PendingUpload struct {
	Upload    *models.Upload
	Extracted *models.ExtractResponse
	putAt     time.Time
}

// PendingUploads holds the last extracted upload of each session until it is processed.
// Uploads older than idleTimeout are dropped the next time the map is touched.
type PendingUploads struct {
	mu          sync.Mutex
	uploads     map[string]*PendingUpload
	idleTimeout time.Duration
	now         func() time.Time
}

func NewPendingUploads(idleTimeout time.Duration) *PendingUploads {
	return &PendingUploads{
		uploads:     make(map[string]*PendingUpload),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

func (p *PendingUploads) Put(sessionID string, upload *PendingUpload) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	p.evictLocked(now)
	upload.putAt = now
	p.uploads[sessionID] = upload
}

func (p *PendingUploads) Get(sessionID string) (*PendingUpload, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.evictLocked(p.now())
	u, ok := p.uploads[sessionID]
	return u, ok
}

func (p *PendingUploads) Delete(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.uploads, sessionID)
}

// Len reports the number of uploads waiting to be processed.
func (p *PendingUploads) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.uploads)
}

func (p *PendingUploads) evictLocked(now time.Time) {
	if p.idleTimeout <= 0 {
		return
	}
	for id, u := range p.uploads {
		if now.Sub(u.putAt) > p.idleTimeout {
			log.Debugf("discarding pending upload of session %s", id)
			delete(p.uploads, id)
		}
	}
}
